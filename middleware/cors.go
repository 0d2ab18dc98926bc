package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var corsAllowedHeaders = []string{"Content-Type", "Authorization", "apikey", "X-Requested-With"}

// CORS отдаёт заголовки CORS на каждый ответ маршрута, включая ошибки.
// Preflight-запросы (OPTIONS с Access-Control-Request-Method) обрабатывает go-chi/cors и отвечает 200 без тела.
// methods - глаголы маршрута, OPTIONS добавляется сам.
func CORS(methods ...string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(methods)+1)
	for _, m := range methods {
		allowed = append(allowed, strings.ToUpper(m))
	}
	allowed = append(allowed, http.MethodOptions)
	allowMethods := strings.Join(allowed, ", ")
	allowHeaders := strings.Join(corsAllowedHeaders, ", ")

	preflight := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: allowed,
		AllowedHeaders: corsAllowedHeaders,
		MaxAge:         300,
	})

	return func(next http.Handler) http.Handler {
		withLib := preflight(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			withLib.ServeHTTP(w, r)
		})
	}
}

// Preflight отвечает на OPTIONS без Access-Control-Request-Method: 200 и пустое тело.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
