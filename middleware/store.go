package middleware

import (
	"context"
	"net/http"

	"github.com/reggysosa/tournament-gateway/repositories"
)

type contextKey string

const storeContextKey contextKey = "store"

// RequireStore открывает хранилище до обработчика. Если настройки отсутствуют или битые,
// вызывается onUnavailable, и обработчик не запускается: ни одного обращения к хранилищу.
func RequireStore(factory repositories.StoreFactory, onUnavailable func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, err := factory.Open(r.Context())
			if err != nil {
				onUnavailable(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))
		})
	}
}

func WithStore(ctx context.Context, store *repositories.Store) context.Context {
	return context.WithValue(ctx, storeContextKey, store)
}

func StoreFromContext(ctx context.Context) (*repositories.Store, bool) {
	store, ok := ctx.Value(storeContextKey).(*repositories.Store)
	return store, ok && store != nil
}
