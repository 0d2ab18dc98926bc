package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingEnv = errors.New("store url or api key is not set")
	ErrBadURL     = errors.New("store url is not a valid absolute url")
)

// Пары переменных: сначала имена из фронтенд-деплоя, затем серверные.
var (
	storeURLKeys = []string{"NEXT_PUBLIC_SUPABASE_URL", "SUPABASE_URL"}
	storeKeyKeys = []string{"NEXT_PUBLIC_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"}
)

// StoreSettings - адрес и ключ хранилища, прочитанные для одного запроса.
type StoreSettings struct {
	URL    *url.URL
	APIKey string
}

// LoadStoreSettings читает настройки хранилища из окружения при каждом вызове.
// Возвращает ErrMissingEnv, если URL или ключ пусты, и ErrBadURL, если URL не абсолютный.
func LoadStoreSettings() (StoreSettings, error) {
	return ParseStoreSettings(firstEnv(storeURLKeys), firstEnv(storeKeyKeys))
}

// ParseStoreSettings validates a raw url/key pair.
func ParseStoreSettings(rawURL, apiKey string) (StoreSettings, error) {
	rawURL = strings.TrimSpace(rawURL)
	apiKey = strings.TrimSpace(apiKey)
	if rawURL == "" || apiKey == "" {
		return StoreSettings{}, ErrMissingEnv
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return StoreSettings{}, fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return StoreSettings{}, ErrBadURL
	}
	u.Path = strings.TrimRight(u.Path, "/")

	return StoreSettings{URL: u, APIKey: apiKey}, nil
}

// Endpoint joins path segments onto the store base url.
func (s StoreSettings) Endpoint(path string) string {
	return s.URL.String() + "/" + strings.TrimLeft(path, "/")
}

// KeyRole возвращает claim "role" из API-ключа Supabase (это JWT).
// Подпись не проверяется: ключ выдан нам же, нужна только роль для диагностики.
func (s StoreSettings) KeyRole() (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.APIKey, claims); err != nil {
		return "", fmt.Errorf("api key is not a jwt: %w", err)
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("api key has no role claim")
	}
	return role, nil
}

func firstEnv(keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
