package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort         int
	LogLevel           slog.Level
	APIPrefix          string
	StoreDriver        string
	DatabaseURL        string
	RunMigrations      bool
	StoreTimeout       time.Duration
	DegradeListOnError bool
	TwitchChannel      string
	DecAPIBaseURL      string
	StatusTimeout      time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
// Настройки хранилища (URL и ключ) сюда не входят: они читаются на каждый запрос
// через LoadStoreSettings.
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level, err := parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverPostgREST))
	if driver != DriverPostgREST && driver != DriverPostgres {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgREST, DriverPostgres, driver)
	}

	runMigrations, err := boolEnv("RUN_MIGRATIONS", false)
	if err != nil {
		return nil, err
	}
	degrade, err := boolEnv("DEGRADE_LIST_ON_ERROR", true)
	if err != nil {
		return nil, err
	}
	storeTimeout, err := durationEnv("STORE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	statusTimeout, err := durationEnv("STATUS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:         port,
		LogLevel:           level,
		APIPrefix:          normalizePrefix(getEnvOrDefault("API_PREFIX", "/api")),
		StoreDriver:        driver,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RunMigrations:      runMigrations,
		StoreTimeout:       storeTimeout,
		DegradeListOnError: degrade,
		TwitchChannel:      getEnvOrDefault("TWITCH_CHANNEL", "reggysosa"),
		DecAPIBaseURL:      strings.TrimRight(getEnvOrDefault("DECAPI_BASE_URL", "https://decapi.me"), "/"),
		StatusTimeout:      statusTimeout,
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return v, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

// normalizePrefix приводит префикс к виду "/api" (без завершающего слэша); "/" и "" дают "".
func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
