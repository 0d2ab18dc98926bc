package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/reggysosa/tournament-gateway/middleware"
	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
	"github.com/reggysosa/tournament-gateway/services"
)

const maxBodyBytes = 1_048_576 // 1MB

type jsonResponse map[string]any

// FailureKind - флаг, который выставляется в теле ошибки: {"ok":false,"<kind>":true}.
type FailureKind string

const (
	KindMissingEnv  FailureKind = "missing_env"
	KindBadRequest  FailureKind = "bad_request"
	KindNotFound    FailureKind = "not_found"
	KindError       FailureKind = "error"
	KindBadURL      FailureKind = "bad_url"
	KindUnreachable FailureKind = "unreachable"
)

const flagPartialFailure = "partial_failure"

// Result - ответ обработчика: либо успех с произвольным телом, либо ошибка с видом и статусом.
type Result struct {
	status  int
	payload any
	kind    FailureKind
	flags   []string
}

func Success(status int, payload any) Result {
	return Result{status: status, payload: payload}
}

// Failure builds an error envelope. Extra flags are set to true next to kind.
func Failure(kind FailureKind, status int, flags ...string) Result {
	return Result{status: status, kind: kind, flags: flags}
}

func (res Result) OK() bool    { return res.kind == "" }
func (res Result) Status() int { return res.status }

func (res Result) Body() any {
	if res.OK() {
		return res.payload
	}
	body := jsonResponse{"ok": false, string(res.kind): true}
	for _, f := range res.flags {
		body[f] = true
	}
	return body
}

func (res Result) write(w http.ResponseWriter, logger *slog.Logger) {
	if err := writeJSON(w, res.status, res.Body(), nil); err != nil {
		logger.Error("failed to write response", slog.Int("status", res.status), slog.Any("error", err))
	}
}

func okResponse(key string, value any) jsonResponse {
	resp := jsonResponse{"ok": true}
	if key != "" {
		resp[key] = value
	}
	return resp
}

// readJSON декодирует одно JSON-значение из тела. Неизвестные поля игнорируются.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// mapServiceError переводит ошибки сервисов и хранилища в конверт ответа.
// Текст ошибок хранилища уходит только в лог.
func mapServiceError(logger *slog.Logger, r *http.Request, err error) Result {
	switch {
	case errors.Is(err, repositories.ErrStoreUnavailable):
		logger.Warn("store unavailable", slog.String("path", r.URL.Path), slog.Any("error", err))
		return Failure(KindMissingEnv, http.StatusInternalServerError)

	case errors.Is(err, services.ErrValidationFailed):
		return Failure(KindBadRequest, http.StatusBadRequest)

	case errors.Is(err, services.ErrTournamentNotFound):
		return Failure(KindNotFound, http.StatusNotFound)

	case errors.Is(err, services.ErrPartialFailure):
		logger.Error("operation partially applied", slog.String("path", r.URL.Path), slog.Any("error", err))
		return Failure(KindError, http.StatusInternalServerError, flagPartialFailure)

	default:
		logger.Error("store operation failed", slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
		return Failure(KindError, http.StatusInternalServerError)
	}
}

func badRequest(logger *slog.Logger, r *http.Request, err error) Result {
	logger.Debug("bad request", slog.String("path", r.URL.Path), slog.Any("error", err))
	return Failure(KindBadRequest, http.StatusBadRequest)
}

// StoreUnavailable is the store gate callback: 500 missing_env, without touching the store.
func StoreUnavailable(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		mapServiceError(logger, r, fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)).write(w, logger)
	}
}

// storeFrom достаёт хранилище, открытое middleware.RequireStore.
func storeFrom(r *http.Request) (*repositories.Store, error) {
	store, ok := middleware.StoreFromContext(r.Context())
	if !ok {
		return nil, repositories.ErrStoreUnavailable
	}
	return store, nil
}

func idFromURL(r *http.Request, paramName string) models.ID {
	return models.NewID(strings.TrimSpace(chi.URLParam(r, paramName)))
}
