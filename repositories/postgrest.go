package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/reggysosa/tournament-gateway/config"
)

const (
	restPath   = "rest/v1/"
	healthPath = "auth/v1/health"

	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"

	maxErrorBody = 64 << 10
)

// postgrestClient - минимальный клиент PostgREST (REST-интерфейс Supabase).
// Сессии не хранит: каждый запрос подписывается API-ключом.
type postgrestClient struct {
	http     *http.Client
	settings config.StoreSettings
}

// APIError - ответ PostgREST со статусом >= 300.
type APIError struct {
	Method  string
	Table   string
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("postgrest %s %s: status %d code %q: %s", e.Method, e.Table, e.Status, e.Code, e.Message)
}

// Unwrap позволяет errors.Is находить ErrDuplicate / ErrInvalidReference.
func (e *APIError) Unwrap() error {
	return sentinelForCode(e.Code)
}

func eq(v string) string { return "eq." + v }

func (c *postgrestClient) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, out any) error {
	endpoint := c.settings.Endpoint(restPath + table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", table, err)
	}
	c.sign(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:  method,
			Table:   table,
			Status:  resp.StatusCode,
			Code:    gjson.GetBytes(raw, "code").String(),
			Message: gjson.GetBytes(raw, "message").String(),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	return nil
}

func (c *postgrestClient) sign(req *http.Request) {
	req.Header.Set("apikey", c.settings.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)
}

// Ping обращается к health-эндпоинту Supabase Auth: он не зависит от наличия таблиц.
func (c *postgrestClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.settings.Endpoint(healthPath), nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.settings.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store health request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("store health returned status %d", resp.StatusCode)
	}
	return nil
}

// arrayLiteral форматирует text[] в синтаксисе Postgres для фильтра eq.
func arrayLiteral(values []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		b.WriteString(v)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
