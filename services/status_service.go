package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"

	"github.com/reggysosa/tournament-gateway/config"
	"github.com/reggysosa/tournament-gateway/repositories"
)

// ProbeStore проверяет настройки хранилища и делает один лёгкий запрос к нему.
// Возвращает ErrStoreMissingConfig, ErrStoreBadURL или ErrStoreUnreachable.
func ProbeStore(ctx context.Context, factory repositories.StoreFactory) error {
	store, err := factory.Open(ctx)
	if err != nil {
		if errors.Is(err, config.ErrBadURL) {
			return ErrStoreBadURL
		}
		return ErrStoreMissingConfig
	}
	if err := store.Health.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

var offlinePattern = regexp.MustCompile(`(?i)offline`)

// maxUptimeBody - ответ DecAPI короткий ("reggysosa is offline"), больше читать незачем.
const maxUptimeBody = 4 << 10

// LiveStatusChecker спрашивает у DecAPI аптайм канала Twitch.
type LiveStatusChecker struct {
	client  *http.Client
	baseURL string
	channel string
	logger  *slog.Logger
}

func NewLiveStatusChecker(client *http.Client, baseURL, channel string, logger *slog.Logger) *LiveStatusChecker {
	return &LiveStatusChecker{
		client:  client,
		baseURL: baseURL,
		channel: channel,
		logger:  logger,
	}
}

// IsLive никогда не возвращает ошибку: любой сбой считается "не в эфире".
func (c *LiveStatusChecker) IsLive(ctx context.Context) bool {
	endpoint := c.baseURL + "/twitch/uptime/" + url.PathEscape(c.channel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("failed to build uptime request", slog.Any("error", err))
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("uptime request failed", slog.String("channel", c.channel), slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("uptime service returned non-2xx", slog.Int("status", resp.StatusCode))
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUptimeBody))
	if err != nil {
		c.logger.Warn("failed to read uptime response", slog.Any("error", err))
		return false
	}
	return !offlinePattern.Match(body)
}
