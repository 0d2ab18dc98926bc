package handlers

import (
	"log/slog"
	"time"

	"github.com/reggysosa/tournament-gateway/services"
)

// Options - общие зависимости обработчиков ресурсов.
type Options struct {
	Events services.EventPublisher
	Now    func() time.Time
	Logger *slog.Logger
	// DegradeListOnError: списки отвечают 200 [] вместо ошибки хранилища.
	DegradeListOnError bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
