package repositories

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Коды ошибок Postgres, которые различаем. PostgREST отдаёт те же коды в поле "code".
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func sentinelForCode(code string) error {
	switch code {
	case pgUniqueViolation:
		return ErrDuplicate
	case pgForeignKeyViolation:
		return ErrInvalidReference
	default:
		return nil
	}
}

// handlePQError оборачивает ошибку драйвера в sentinel, если код известен.
func handlePQError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if sentinel := sentinelForCode(string(pqErr.Code)); sentinel != nil {
			return fmt.Errorf("%s: %w: %s", op, sentinel, pqErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
