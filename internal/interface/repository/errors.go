package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"workshop-service/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// classifyError maps driver failures onto the domain error kinds
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &connectErr),
		pgconn.Timeout(err):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	default:
		return err
	}
}
