package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// classify wraps driver errors with the matching trivia sentinel so callers
// can tell a missing row from a rejected write or an unreachable database.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", trivia.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %w", trivia.ErrConstraint, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", trivia.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch sqlStateClass(pgErr.Code) {
		case "22", "23":
			// data exception, integrity constraint violation
			return fmt.Errorf("%w: %w", trivia.ErrConstraint, err)
		case "08", "53", "57":
			// connection exception, insufficient resources, operator intervention
			return fmt.Errorf("%w: %w", trivia.ErrUnavailable, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", trivia.ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", trivia.ErrUnavailable, err)
	}

	return err
}

func sqlStateClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return strings.ToUpper(code[:2])
}
