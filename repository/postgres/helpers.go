package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/ministryflow/domain"
)

const uniqueViolation = "23505"

// DB is the part of *pgxpool.Pool the repositories rely on.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func marshalComments(comments []domain.Comment) []byte {
	if comments == nil {
		comments = []domain.Comment{}
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalComments(raw []byte) []domain.Comment {
	comments := []domain.Comment{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &comments)
	}
	return comments
}

// dueDay converts a due date into the DATE column value: the calendar day as
// seen in the due date's own offset, at midnight UTC.
func dueDay(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return calendarDay(*t)
}

// scannedDueDay undoes whatever zone the driver decoded the DATE into.
func scannedDueDay(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	day := calendarDay(*t)
	return &day
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
