package repository

import (
	"context"
	"database/sql"
	"time"
)

// Column represents a board column row.
type Column struct {
	ID        string
	Name      string
	Position  int
	WIPLimit  int
	CreatedAt time.Time
}

// Full reports whether the column holds as many cards as its WIP limit
// allows. A zero limit means unlimited.
func (c Column) Full(count int) bool {
	return c.WIPLimit > 0 && count >= c.WIPLimit
}

// Card represents a card row.
type Card struct {
	ID        string
	ColumnID  string
	Title     string
	Position  int
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Move represents one recorded card move.
type Move struct {
	ID           string
	CardID       string
	FromColumn   string
	ToColumn     string
	FromPosition int
	ToPosition   int
	MovedAt      time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...interface{}) error
}
