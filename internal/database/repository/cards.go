package repository

import (
	"context"
	"database/sql"
	"time"
)

// CardRepo handles cards.
type CardRepo struct {
	db querier
}

func NewCardRepo(db *sql.DB) *CardRepo { return &CardRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *CardRepo) WithTx(tx *sql.Tx) *CardRepo { return &CardRepo{db: tx} }

const cardColumns = `id, column_id, title, position, locked, created_at, updated_at`

// Insert stores c at the end of its column, ignoring c.Position.
func (r *CardRepo) Insert(ctx context.Context, c Card) (Card, error) {
	var next int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE column_id = ?`, c.ColumnID).Scan(&next); err != nil {
		return Card{}, err
	}
	c.Position = next
	now := time.Now().UTC().Truncate(time.Second)
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO cards(id, column_id, title, position, locked, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ColumnID, c.Title, c.Position, c.Locked, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return Card{}, err
	}
	return c, nil
}

// List returns every card ordered by column then position.
func (r *CardRepo) List(ctx context.Context) ([]Card, error) {
	return r.query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY column_id, position`)
}

// ListByColumn returns the cards of one column in board order.
func (r *CardRepo) ListByColumn(ctx context.Context, columnID string) ([]Card, error) {
	return r.query(ctx, `SELECT `+cardColumns+` FROM cards WHERE column_id = ? ORDER BY position`, columnID)
}

func (r *CardRepo) query(ctx context.Context, q string, args ...any) ([]Card, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CardRepo) Get(ctx context.Context, id string) (*Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CountByColumn returns the number of cards in a column.
func (r *CardRepo) CountByColumn(ctx context.Context, columnID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE column_id = ?`, columnID).Scan(&n)
	return n, err
}

// Reorder assigns ids to columnID with positions following slice order.
func (r *CardRepo) Reorder(ctx context.Context, columnID string, ids []string) error {
	now := time.Now().UTC().Truncate(time.Second)
	for pos, id := range ids {
		if _, err := r.db.ExecContext(ctx, `UPDATE cards SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`, columnID, pos, now, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *CardRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE cards SET locked = ?, updated_at = ? WHERE id = ?`, locked, time.Now().UTC().Truncate(time.Second), id)
	return err
}

func (r *CardRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	return err
}

func scanCard(row scanner) (Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.ColumnID, &c.Title, &c.Position, &c.Locked, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
