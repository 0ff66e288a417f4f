package repository

import (
	"context"
	"database/sql"
)

// MoveRepo records card moves.
type MoveRepo struct {
	db querier
}

func NewMoveRepo(db *sql.DB) *MoveRepo { return &MoveRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *MoveRepo) WithTx(tx *sql.Tx) *MoveRepo { return &MoveRepo{db: tx} }

func (r *MoveRepo) Record(ctx context.Context, m Move) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO moves(id, card_id, from_column, to_column, from_position, to_position, moved_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CardID, m.FromColumn, m.ToColumn, m.FromPosition, m.ToPosition, m.MovedAt)
	return err
}

// Recent returns up to limit moves, newest first.
func (r *MoveRepo) Recent(ctx context.Context, limit int) ([]Move, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, card_id, from_column, to_column, from_position, to_position, moved_at
	FROM moves ORDER BY moved_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.ID, &m.CardID, &m.FromColumn, &m.ToColumn, &m.FromPosition, &m.ToPosition, &m.MovedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
