package repository

import (
	"context"
	"database/sql"
)

// ColumnRepo handles board columns.
type ColumnRepo struct {
	db querier
}

func NewColumnRepo(db *sql.DB) *ColumnRepo { return &ColumnRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *ColumnRepo) WithTx(tx *sql.Tx) *ColumnRepo { return &ColumnRepo{db: tx} }

func (r *ColumnRepo) Upsert(ctx context.Context, c Column) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO columns(id, name, position, wip_limit)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 position=excluded.position,
	 wip_limit=excluded.wip_limit;
	`, c.ID, c.Name, c.Position, c.WIPLimit)
	return err
}

func (r *ColumnRepo) List(ctx context.Context) ([]Column, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, position, wip_limit, created_at FROM columns ORDER BY position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Column
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ColumnRepo) Get(ctx context.Context, id string) (*Column, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, position, wip_limit, created_at FROM columns WHERE id = ?`, id)
	c, err := scanColumn(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func scanColumn(row scanner) (Column, error) {
	var c Column
	err := row.Scan(&c.ID, &c.Name, &c.Position, &c.WIPLimit, &c.CreatedAt)
	return c, err
}
