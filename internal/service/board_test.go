package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/dragboard/internal/database"
	"github.com/jask/dragboard/internal/database/repository"
)

func newTestBoard(t *testing.T) (*BoardService, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBoardService(db), db
}

func addColumn(t *testing.T, svc *BoardService, id string, pos, limit int, titles ...string) []repository.Card {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.Columns.Upsert(ctx, repository.Column{ID: id, Name: id, Position: pos, WIPLimit: limit}))
	var out []repository.Card
	for _, title := range titles {
		c, err := svc.Cards.Insert(ctx, repository.Card{ID: id + "-" + title, ColumnID: id, Title: title})
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func titles(col ColumnView) []string {
	var out []string
	for _, c := range col.Cards {
		out = append(out, c.Title)
	}
	return out
}

func TestMoveCardAcrossColumns(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestBoard(t)
	addColumn(t, svc, "todo", 0, 0, "a", "b", "c")
	addColumn(t, svc, "done", 1, 0, "x", "y")

	moved, err := svc.MoveCard(ctx, "todo-b", "done", 1)
	require.NoError(t, err)
	require.True(t, moved)

	b, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, titles(b.Columns[0]))
	require.Equal(t, []string{"x", "b", "y"}, titles(b.Columns[1]))
	for _, col := range b.Columns {
		for i, c := range col.Cards {
			require.Equal(t, i, c.Position)
		}
	}

	hist, err := svc.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, "todo", hist[0].FromColumn)
	require.Equal(t, 1, hist[0].FromPosition)
	require.Equal(t, "done", hist[0].ToColumn)
	require.Equal(t, 1, hist[0].ToPosition)
}

func TestMoveCardWithinColumn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestBoard(t)
	addColumn(t, svc, "todo", 0, 0, "a", "b", "c")

	moved, err := svc.MoveCard(ctx, "todo-a", "todo", 99)
	require.NoError(t, err)
	require.True(t, moved)

	b, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c", "a"}, titles(b.Columns[0]))

	moved, err = svc.MoveCard(ctx, "todo-a", "todo", 2)
	require.NoError(t, err)
	require.False(t, moved)

	hist, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
}

func TestMoveCardRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestBoard(t)
	addColumn(t, svc, "todo", 0, 0, "a", "b")
	addColumn(t, svc, "doing", 1, 1, "x")

	_, err := svc.MoveCard(ctx, "todo-a", "doing", 0)
	require.ErrorIs(t, err, ErrWIPLimit)

	// Reordering inside a full column is allowed.
	_, err = svc.MoveCard(ctx, "doing-x", "doing", 0)
	require.NoError(t, err)

	locked, err := svc.ToggleLock(ctx, "todo-b")
	require.NoError(t, err)
	require.True(t, locked)
	_, err = svc.MoveCard(ctx, "todo-b", "todo", 0)
	require.ErrorIs(t, err, ErrLocked)
	require.ErrorIs(t, svc.DeleteCard(ctx, "todo-b"), ErrLocked)

	_, err = svc.MoveCard(ctx, "missing", "todo", 0)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.MoveCard(ctx, "todo-a", "missing", 0)
	require.ErrorIs(t, err, ErrNotFound)

	b, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, titles(b.Columns[0]))
}

func TestAddAndDeleteCard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestBoard(t)
	addColumn(t, svc, "todo", 0, 2, "a")

	c, err := svc.AddCard(ctx, "todo", "  new thing ")
	require.NoError(t, err)
	require.Equal(t, "new thing", c.Title)
	require.Equal(t, 1, c.Position)

	_, err = svc.AddCard(ctx, "todo", "third")
	require.ErrorIs(t, err, ErrWIPLimit)
	_, err = svc.AddCard(ctx, "todo", "   ")
	require.Error(t, err)

	require.NoError(t, svc.DeleteCard(ctx, "todo-a"))
	b, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, b.Columns[0].Cards, 1)
	require.Equal(t, 0, b.Columns[0].Cards[0].Position)

	col, idx, ok := b.Find(c.ID)
	require.True(t, ok)
	require.Equal(t, 0, col)
	require.Equal(t, 0, idx)
}

func TestMaintenanceResetReseeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, db := newTestBoard(t)
	addColumn(t, svc, "todo", 0, 0, "a")

	require.NoError(t, (&MaintenanceService{DB: db}).Reset(ctx))

	b, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, b.Columns, 4)
	require.Equal(t, "Backlog", b.Columns[0].Name)
}
