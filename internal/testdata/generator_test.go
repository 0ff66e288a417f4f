package testdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/dragboard/internal/database"
	"github.com/jask/dragboard/internal/database/repository"
)

func TestSeedRespectsWIPLimits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := Repos{Columns: repository.NewColumnRepo(db), Cards: repository.NewCardRepo(db)}
	_, err = Seed(ctx, repos, 5, 1)
	require.Error(t, err)

	require.NoError(t, repos.Columns.Upsert(ctx, repository.Column{ID: "a", Name: "A"}))
	require.NoError(t, repos.Columns.Upsert(ctx, repository.Column{ID: "b", Name: "B", Position: 1, WIPLimit: 2}))

	added, err := Seed(ctx, repos, 40, 7)
	require.NoError(t, err)

	nb, err := repos.Cards.CountByColumn(ctx, "b")
	require.NoError(t, err)
	require.LessOrEqual(t, nb, 2)
	na, err := repos.Cards.CountByColumn(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, added, na+nb)
}
