package testdata

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/dragboard/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Columns *repository.ColumnRepo
	Cards   *repository.CardRepo
}

var (
	verbs = []string{"Fix", "Write", "Review", "Ship", "Sketch", "Refactor", "Test", "Document"}
	nouns = []string{"login flow", "search index", "release notes", "card colours", "migration", "scroll margins", "drop hints", "backup job"}
)

// Title returns a plausible card title for index i.
func Title(r *rand.Rand, i int) string {
	return fmt.Sprintf("%s %s #%d", verbs[r.Intn(len(verbs))], nouns[r.Intn(len(nouns))], i+1)
}

// Seed spreads n sample cards over the existing columns, skipping columns
// that are at their WIP limit. The same seed yields the same board.
func Seed(ctx context.Context, repos Repos, n int, seed int64) (int, error) {
	cols, err := repos.Columns.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("no columns to fill")
	}
	r := rand.New(rand.NewSource(seed))
	added := 0
	for i := 0; i < n; i++ {
		col := cols[r.Intn(len(cols))]
		count, err := repos.Cards.CountByColumn(ctx, col.ID)
		if err != nil {
			return added, err
		}
		if col.Full(count) {
			continue
		}
		card := repository.Card{ID: uuid.NewString(), ColumnID: col.ID, Title: Title(r, i), Locked: r.Intn(10) == 0}
		if _, err := repos.Cards.Insert(ctx, card); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
