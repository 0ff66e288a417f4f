package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/dragboard/internal/database/repository"
)

type seedColumn struct {
	name  string
	limit int
	cards []string
}

var defaultBoard = []seedColumn{
	{name: "Backlog", cards: []string{"Sketch board layout", "Write migration for labels", "Pick a colour palette"}},
	{name: "Doing", limit: 3, cards: []string{"Wire drag and drop"}},
	{name: "Review"},
	{name: "Done", cards: []string{"Set up repository"}},
}

// ColumnID returns the stable id of a seeded column.
func ColumnID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("col:"+name)).String()
}

// SeedDefaults creates the starter board for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	colRepo := repository.NewColumnRepo(db)
	existing, err := colRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		cols := colRepo.WithTx(tx)
		cards := repository.NewCardRepo(db).WithTx(tx)
		for idx, sc := range defaultBoard {
			colID := ColumnID(sc.name)
			if err := cols.Upsert(ctx, repository.Column{ID: colID, Name: sc.name, Position: idx, WIPLimit: sc.limit}); err != nil {
				return err
			}
			for _, title := range sc.cards {
				id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("card:"+sc.name+":"+title)).String()
				if _, err := cards.Insert(ctx, repository.Card{ID: id, ColumnID: colID, Title: title}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
