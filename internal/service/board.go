package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/dragboard/internal/database"
	"github.com/jask/dragboard/internal/database/repository"
)

var (
	ErrWIPLimit = errors.New("column is at its WIP limit")
	ErrLocked   = errors.New("card is locked")
	ErrNotFound = errors.New("not found")
)

// ColumnView is a column with its cards in board order.
type ColumnView struct {
	repository.Column
	Cards []repository.Card
}

// Full reports whether another card from a different column would exceed
// the WIP limit.
func (c ColumnView) Full() bool { return c.Column.Full(len(c.Cards)) }

// Board is a loaded snapshot of every column.
type Board struct {
	Columns []ColumnView
}

// Find returns the column and card index of cardID.
func (b Board) Find(cardID string) (col, idx int, ok bool) {
	for ci, c := range b.Columns {
		for i, card := range c.Cards {
			if card.ID == cardID {
				return ci, i, true
			}
		}
	}
	return -1, -1, false
}

// Cards returns every card on the board.
func (b Board) Cards() []repository.Card {
	var out []repository.Card
	for _, c := range b.Columns {
		out = append(out, c.Cards...)
	}
	return out
}

// BoardService owns the board rules: ordering, WIP limits and locks.
type BoardService struct {
	DB      *sql.DB
	Columns *repository.ColumnRepo
	Cards   *repository.CardRepo
	Moves   *repository.MoveRepo
}

// NewBoardService builds a service with repos on db.
func NewBoardService(db *sql.DB) *BoardService {
	return &BoardService{
		DB:      db,
		Columns: repository.NewColumnRepo(db),
		Cards:   repository.NewCardRepo(db),
		Moves:   repository.NewMoveRepo(db),
	}
}

// Load reads every column with its ordered cards.
func (s *BoardService) Load(ctx context.Context) (Board, error) {
	cols, err := s.Columns.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("list columns: %w", err)
	}
	cards, err := s.Cards.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("list cards: %w", err)
	}
	byCol := make(map[string][]repository.Card, len(cols))
	for _, c := range cards {
		byCol[c.ColumnID] = append(byCol[c.ColumnID], c)
	}
	b := Board{Columns: make([]ColumnView, 0, len(cols))}
	for _, c := range cols {
		b.Columns = append(b.Columns, ColumnView{Column: c, Cards: byCol[c.ID]})
	}
	return b, nil
}

// MoveCard places cardID at index in toColumn. The index is the card's
// final position and is clamped to the column. It reports false when the
// card already sits there.
func (s *BoardService) MoveCard(ctx context.Context, cardID, toColumn string, index int) (bool, error) {
	moved := false
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		cols := s.Columns.WithTx(tx)
		cards := s.Cards.WithTx(tx)

		card, err := cards.Get(ctx, cardID)
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("card %s: %w", cardID, ErrNotFound)
		}
		if card.Locked {
			return fmt.Errorf("move %q: %w", card.Title, ErrLocked)
		}
		dest, err := cols.Get(ctx, toColumn)
		if err != nil {
			return err
		}
		if dest == nil {
			return fmt.Errorf("column %s: %w", toColumn, ErrNotFound)
		}

		src, err := cards.ListByColumn(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		srcIDs := removeID(cardIDs(src), cardID)

		dstIDs := srcIDs
		if toColumn != card.ColumnID {
			dst, err := cards.ListByColumn(ctx, toColumn)
			if err != nil {
				return err
			}
			if dest.Full(len(dst)) {
				return fmt.Errorf("move to %s: %w", dest.Name, ErrWIPLimit)
			}
			dstIDs = cardIDs(dst)
		}
		index = max(0, min(index, len(dstIDs)))
		if toColumn == card.ColumnID && index == card.Position {
			return nil
		}
		dstIDs = insertID(dstIDs, index, cardID)

		if toColumn != card.ColumnID {
			if err := cards.Reorder(ctx, card.ColumnID, srcIDs); err != nil {
				return fmt.Errorf("reorder source: %w", err)
			}
		}
		if err := cards.Reorder(ctx, toColumn, dstIDs); err != nil {
			return fmt.Errorf("reorder destination: %w", err)
		}
		moved = true
		return s.Moves.WithTx(tx).Record(ctx, repository.Move{
			ID:           uuid.NewString(),
			CardID:       cardID,
			FromColumn:   card.ColumnID,
			ToColumn:     toColumn,
			FromPosition: card.Position,
			ToPosition:   index,
			MovedAt:      database.Now(),
		})
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

// AddCard appends a card to columnID.
func (s *BoardService) AddCard(ctx context.Context, columnID, title string) (repository.Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return repository.Card{}, fmt.Errorf("card title is empty")
	}
	col, err := s.Columns.Get(ctx, columnID)
	if err != nil {
		return repository.Card{}, err
	}
	if col == nil {
		return repository.Card{}, fmt.Errorf("column %s: %w", columnID, ErrNotFound)
	}
	n, err := s.Cards.CountByColumn(ctx, columnID)
	if err != nil {
		return repository.Card{}, err
	}
	if col.Full(n) {
		return repository.Card{}, fmt.Errorf("add to %s: %w", col.Name, ErrWIPLimit)
	}
	return s.Cards.Insert(ctx, repository.Card{ID: uuid.NewString(), ColumnID: columnID, Title: title})
}

// ToggleLock flips the lock on cardID and returns the new state.
func (s *BoardService) ToggleLock(ctx context.Context, cardID string) (bool, error) {
	card, err := s.Cards.Get(ctx, cardID)
	if err != nil {
		return false, err
	}
	if card == nil {
		return false, fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}
	if err := s.Cards.SetLocked(ctx, cardID, !card.Locked); err != nil {
		return false, err
	}
	return !card.Locked, nil
}

// DeleteCard removes cardID and closes the gap it leaves.
func (s *BoardService) DeleteCard(ctx context.Context, cardID string) error {
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		cards := s.Cards.WithTx(tx)
		card, err := cards.Get(ctx, cardID)
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("card %s: %w", cardID, ErrNotFound)
		}
		if card.Locked {
			return fmt.Errorf("delete %q: %w", card.Title, ErrLocked)
		}
		if err := cards.Delete(ctx, cardID); err != nil {
			return err
		}
		rest, err := cards.ListByColumn(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		return cards.Reorder(ctx, card.ColumnID, cardIDs(rest))
	})
}

// History returns the latest moves, newest first.
func (s *BoardService) History(ctx context.Context, limit int) ([]repository.Move, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Moves.Recent(ctx, limit)
}

func cardIDs(cards []repository.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func insertID(ids []string, at int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:at]...)
	out = append(out, id)
	return append(out, ids[at:]...)
}
