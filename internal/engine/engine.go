// Package engine implements the board's ordering-consistency core: the
// mutating operations over columns and cards, each run as one store
// transaction so that the per-card positions and the per-column card_order
// hint stay consistent under concurrent edits.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trackboard/internal/model"
	"trackboard/internal/repository"
	"trackboard/internal/store"
)

type Engine struct {
	store   *store.Client
	columns *repository.ColumnRepository
	cards   *repository.CardRepository
	log     *logrus.Logger
}

func New(st *store.Client, columns *repository.ColumnRepository, cards *repository.CardRepository, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{store: st, columns: columns, cards: cards, log: log}
}

// ColumnWithCards is a column populated with its cards in render order.
type ColumnWithCards struct {
	Column model.Column
	Cards  []model.Card
}

// CreateCardInput carries the caller-supplied card fields. OrderInColumn is a
// hint; the engine clamps it into the valid range.
type CreateCardInput struct {
	Title           string
	Description     string
	Priority        string
	DueDate         *time.Time
	PortfolioItemID *string
	OrderInColumn   *int
}

// UpdateCardInput carries partial edits; nil fields are left untouched. Field
// edits never change a card's position.
type UpdateCardInput struct {
	Title           *string
	Description     *string
	Priority        *string
	DueDate         *time.Time
	PortfolioItemID *string
}

func (in UpdateCardInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Priority == nil &&
		in.DueDate == nil && in.PortfolioItemID == nil
}

// run executes fn through the store's transaction primitive and translates an
// exhausted retry budget into ErrUnavailable.
func (e *Engine) run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := e.store.RunTransaction(ctx, fn)
	if errors.Is(err, store.ErrRetriesExhausted) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// CreateColumn writes a new empty column. No transaction: a fresh column
// touches no cross-document invariant.
func (e *Engine) CreateColumn(ctx context.Context, title string) (*model.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	column := &model.Column{Title: title, CardOrder: model.IDList{}}
	if err := e.columns.Create(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn renames a column. Single-document write; existence is checked
// first so a missing column fails fast with ErrNotFound.
func (e *Engine) UpdateColumn(ctx context.Context, id uuid.UUID, title *string) (*model.Column, error) {
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	column, err := e.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, fmt.Errorf("%w: column", ErrNotFound)
	}
	if title != nil {
		column.Title = *title
	}
	column.UpdatedAt = time.Now().UTC()
	if err := e.columns.Save(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// DeleteColumn removes a column and cascades to every card it owns, in one
// atomic transaction, so no orphaned cards are ever visible.
func (e *Engine) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	return e.run(ctx, func(tx *gorm.DB) error {
		column, err := e.columns.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if column == nil {
			return fmt.Errorf("%w: column", ErrNotFound)
		}
		if err := e.cards.WithTx(tx).DeleteByColumnID(ctx, id); err != nil {
			return err
		}
		return e.columns.WithTx(tx).Delete(ctx, id)
	})
}

// ListColumns returns every column in creation order, each populated with its
// cards sorted by order_in_column.
func (e *Engine) ListColumns(ctx context.Context) ([]ColumnWithCards, error) {
	columns, err := e.columns.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ColumnWithCards, 0, len(columns))
	for _, column := range columns {
		cards, err := e.cards.GetByColumnID(ctx, column.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ColumnWithCards{Column: column, Cards: cards})
	}
	return result, nil
}

// ListCardsByColumn returns one column's cards in render order.
func (e *Engine) ListCardsByColumn(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	column, err := e.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, fmt.Errorf("%w: column", ErrNotFound)
	}
	return e.cards.GetByColumnID(ctx, columnID)
}

// CreateCard inserts a card into a column. The transaction reads the column
// (existence) and the sibling count, clamps the requested position into
// [0, count], opens a gap if the card lands mid-column, writes the card and
// adds its id to the column's card_order.
func (e *Engine) CreateCard(ctx context.Context, columnID uuid.UUID, in CreateCardInput) (*model.Card, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	var created *model.Card
	err := e.run(ctx, func(tx *gorm.DB) error {
		created = nil
		columns := e.columns.WithTx(tx)
		cards := e.cards.WithTx(tx)

		column, err := columns.GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		if column == nil {
			return fmt.Errorf("%w: column", ErrNotFound)
		}

		count, err := cards.CountByColumnID(ctx, columnID)
		if err != nil {
			return err
		}
		position := count
		if in.OrderInColumn != nil {
			position = clamp(*in.OrderInColumn, 0, count)
		}
		if position < count {
			if err := cards.ShiftRight(ctx, columnID, position); err != nil {
				return err
			}
		}

		card := &model.Card{
			ColumnID:        &columnID,
			Title:           in.Title,
			Description:     in.Description,
			Priority:        in.Priority,
			DueDate:         in.DueDate,
			PortfolioItemID: in.PortfolioItemID,
			OrderInColumn:   position,
		}
		if err := cards.Create(ctx, card); err != nil {
			return err
		}
		if err := columns.AppendCardID(ctx, columnID, card.ID); err != nil {
			return err
		}
		created = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (e *Engine) GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	card, err := e.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card", ErrNotFound)
	}
	return card, nil
}

// UpdateCard applies field edits to a single card. Ordering is never touched,
// so the transaction reads and writes one document only.
func (e *Engine) UpdateCard(ctx context.Context, id uuid.UUID, in UpdateCardInput) (*model.Card, error) {
	if in.empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidArgument)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	var updated *model.Card
	err := e.run(ctx, func(tx *gorm.DB) error {
		cards := e.cards.WithTx(tx)
		card, err := cards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("%w: card", ErrNotFound)
		}
		if in.Title != nil {
			card.Title = *in.Title
		}
		if in.Description != nil {
			card.Description = *in.Description
		}
		if in.Priority != nil {
			card.Priority = *in.Priority
		}
		if in.DueDate != nil {
			card.DueDate = in.DueDate
		}
		if in.PortfolioItemID != nil {
			card.PortfolioItemID = in.PortfolioItemID
		}
		card.UpdatedAt = time.Now().UTC()
		if err := cards.Save(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCard removes a card, repairs the owning column's card_order hint and
// renumbers the remaining siblings to 0..n-1. A card whose column reference
// is missing (data anomaly) is still deleted; the column repair is skipped
// with a warning.
func (e *Engine) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return e.run(ctx, func(tx *gorm.DB) error {
		columns := e.columns.WithTx(tx)
		cards := e.cards.WithTx(tx)

		card, err := cards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("%w: card", ErrNotFound)
		}
		if err := cards.Delete(ctx, id); err != nil {
			return err
		}
		if card.ColumnID == nil {
			e.log.WithField("card_id", id).Warn("card has no owning column, skipping card_order repair")
			return nil
		}
		if err := columns.RemoveCardID(ctx, *card.ColumnID, id); err != nil {
			return err
		}
		siblings, err := cards.GetByColumnID(ctx, *card.ColumnID)
		if err != nil {
			return err
		}
		return cards.Renumber(ctx, siblings)
	})
}

// MoveCard relocates a card within or across columns. One transaction reads
// the card, the target column and (for cross-column moves) the source column,
// clamps the requested position, then rewrites the card and the ordering of
// every touched column. A move onto the card's current slot is a legal no-op
// that still performs the write.
func (e *Engine) MoveCard(ctx context.Context, id, targetColumnID uuid.UUID, newOrderInColumn int) (*model.Card, error) {
	var moved *model.Card
	err := e.run(ctx, func(tx *gorm.DB) error {
		moved = nil
		columns := e.columns.WithTx(tx)
		cards := e.cards.WithTx(tx)

		card, err := cards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("%w: card", ErrNotFound)
		}

		target, err := columns.GetByID(ctx, targetColumnID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: target column", ErrNotFound)
		}

		sourceColumnID := card.ColumnID
		crossColumn := sourceColumnID == nil || *sourceColumnID != targetColumnID

		targetCount, err := cards.CountByColumnID(ctx, targetColumnID)
		if err != nil {
			return err
		}
		// Size of the target column once the card is in it. For a same-column
		// move the card is already counted.
		sizeAfter := targetCount
		if crossColumn {
			sizeAfter = targetCount + 1
		}
		position := clamp(newOrderInColumn, 0, sizeAfter-1)

		if crossColumn {
			if sourceColumnID != nil {
				if err := cards.CloseGap(ctx, *sourceColumnID, card.OrderInColumn); err != nil {
					return err
				}
				if err := columns.RemoveCardID(ctx, *sourceColumnID, id); err != nil {
					return err
				}
			} else {
				e.log.WithField("card_id", id).Warn("card has no owning column, skipping source card_order repair")
			}
			if err := cards.ShiftRight(ctx, targetColumnID, position); err != nil {
				return err
			}
			if err := columns.AppendCardID(ctx, targetColumnID, id); err != nil {
				return err
			}
		} else {
			oldPosition := card.OrderInColumn
			switch {
			case oldPosition < position:
				if err := cards.ShiftLeftWithin(ctx, targetColumnID, oldPosition, position); err != nil {
					return err
				}
			case oldPosition > position:
				if err := cards.ShiftRightWithin(ctx, targetColumnID, position, oldPosition); err != nil {
					return err
				}
			}
			// Membership is unchanged, but the column was still touched.
			if err := columns.TouchUpdatedAt(ctx, targetColumnID); err != nil {
				return err
			}
		}

		card.ColumnID = &targetColumnID
		card.OrderInColumn = position
		card.UpdatedAt = time.Now().UTC()
		if err := cards.Save(ctx, card); err != nil {
			return err
		}
		moved = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
