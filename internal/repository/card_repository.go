package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trackboard/internal/model"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// WithTx rebinds the repository onto a transaction handle.
func (r *CardRepository) WithTx(tx *gorm.DB) *CardRepository {
	return &CardRepository{db: tx}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByID returns the card, or nil without error when it does not exist.
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetByColumnID returns the column's cards in render order. The sorted query
// on order_in_column is the authoritative order, not the card_order hint.
func (r *CardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("order_in_column").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) CountByColumnID(ctx context.Context, columnID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("column_id = ?", columnID).
		Count(&count).Error
	return int(count), err
}

func (r *CardRepository) Save(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id).Error
}

// DeleteByColumnID removes every card owned by the column (cascade on column
// delete).
func (r *CardRepository) DeleteByColumnID(ctx context.Context, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, "column_id = ?", columnID).Error
}

// ShiftRight opens a gap at position from: every sibling at or after it moves
// one slot down the column.
func (r *CardRepository) ShiftRight(ctx context.Context, columnID uuid.UUID, from int) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("column_id = ? AND order_in_column >= ?", columnID, from).
		Update("order_in_column", gorm.Expr("order_in_column + 1")).Error
}

// CloseGap closes the hole left at position after: every sibling past it moves
// one slot up the column.
func (r *CardRepository) CloseGap(ctx context.Context, columnID uuid.UUID, after int) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("column_id = ? AND order_in_column > ?", columnID, after).
		Update("order_in_column", gorm.Expr("order_in_column - 1")).Error
}

// ShiftLeftWithin decrements positions in (lo, hi]; used when a card moves
// down within its own column.
func (r *CardRepository) ShiftLeftWithin(ctx context.Context, columnID uuid.UUID, lo, hi int) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("column_id = ? AND order_in_column > ? AND order_in_column <= ?", columnID, lo, hi).
		Update("order_in_column", gorm.Expr("order_in_column - 1")).Error
}

// ShiftRightWithin increments positions in [lo, hi); used when a card moves up
// within its own column.
func (r *CardRepository) ShiftRightWithin(ctx context.Context, columnID uuid.UUID, lo, hi int) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("column_id = ? AND order_in_column >= ? AND order_in_column < ?", columnID, lo, hi).
		Update("order_in_column", gorm.Expr("order_in_column + 1")).Error
}

// Renumber writes positions 0..n-1 onto siblings in their current order,
// skipping cards already in place. Repairs density after a removal.
func (r *CardRepository) Renumber(ctx context.Context, siblings []model.Card) error {
	for i, card := range siblings {
		if card.OrderInColumn == i {
			continue
		}
		if err := r.db.WithContext(ctx).Model(&model.Card{}).
			Where("id = ?", card.ID).
			Update("order_in_column", i).Error; err != nil {
			return err
		}
	}
	return nil
}
