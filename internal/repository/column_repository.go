package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trackboard/internal/model"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// WithTx rebinds the repository onto a transaction handle so callers can run
// several repository calls inside one transaction.
func (r *ColumnRepository) WithTx(tx *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: tx}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

// GetByID returns the column, or nil without error when it does not exist.
func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

// GetAll returns every column in creation order.
func (r *ColumnRepository) GetAll(ctx context.Context) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Order("created_at").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Save(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Column{}, "id = ?", id).Error
}

// AppendCardID adds one card id to the column's card_order hint. The update is
// additive on the jsonb array, never a wholesale rewrite.
func (r *ColumnRepository) AppendCardID(ctx context.Context, columnID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ?", columnID).
		Updates(map[string]interface{}{
			"card_order": gorm.Expr("card_order || to_jsonb(?::text)", cardID.String()),
			"updated_at": time.Now().UTC(),
		}).Error
}

// RemoveCardID removes one card id from the column's card_order hint.
func (r *ColumnRepository) RemoveCardID(ctx context.Context, columnID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ?", columnID).
		Updates(map[string]interface{}{
			"card_order": gorm.Expr("card_order - ?::text", cardID.String()),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *ColumnRepository) TouchUpdatedAt(ctx context.Context, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ?", columnID).
		Update("updated_at", time.Now().UTC()).Error
}
