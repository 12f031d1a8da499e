package model

import (
	"time"

	"github.com/google/uuid"
)

// Column is an ordered stage on the board ("To Do", "In Progress", ...).
//
// CardOrder is a denormalized membership hint: it contains exactly the ids of
// the cards owned by this column, maintained by add-one/remove-one jsonb
// updates. Its internal sequence is NOT the render order; reads sort cards by
// order_in_column instead. Whether the sequence should ever become
// authoritative is pending product clarification.
type Column struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string    `gorm:"not null"`
	CardOrder IDList    `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
