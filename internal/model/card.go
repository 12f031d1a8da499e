package model

import (
	"time"

	"github.com/google/uuid"
)

// Card is a unit of work owned by exactly one column. OrderInColumn is its
// zero-based position among siblings; for any column the positions are dense
// (0..n-1) after every committed transaction.
//
// ColumnID is nullable so that a card whose owner reference was lost (a data
// anomaly seen in old records) can still be read and deleted.
type Card struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ColumnID        *uuid.UUID `gorm:"type:uuid;index"`
	Title           string     `gorm:"not null"`
	Description     string
	Priority        string
	DueDate         *time.Time
	PortfolioItemID *string // opaque reference into the portfolio subsystem, never dereferenced here
	OrderInColumn   int     `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
