package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trackboard/internal/engine"
	"trackboard/internal/model"
)

// Engine is the board surface the handlers call into. Defined here so handler
// tests can substitute a mock.
type Engine interface {
	CreateColumn(ctx context.Context, title string) (*model.Column, error)
	UpdateColumn(ctx context.Context, id uuid.UUID, title *string) (*model.Column, error)
	DeleteColumn(ctx context.Context, id uuid.UUID) error
	ListColumns(ctx context.Context) ([]engine.ColumnWithCards, error)
	ListCardsByColumn(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	CreateCard(ctx context.Context, columnID uuid.UUID, in engine.CreateCardInput) (*model.Card, error)
	GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error)
	UpdateCard(ctx context.Context, id uuid.UUID, in engine.UpdateCardInput) (*model.Card, error)
	DeleteCard(ctx context.Context, id uuid.UUID) error
	MoveCard(ctx context.Context, id, targetColumnID uuid.UUID, newOrderInColumn int) (*model.Card, error)
}

// CardResponse is the wire shape of a card.
type CardResponse struct {
	ID              string     `json:"id"`
	ColumnID        *string    `json:"columnId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	PortfolioItemID *string    `json:"portfolioItemId,omitempty"`
	OrderInColumn   int        `json:"orderInColumn"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ColumnResponse is the wire shape of a column, optionally carrying its cards
// in render order.
type ColumnResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	CardOrder []string       `json:"cardOrder"`
	Cards     []CardResponse `json:"cards,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toCardResponse(card *model.Card) CardResponse {
	var columnID *string
	if card.ColumnID != nil {
		s := card.ColumnID.String()
		columnID = &s
	}
	return CardResponse{
		ID:              card.ID.String(),
		ColumnID:        columnID,
		Title:           card.Title,
		Description:     card.Description,
		Priority:        card.Priority,
		DueDate:         card.DueDate,
		PortfolioItemID: card.PortfolioItemID,
		OrderInColumn:   card.OrderInColumn,
		CreatedAt:       card.CreatedAt,
		UpdatedAt:       card.UpdatedAt,
	}
}

func toColumnResponse(column *model.Column, cards []model.Card) ColumnResponse {
	resp := ColumnResponse{
		ID:        column.ID.String(),
		Title:     column.Title,
		CardOrder: column.CardOrder,
		CreatedAt: column.CreatedAt,
		UpdatedAt: column.UpdatedAt,
	}
	if resp.CardOrder == nil {
		resp.CardOrder = []string{}
	}
	for i := range cards {
		resp.Cards = append(resp.Cards, toCardResponse(&cards[i]))
	}
	return resp
}

// respondError maps engine errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
