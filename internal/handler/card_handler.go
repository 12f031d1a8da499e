package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trackboard/internal/engine"
)

type CardHandler struct {
	engine Engine
}

func NewCardHandler(engine Engine) *CardHandler {
	return &CardHandler{engine: engine}
}

type CreateCardRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	DueDate         *time.Time `json:"dueDate"`
	PortfolioItemID *string    `json:"portfolioItemId"`
	OrderInColumn   *int       `json:"orderInColumn"`
}

type UpdateCardRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Priority        *string    `json:"priority"`
	DueDate         *time.Time `json:"dueDate"`
	PortfolioItemID *string    `json:"portfolioItemId"`
}

type MoveCardRequest struct {
	TargetColumnID   string `json:"targetColumnId" binding:"required"`
	NewOrderInColumn int    `json:"newOrderInColumn"`
}

// Create adds a card to the column named in the path.
func (h *CardHandler) Create(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "column not found"})
		return
	}
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	card, err := h.engine.CreateCard(c.Request.Context(), columnID, engine.CreateCardInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		DueDate:         req.DueDate,
		PortfolioItemID: req.PortfolioItemID,
		OrderInColumn:   req.OrderInColumn,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCardResponse(card))
}

// ListByColumn returns the column's cards sorted by position.
func (h *CardHandler) ListByColumn(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "column not found"})
		return
	}
	cards, err := h.engine.ListCardsByColumn(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]CardResponse, 0, len(cards))
	for i := range cards {
		resp = append(resp, toCardResponse(&cards[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CardHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	card, err := h.engine.GetCard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	card, err := h.engine.UpdateCard(c.Request.Context(), id, engine.UpdateCardInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		DueDate:         req.DueDate,
		PortfolioItemID: req.PortfolioItemID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	if err := h.engine.DeleteCard(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move relocates a card. An out-of-range position clamps to the end of the
// destination rather than failing.
func (h *CardHandler) Move(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetColumnId is required"})
		return
	}
	targetColumnID, err := uuid.Parse(req.TargetColumnID)
	if err != nil {
		// An unparseable target cannot name an existing column.
		c.JSON(http.StatusNotFound, gin.H{"error": "target column not found"})
		return
	}
	card, err := h.engine.MoveCard(c.Request.Context(), id, targetColumnID, req.NewOrderInColumn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}
