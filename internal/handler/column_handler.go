package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	engine Engine
}

func NewColumnHandler(engine Engine) *ColumnHandler {
	return &ColumnHandler{engine: engine}
}

type CreateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateColumnRequest struct {
	Title *string `json:"title"`
}

// List returns every column with its cards in render order.
func (h *ColumnHandler) List(c *gin.Context) {
	columns, err := h.engine.ListColumns(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]ColumnResponse, 0, len(columns))
	for i := range columns {
		resp = append(resp, toColumnResponse(&columns[i].Column, columns[i].Cards))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	column, err := h.engine.CreateColumn(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toColumnResponse(column, nil))
}

func (h *ColumnHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot name an existing column.
		c.JSON(http.StatusNotFound, gin.H{"error": "column not found"})
		return
	}
	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	column, err := h.engine.UpdateColumn(c.Request.Context(), id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(column, nil))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "column not found"})
		return
	}
	if err := h.engine.DeleteColumn(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
