package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"trackboard/internal/engine"
	"trackboard/internal/handler"
	"trackboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupColumnRouter() (*gin.Engine, *MockEngine) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockEngine := new(MockEngine)
	columnHandler := handler.NewColumnHandler(mockEngine)

	r.GET("/columns", columnHandler.List)
	r.POST("/columns", columnHandler.Create)
	r.PUT("/columns/:id", columnHandler.Update)
	r.DELETE("/columns/:id", columnHandler.Delete)

	return r, mockEngine
}

func TestCreateColumn_Success(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	column := &model.Column{ID: uuid.New(), Title: "To Do", CardOrder: model.IDList{}}
	mockEngine.On("CreateColumn", mock.Anything, "To Do").Return(column, nil)

	resp := doJSON(router, "POST", "/columns", gin.H{"title": "To Do"})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body handler.ColumnResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, column.ID.String(), body.ID)
	assert.Equal(t, "To Do", body.Title)
	assert.Empty(t, body.CardOrder)
	mockEngine.AssertExpectations(t)
}

func TestCreateColumn_MissingTitle(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	resp := doJSON(router, "POST", "/columns", gin.H{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEngine.AssertNotCalled(t, "CreateColumn")
}

func TestUpdateColumn_EmptyTitle(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	id := uuid.New()
	mockEngine.On("UpdateColumn", mock.Anything, id, mock.AnythingOfType("*string")).
		Return(nil, engine.ErrInvalidArgument)

	resp := doJSON(router, "PUT", "/columns/"+id.String(), gin.H{"title": ""})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEngine.AssertExpectations(t)
}

func TestUpdateColumn_NotFound(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	id := uuid.New()
	mockEngine.On("UpdateColumn", mock.Anything, id, mock.AnythingOfType("*string")).
		Return(nil, engine.ErrNotFound)

	resp := doJSON(router, "PUT", "/columns/"+id.String(), gin.H{"title": "Renamed"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockEngine.AssertExpectations(t)
}

func TestDeleteColumn_Success(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	id := uuid.New()
	mockEngine.On("DeleteColumn", mock.Anything, id).Return(nil)

	resp := doJSON(router, "DELETE", "/columns/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockEngine.AssertExpectations(t)
}

func TestDeleteColumn_NotFound(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	id := uuid.New()
	mockEngine.On("DeleteColumn", mock.Anything, id).Return(engine.ErrNotFound)

	resp := doJSON(router, "DELETE", "/columns/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockEngine.AssertExpectations(t)
}

// After moving "Task 1" from "To Do" to "In Progress", the board shows the
// card in its new column at position 0 and the old column empty.
func TestListColumns_NestedCardsInRenderOrder(t *testing.T) {
	router, mockEngine := setupColumnRouter()

	todoID := uuid.New()
	inProgressID := uuid.New()
	task := *sampleCard(inProgressID, 0)

	mockEngine.On("ListColumns", mock.Anything).Return([]engine.ColumnWithCards{
		{
			Column: model.Column{ID: todoID, Title: "To Do", CardOrder: model.IDList{}},
		},
		{
			Column: model.Column{ID: inProgressID, Title: "In Progress", CardOrder: model.IDList{task.ID.String()}},
			Cards:  []model.Card{task},
		},
	}, nil)

	resp := doJSON(router, "GET", "/columns", nil)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body []handler.ColumnResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.Equal(t, "To Do", body[0].Title)
	assert.Empty(t, body[0].Cards)
	assert.Equal(t, "In Progress", body[1].Title)
	assert.Len(t, body[1].Cards, 1)
	assert.Equal(t, task.ID.String(), body[1].Cards[0].ID)
	assert.Equal(t, 0, body[1].Cards[0].OrderInColumn)
	mockEngine.AssertExpectations(t)
}
