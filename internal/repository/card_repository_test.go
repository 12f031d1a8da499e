package repository_test

import (
	"context"
	"testing"

	"trackboard/internal/model"
	"trackboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCardRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "cards" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	card, err := cardRepo.GetByID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetByColumnID_SortedByPosition(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	columnID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "cards" WHERE column_id = .* ORDER BY order_in_column`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "column_id", "title", "order_in_column"}).
			AddRow(first.String(), columnID.String(), "Task 1", 0).
			AddRow(second.String(), columnID.String(), "Task 2", 1))

	cards, err := cardRepo.GetByColumnID(context.Background(), columnID)

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, 0, cards[0].OrderInColumn)
	assert.Equal(t, 1, cards[1].OrderInColumn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_CountByColumnID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "cards" WHERE column_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := cardRepo.CountByColumnID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ShiftRight(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "order_in_column"=order_in_column \+ 1 WHERE column_id = .* AND order_in_column >= .*`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := cardRepo.ShiftRight(context.Background(), uuid.New(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_CloseGap(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "order_in_column"=order_in_column - 1 WHERE column_id = .* AND order_in_column > .*`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := cardRepo.CloseGap(context.Background(), uuid.New(), 0)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Renumber_SkipsCardsInPlace(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	inPlace := model.Card{ID: uuid.New(), OrderInColumn: 0}
	displaced := model.Card{ID: uuid.New(), OrderInColumn: 2}

	// Only the displaced card is written.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "order_in_column"=.* WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := cardRepo.Renumber(context.Background(), []model.Card{inPlace, displaced})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_DeleteByColumnID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cards" WHERE column_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := cardRepo.DeleteByColumnID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
