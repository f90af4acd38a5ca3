package storage

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"cafe-pos/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreateOrder_CommitsOrderAndItems(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	order := &domain.Order{
		UserID:      1,
		ServiceType: "dine-in",
		Subtotal:    9.0,
		Total:       9.0,
		Status:      "pending",
		CreatedAt:   createdAt,
		Items: []domain.OrderItem{
			{MenuItemID: 1, Quantity: 2, Price: 4.5},
			{MenuItemID: 3, Quantity: 1, Price: 2.0},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(1, "dine-in", 9.0, 0.0, 0.0, 9.0, "pending", createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(5, 1, 2, 4.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(5, 3, 1, 2.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.CreateOrder(order)

	assert.NoError(t, err)
	assert.Equal(t, 5, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_RollsBackWhenItemInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	order := &domain.Order{
		UserID:      1,
		ServiceType: "takeaway",
		Total:       4.5,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
		Items:       []domain.OrderItem{{MenuItemID: 99, Quantity: 1, Price: 4.5}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repo.CreateOrder(order)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	order, err := repo.GetOrder(42)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_JoinsMenuItemNames(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "service_type", "subtotal", "tax", "discount", "total", "status", "created_at"}).
			AddRow(5, 1, "dine-in", 9.0, 0.0, 0.0, 9.0, "pending", createdAt))
	mock.ExpectQuery("SELECT (.+) FROM order_items oi").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "name", "quantity", "price"}).
			AddRow(1, "Cappuccino", 2, 4.5))

	order, err := repo.GetOrder(5)

	assert.NoError(t, err)
	assert.Equal(t, 1, order.UserID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Cappuccino", order.Items[0].Name)
	assert.Equal(t, 4.5, order.Items[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ReplacesLineSetInOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	order := &domain.Order{
		ID:          5,
		UserID:      1,
		ServiceType: "dine-in",
		Total:       2.0,
		Status:      "pending",
		Items:       []domain.OrderItem{{MenuItemID: 3, Quantity: 1, Price: 2.0}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs("dine-in", 0.0, 0.0, 0.0, 2.0, "pending", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM order_items").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(5, 3, 1, 2.0).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	err := repo.UpdateOrder(order, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ScalarsOnlyLeavesItemsUntouched(t *testing.T) {
	repo, mock := newMockRepo(t)

	order := &domain.Order{
		ID:          5,
		ServiceType: "takeaway",
		Total:       9.0,
		Status:      "completed",
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs("takeaway", 0.0, 0.0, 0.0, 9.0, "completed", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateOrder(order, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByUsername("ghost")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMenuItem_ReturnsAffectedRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.DeleteMenuItem(7)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestSeedUsers_SkipsWhenUsersExist(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := repo.SeedUsers()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedUsers_ProvisionsDefaultAccounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	err := repo.SeedUsers()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
