package cart

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	shopperID = uint(7)
	openID    = uint(100)
	coffeeID  = uint(3)
	lineID    = uint(55)
)

var (
	cartColumns    = []string{"id", "user_id", "status", "currency"}
	lineColumns    = []string{"id", "cart_id", "product_id", "quantity", "unit_price", "discount", "total"}
	productColumns = []string{"id", "name", "photo_url", "price", "has_discount", "discount", "percentage", "published", "deleted_at"}
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func newTestService(db *gorm.DB) *Service {
	return NewService(db, &config.Config{Upload: config.UploadConfig{PublicURL: "http://localhost:3000"}})
}

func expectUserLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT .* FROM `users` WHERE .*FOR UPDATE").
		WithArgs(shopperID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(shopperID))
}

func expectOpenCart(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT \\* FROM `carts` WHERE user_id = \\? AND status = \\? ORDER BY id DESC LIMIT \\?").
		WithArgs(shopperID, "ABIERTO", 1).
		WillReturnRows(sqlmock.NewRows(cartColumns).AddRow(openID, shopperID, "ABIERTO", "USD"))
}

func expectProduct(mock sqlmock.Sqlmock, published bool, deletedAt interface{}) {
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE `products`.`id` = \\? ORDER BY `products`.`id` LIMIT \\?").
		WithArgs(coffeeID, 1).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(coffeeID, "Café", "", "10.00", false, "0", "0", published, deletedAt))
}

func TestService_GetOrCreate(t *testing.T) {
	t.Run("returns the existing open cart", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		expectUserLock(mock)
		expectOpenCart(mock)
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\? ORDER BY id ASC").
			WithArgs(openID).
			WillReturnRows(sqlmock.NewRows(lineColumns))

		view, err := newTestService(db).GetOrCreate(context.Background(), shopperID, "EUR")
		require.NoError(t, err)
		assert.Equal(t, openID, view.Cart.ID)
		assert.Equal(t, "USD", view.Cart.Currency)
		assert.Empty(t, view.Items)
		assert.True(t, view.Total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates a cart when none is open", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		expectUserLock(mock)
		mock.ExpectQuery("SELECT \\* FROM `carts` WHERE user_id = \\? AND status = \\?").
			WithArgs(shopperID, "ABIERTO", 1).
			WillReturnRows(sqlmock.NewRows(cartColumns))
		mock.ExpectExec("INSERT INTO `carts`").
			WithArgs(shopperID, "ABIERTO", "EUR", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(101, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\?").
			WithArgs(uint(101)).
			WillReturnRows(sqlmock.NewRows(lineColumns))

		view, err := newTestService(db).GetOrCreate(context.Background(), shopperID, " eur ")
		require.NoError(t, err)
		assert.Equal(t, uint(101), view.Cart.ID)
		assert.Equal(t, StatusOpen, view.Cart.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_AddItem(t *testing.T) {
	t.Run("merges quantity into the existing line", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		expectUserLock(mock)
		expectOpenCart(mock)
		expectProduct(mock, true, nil)
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\? AND product_id = \\? LIMIT \\? FOR UPDATE").
			WithArgs(openID, coffeeID, 1).
			WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(lineID, openID, coffeeID, 2, "10", "0", "20"))
		mock.ExpectExec("UPDATE `cart_items` SET").
			WithArgs(openID, coffeeID, 5, sqlmock.AnyArg(), sqlmock.AnyArg(), "50", sqlmock.AnyArg(), sqlmock.AnyArg(), lineID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\?").
			WithArgs(openID).
			WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(lineID, openID, coffeeID, 5, "10", "0", "50"))
		mock.ExpectQuery("SELECT \\* FROM `products` WHERE `products`.`id` = \\?").
			WithArgs(coffeeID).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(coffeeID, "Café", "cafe.png", "10.00", false, "0", "0", true, nil))

		quantity := 3
		view, err := newTestService(db).AddItem(context.Background(), shopperID, &AddItemRequest{ProductID: coffeeID, Quantity: &quantity})
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
		assert.Equal(t, "Café", view.Items[0].ProductName)
		assert.Equal(t, "http://localhost:3000/cafe.png", view.Items[0].PhotoURL)
		assert.Equal(t, "50", view.Total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("adds a new line with default quantity", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		expectUserLock(mock)
		expectOpenCart(mock)
		expectProduct(mock, true, nil)
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\? AND product_id = \\?").
			WithArgs(openID, coffeeID, 1).
			WillReturnRows(sqlmock.NewRows(lineColumns))
		mock.ExpectExec("INSERT INTO `cart_items`").
			WillReturnResult(sqlmock.NewResult(int64(lineID), 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\?").
			WithArgs(openID).
			WillReturnRows(sqlmock.NewRows(lineColumns))

		_, err := newTestService(db).AddItem(context.Background(), shopperID, &AddItemRequest{ProductID: coffeeID})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	unavailable := []struct {
		name      string
		published bool
		deletedAt interface{}
	}{
		{name: "unpublished product", published: false},
		{name: "deleted product", published: true, deletedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range unavailable {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			expectUserLock(mock)
			expectOpenCart(mock)
			expectProduct(mock, tc.published, tc.deletedAt)
			mock.ExpectRollback()

			_, err := newTestService(db).AddItem(context.Background(), shopperID, &AddItemRequest{ProductID: coffeeID})
			require.Error(t, err)
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("rejects non positive quantity", func(t *testing.T) {
		db, mock := newMockDB(t)

		zero := 0
		_, err := newTestService(db).AddItem(context.Background(), shopperID, &AddItemRequest{ProductID: coffeeID, Quantity: &zero})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_LineOutsideOpenCart(t *testing.T) {
	testCases := []struct {
		name string
		call func(s *Service) error
	}{
		{
			name: "update",
			call: func(s *Service) error {
				_, err := s.UpdateItem(context.Background(), shopperID, lineID, 2)
				return err
			},
		},
		{
			name: "remove",
			call: func(s *Service) error {
				_, err := s.RemoveItem(context.Background(), shopperID, lineID)
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectQuery("SELECT .* FROM `cart_items` JOIN carts ON carts.id = cart_items.cart_id WHERE .*FOR UPDATE").
				WithArgs(lineID, shopperID, "ABIERTO", 1).
				WillReturnRows(sqlmock.NewRows(lineColumns))
			mock.ExpectRollback()

			err := tc.call(newTestService(db))
			require.Error(t, err)
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
