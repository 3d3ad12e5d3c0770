package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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
	return db, mock, mockDB
}

func TestInTx(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		fn         func(tx *gorm.DB) (int64, error)
		wantResult int64
		wantErr    error
	}{
		{
			name: "commit on success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE carts SET status").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(tx *gorm.DB) (int64, error) {
				res := tx.Exec("UPDATE carts SET status = ? WHERE id = ?", "PEDIDO", 1)
				return res.RowsAffected, res.Error
			},
			wantResult: 1,
		},
		{
			name: "rollback on error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO orders").
					WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectRollback()
			},
			fn: func(tx *gorm.DB) (int64, error) {
				if err := tx.Exec("INSERT INTO orders (user_id) VALUES (?)", 3).Error; err != nil {
					return 0, err
				}
				return 0, errBoom
			},
			wantErr: errBoom,
		},
		{
			name: "statement failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO payments").
					WillReturnError(errBoom)
				mock.ExpectRollback()
			},
			fn: func(tx *gorm.DB) (int64, error) {
				res := tx.Exec("INSERT INTO payments (order_id) VALUES (?)", 9)
				return res.RowsAffected, res.Error
			},
			wantErr: errBoom,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, _ := openMockDB(t)
			tc.mock(mock)

			got, err := InTx(context.Background(), db, tc.fn)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantResult, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInTx_PanicRollsBack(t *testing.T) {
	db, mock, _ := openMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "unexpected", func() {
		_ = Run(context.Background(), db, func(tx *gorm.DB) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_BeginFailure(t *testing.T) {
	db, mock, _ := openMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := Run(context.Background(), db, func(tx *gorm.DB) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
