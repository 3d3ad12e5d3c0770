// internal/pkg/dbtx/dbtx.go
package dbtx

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InTx runs fn inside a transaction and returns its result. The transaction
// is committed when fn succeeds and rolled back when fn returns an error or
// panics; a panic is re-raised after the rollback.
func InTx[T any](ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var zero T

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	result, err := fn(tx)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logrus.WithError(rbErr).Warn("transaction rollback failed")
		}
		logrus.WithError(err).Debug("transaction rolled back")
		done = true
		return zero, err
	}

	done = true
	if err := tx.Commit().Error; err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// Run is InTx for callers that only need the error.
func Run(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	_, err := InTx(ctx, db, func(tx *gorm.DB) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}
