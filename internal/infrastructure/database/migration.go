// internal/infrastructure/database/migration.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/order"
	"github.com/your-org/tienda-backend/internal/domain/product"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		// User domain
		&user.Role{},
		&user.User{},
		&user.Address{},

		// Catalog
		&product.ProductType{},
		&product.Product{},

		// Cart domain
		&cart.Cart{},
		&cart.Line{},

		// Order domain
		&order.Order{},
		&order.OrderLine{},
		&order.Payment{},
		&order.Shipment{},
		&order.StatusHistory{},

		// Upload domain
		&upload.UploadedFile{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

type index struct {
	table   string
	name    string
	columns string
}

var indexes = []index{
	{"users", "idx_users_role_status", "role_id, status"},
	{"addresses", "idx_addresses_user_type_default", "user_id, type, is_default"},
	{"products", "idx_products_published_type", "published, product_type_id"},
	{"orders", "idx_orders_user_created", "user_id, created_at"},
	{"orders", "idx_orders_status_created", "status, created_at"},
	{"shipments", "idx_shipments_courier_status", "courier_id, status"},
	{"order_status_history", "idx_order_status_history_order", "order_id, created_at"},
}

// CreateIndexes creates composite indexes the struct tags do not describe.
// Failures are logged and skipped.
func (m *Migration) CreateIndexes() error {
	migrator := m.db.Migrator()
	created, failed := 0, 0

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := m.db.Exec(sql).Error; err != nil {
			m.logger.WithError(err).WithField("index", idx.name).Warn("Failed to create index")
			failed++
			continue
		}
		created++
	}

	m.logger.WithFields(logrus.Fields{"created": created, "failed": failed}).Info("Indexes checked")
	return nil
}

// SeedRoles makes sure ADMIN, CLIENTE and REPARTIDOR exist
func (m *Migration) SeedRoles() error {
	if err := user.EnsureRoles(m.db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	return nil
}

// SeedCatalog inserts sample product types and products into an empty
// catalog. Used in development only.
func (m *Migration) SeedCatalog() error {
	var count int64
	if err := m.db.Model(&product.ProductType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.Debug("Catalog already seeded")
		return nil
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		types := []product.ProductType{
			{Name: "Bebidas", Description: "Aguas, jugos y gaseosas", Active: true},
			{Name: "Panadería", Description: "Pan y repostería del día", Active: true},
			{Name: "Lácteos", Description: "Leche, quesos y yogures", Active: true},
		}
		if err := tx.Create(&types).Error; err != nil {
			return err
		}

		products := []product.Product{
			{ProductTypeID: types[0].ID, Name: "Agua sin gas 1L", Price: decimal.RequireFromString("1.00"), Published: true},
			{ProductTypeID: types[1].ID, Name: "Pan de yema", Price: decimal.RequireFromString("0.25"), Published: true},
			{ProductTypeID: types[2].ID, Name: "Queso fresco", Price: decimal.RequireFromString("3.50"),
				HasDiscount: true, Percentage: decimal.RequireFromString("10"), Published: true},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		m.logger.WithFields(logrus.Fields{"types": len(types), "products": len(products)}).Info("Catalog seeded")
		return nil
	})
}

// TableCounts reports the row count of every migrated table
func (m *Migration) TableCounts() map[string]int64 {
	counts := make(map[string]int64)
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: m.db}
		if err := stmt.Parse(model); err != nil {
			continue
		}
		var count int64
		m.db.Model(model).Count(&count)
		counts[stmt.Schema.Table] = count
	}
	return counts
}
