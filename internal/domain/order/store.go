// internal/domain/order/store.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence used by the order workflow. Lookups report a
// missing row as gorm.ErrRecordNotFound. Methods called on the Store passed
// to Transaction's callback run inside that transaction.
type Store interface {
	Transaction(ctx context.Context, fn func(Store) error) error

	FindOpenCartForUpdate(ctx context.Context, userID uint) (*cart.Cart, error)
	ListCartLines(ctx context.Context, cartID uint) ([]cart.Line, error)
	MarkCartOrdered(ctx context.Context, cartID uint) error
	DefaultAddressID(ctx context.Context, userID uint, addressType user.AddressType) (*uint, error)
	IsActiveCourier(ctx context.Context, userID uint) (bool, error)

	CreateOrder(ctx context.Context, o *Order) error
	SetOrderNumber(ctx context.Context, orderID uint, number string) error
	CreateOrderLines(ctx context.Context, lines []OrderLine) error
	FindOrderForUpdate(ctx context.Context, orderID uint) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, from, to OrderStatus) error
	AddHistory(ctx context.Context, h *StatusHistory) error

	CreatePayment(ctx context.Context, p *Payment) error
	FindPaymentForUpdate(ctx context.Context, orderID uint) (*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error

	FindShipmentForUpdate(ctx context.Context, orderID uint) (*Shipment, error)
	CreateShipment(ctx context.Context, s *Shipment) error
	UpdateShipment(ctx context.Context, s *Shipment) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a gorm backed Store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return dbtx.Run(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) forUpdate(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *gormStore) FindOpenCartForUpdate(ctx context.Context, userID uint) (*cart.Cart, error) {
	var c cart.Cart
	err := s.forUpdate(ctx).
		Where("user_id = ? AND status = ?", userID, cart.StatusOpen).
		Order("id DESC").
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) ListCartLines(ctx context.Context, cartID uint) ([]cart.Line, error) {
	var lines []cart.Line
	err := s.db.WithContext(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (s *gormStore) MarkCartOrdered(ctx context.Context, cartID uint) error {
	result := s.db.WithContext(ctx).Model(&cart.Cart{}).
		Where("id = ? AND status = ?", cartID, cart.StatusOpen).
		Update("status", cart.StatusOrdered)
	if result.Error != nil {
		return fmt.Errorf("failed to mark cart %d ordered: %w", cartID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Conflict("El carrito ya no está abierto")
	}
	return nil
}

func (s *gormStore) DefaultAddressID(ctx context.Context, userID uint, addressType user.AddressType) (*uint, error) {
	return user.DefaultAddressID(s.db.WithContext(ctx), userID, addressType)
}

func (s *gormStore) IsActiveCourier(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&user.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.id = ? AND users.status = ? AND roles.name = ?", userID, user.StatusActive, user.RoleCourier).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CreateOrder(ctx context.Context, o *Order) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (s *gormStore) SetOrderNumber(ctx context.Context, orderID uint, number string) error {
	return s.db.WithContext(ctx).Model(&Order{}).Where("id = ?", orderID).Update("number", number).Error
}

func (s *gormStore) CreateOrderLines(ctx context.Context, lines []OrderLine) error {
	return s.db.WithContext(ctx).Create(&lines).Error
}

func (s *gormStore) FindOrderForUpdate(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	if err := s.forUpdate(ctx).Take(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderStatus moves the order only if it is still in from.
func (s *gormStore) UpdateOrderStatus(ctx context.Context, orderID uint, from, to OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update order %d status: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return conflict("El pedido cambió de estado (esperado: %s)", from)
	}
	return nil
}

func (s *gormStore) AddHistory(ctx context.Context, h *StatusHistory) error {
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *gormStore) CreatePayment(ctx context.Context, p *Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) FindPaymentForUpdate(ctx context.Context, orderID uint) (*Payment, error) {
	var p Payment
	err := s.forUpdate(ctx).Where("order_id = ?", orderID).Order("id ASC").Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) UpdatePayment(ctx context.Context, p *Payment) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *gormStore) FindShipmentForUpdate(ctx context.Context, orderID uint) (*Shipment, error) {
	var sh Shipment
	if err := s.forUpdate(ctx).Where("order_id = ?", orderID).Take(&sh).Error; err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *gormStore) CreateShipment(ctx context.Context, sh *Shipment) error {
	err := s.db.WithContext(ctx).Create(sh).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("El pedido ya tiene un envío asignado")
	}
	return err
}

func (s *gormStore) UpdateShipment(ctx context.Context, sh *Shipment) error {
	return s.db.WithContext(ctx).Save(sh).Error
}
