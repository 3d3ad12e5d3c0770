package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected failure")

type addressKey struct {
	userID uint
	kind   user.AddressType
}

type memState struct {
	carts      map[uint]cart.Cart
	cartLines  map[uint][]cart.Line
	couriers   map[uint]bool
	addresses  map[addressKey]uint
	orders     map[uint]Order
	orderLines []OrderLine
	payments   map[uint]Payment  // by order id
	shipments  map[uint]Shipment // by order id
	history    []StatusHistory
	seq        uint
}

func newMemState() *memState {
	return &memState{
		carts:     map[uint]cart.Cart{},
		cartLines: map[uint][]cart.Line{},
		couriers:  map[uint]bool{},
		addresses: map[addressKey]uint{},
		orders:    map[uint]Order{},
		payments:  map[uint]Payment{},
		shipments: map[uint]Shipment{},
	}
}

func (m *memState) clone() *memState {
	c := newMemState()
	for k, v := range m.carts {
		c.carts[k] = v
	}
	for k, v := range m.cartLines {
		c.cartLines[k] = append([]cart.Line(nil), v...)
	}
	for k, v := range m.couriers {
		c.couriers[k] = v
	}
	for k, v := range m.addresses {
		c.addresses[k] = v
	}
	for k, v := range m.orders {
		c.orders[k] = v
	}
	for k, v := range m.payments {
		c.payments[k] = v
	}
	for k, v := range m.shipments {
		c.shipments[k] = v
	}
	c.orderLines = append([]OrderLine(nil), m.orderLines...)
	c.history = append([]StatusHistory(nil), m.history...)
	c.seq = m.seq
	return c
}

func (m *memState) nextID() uint {
	m.seq++
	return m.seq
}

// memStore is an in-memory Store. A failed Transaction restores the state
// it started from.
type memStore struct {
	state  *memState
	failOn string
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return fmt.Errorf("%s: %w", op, errInjected)
	}
	return nil
}

func (s *memStore) Transaction(ctx context.Context, fn func(Store) error) error {
	snapshot := s.state.clone()
	if err := fn(s); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *memStore) FindOpenCartForUpdate(ctx context.Context, userID uint) (*cart.Cart, error) {
	if err := s.fail("FindOpenCartForUpdate"); err != nil {
		return nil, err
	}
	for _, c := range s.state.carts {
		if c.UserID == userID && c.Status == cart.StatusOpen {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) ListCartLines(ctx context.Context, cartID uint) ([]cart.Line, error) {
	if err := s.fail("ListCartLines"); err != nil {
		return nil, err
	}
	return append([]cart.Line(nil), s.state.cartLines[cartID]...), nil
}

func (s *memStore) MarkCartOrdered(ctx context.Context, cartID uint) error {
	if err := s.fail("MarkCartOrdered"); err != nil {
		return err
	}
	c := s.state.carts[cartID]
	c.Status = cart.StatusOrdered
	s.state.carts[cartID] = c
	return nil
}

func (s *memStore) DefaultAddressID(ctx context.Context, userID uint, addressType user.AddressType) (*uint, error) {
	if err := s.fail("DefaultAddressID"); err != nil {
		return nil, err
	}
	id, ok := s.state.addresses[addressKey{userID, addressType}]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (s *memStore) IsActiveCourier(ctx context.Context, userID uint) (bool, error) {
	if err := s.fail("IsActiveCourier"); err != nil {
		return false, err
	}
	return s.state.couriers[userID], nil
}

func (s *memStore) CreateOrder(ctx context.Context, o *Order) error {
	if err := s.fail("CreateOrder"); err != nil {
		return err
	}
	o.ID = s.state.nextID()
	s.state.orders[o.ID] = *o
	return nil
}

func (s *memStore) SetOrderNumber(ctx context.Context, orderID uint, number string) error {
	if err := s.fail("SetOrderNumber"); err != nil {
		return err
	}
	o := s.state.orders[orderID]
	o.Number = &number
	s.state.orders[orderID] = o
	return nil
}

func (s *memStore) CreateOrderLines(ctx context.Context, lines []OrderLine) error {
	if err := s.fail("CreateOrderLines"); err != nil {
		return err
	}
	for _, l := range lines {
		l.ID = s.state.nextID()
		s.state.orderLines = append(s.state.orderLines, l)
	}
	return nil
}

func (s *memStore) FindOrderForUpdate(ctx context.Context, orderID uint) (*Order, error) {
	if err := s.fail("FindOrderForUpdate"); err != nil {
		return nil, err
	}
	o, ok := s.state.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, orderID uint, from, to OrderStatus) error {
	if err := s.fail("UpdateOrderStatus"); err != nil {
		return err
	}
	o := s.state.orders[orderID]
	if o.Status != from {
		return conflict("stale order status %s", o.Status)
	}
	o.Status = to
	s.state.orders[orderID] = o
	return nil
}

func (s *memStore) AddHistory(ctx context.Context, h *StatusHistory) error {
	if err := s.fail("AddHistory"); err != nil {
		return err
	}
	h.ID = s.state.nextID()
	s.state.history = append(s.state.history, *h)
	return nil
}

func (s *memStore) CreatePayment(ctx context.Context, p *Payment) error {
	if err := s.fail("CreatePayment"); err != nil {
		return err
	}
	p.ID = s.state.nextID()
	s.state.payments[p.OrderID] = *p
	return nil
}

func (s *memStore) FindPaymentForUpdate(ctx context.Context, orderID uint) (*Payment, error) {
	if err := s.fail("FindPaymentForUpdate"); err != nil {
		return nil, err
	}
	p, ok := s.state.payments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *memStore) UpdatePayment(ctx context.Context, p *Payment) error {
	if err := s.fail("UpdatePayment"); err != nil {
		return err
	}
	s.state.payments[p.OrderID] = *p
	return nil
}

func (s *memStore) FindShipmentForUpdate(ctx context.Context, orderID uint) (*Shipment, error) {
	if err := s.fail("FindShipmentForUpdate"); err != nil {
		return nil, err
	}
	sh, ok := s.state.shipments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sh, nil
}

func (s *memStore) CreateShipment(ctx context.Context, sh *Shipment) error {
	if err := s.fail("CreateShipment"); err != nil {
		return err
	}
	if _, exists := s.state.shipments[sh.OrderID]; exists {
		return conflict("duplicate shipment")
	}
	sh.ID = s.state.nextID()
	s.state.shipments[sh.OrderID] = *sh
	return nil
}

func (s *memStore) UpdateShipment(ctx context.Context, sh *Shipment) error {
	if err := s.fail("UpdateShipment"); err != nil {
		return err
	}
	s.state.shipments[sh.OrderID] = *sh
	return nil
}
