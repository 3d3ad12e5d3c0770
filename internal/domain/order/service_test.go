package order

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/product"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

const (
	customerID = uint(7)
	adminID    = uint(1)
	courierID  = uint(30)
	otherID    = uint(31)
	cartID     = uint(100)
)

type WorkflowSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
	svc   *Service
	now   time.Time
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.ctx = context.Background()
	s.store = newMemStore()
	s.svc = newService(s.store, logger)
	s.now = time.Date(2024, 5, 2, 15, 4, 5, 0, time.UTC)
	s.svc.now = func() time.Time { return s.now }

	s.store.state.couriers[courierID] = true
	s.store.state.couriers[otherID] = true
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// seedCart puts (3 @ 10.00) + (1 @ 5.00 with 10% off) in the customer's open cart.
func (s *WorkflowSuite) seedCart() {
	water := &product.Product{ID: 1, Name: "Agua", PhotoURL: "/images/productos/agua.png", Price: dec("10")}
	bread := &product.Product{ID: 2, Name: "Pan", Price: dec("5"), HasDiscount: true, Percentage: dec("10")}

	var a, b cart.Line
	a.Reprice(water, 3)
	a.CartID, a.Product = cartID, *water
	b.Reprice(bread, 1)
	b.CartID, b.Product = cartID, *bread

	s.store.state.carts[cartID] = cart.Cart{ID: cartID, UserID: customerID, Status: cart.StatusOpen, Currency: "USD"}
	s.store.state.cartLines[cartID] = []cart.Line{a, b}
}

func (s *WorkflowSuite) checkout() uint {
	s.seedCart()
	res, err := s.svc.Checkout(s.ctx, customerID)
	s.Require().NoError(err)
	return res.OrderID
}

func (s *WorkflowSuite) assigned() uint {
	id := s.checkout()
	_, err := s.svc.Assign(s.ctx, id, adminID, &AssignRequest{CourierID: courierID})
	s.Require().NoError(err)
	return id
}

func (s *WorkflowSuite) inDelivery() uint {
	id := s.assigned()
	_, err := s.svc.StartDelivery(s.ctx, id, courierID)
	s.Require().NoError(err)
	return id
}

func (s *WorkflowSuite) validComplete() *CompleteRequest {
	return &CompleteRequest{Method: PaymentMethodTransfer, Amount: dec("34.50"), ReceiptURL: "/images/comprobante/r.png"}
}

func (s *WorkflowSuite) requireKind(kind apperr.Kind, err error) {
	s.Require().Error(err)
	s.Equal(kind, apperr.KindOf(err), "unexpected error: %v", err)
}

func (s *WorkflowSuite) TestCheckout_SnapshotsCart() {
	s.seedCart()
	s.store.state.addresses[addressKey{customerID, user.AddressShipping}] = 44

	res, err := s.svc.Checkout(s.ctx, customerID)
	s.Require().NoError(err)

	s.True(res.OK)
	s.Equal(cartID, res.CartID)
	s.Equal("PED-000001", res.Number)
	s.Equal("34.50", res.Total.StringFixed(2))

	o := s.store.state.orders[res.OrderID]
	s.Equal(OrderStatusPending, o.Status)
	s.Equal("PED-000001", o.NumberOrEmpty())
	s.Equal("35.00", o.Subtotal.StringFixed(2))
	s.Equal("0.50", o.Discount.StringFixed(2))
	s.Nil(o.BillingAddressID)
	s.Require().NotNil(o.ShippingAddressID)
	s.Equal(uint(44), *o.ShippingAddressID)

	s.Require().Len(s.store.state.orderLines, 2)
	sum := decimal.Zero
	for _, l := range s.store.state.orderLines {
		s.Equal(res.OrderID, l.OrderID)
		sum = sum.Add(l.Total)
	}
	s.True(sum.Equal(o.Total))
	s.Equal("Agua", s.store.state.orderLines[0].ProductName)
	s.Equal("/images/productos/agua.png", s.store.state.orderLines[0].ProductPhoto)

	p := s.store.state.payments[res.OrderID]
	s.Equal(PaymentStatusPending, p.Status)
	s.Equal(PaymentMethodCash, p.Method)
	s.True(p.Amount.Equal(o.Total))

	s.Empty(s.store.state.shipments)
	s.Equal(cart.StatusOrdered, s.store.state.carts[cartID].Status)
}

func (s *WorkflowSuite) TestCheckout_WithoutOpenCart() {
	_, err := s.svc.Checkout(s.ctx, customerID)
	s.requireKind(apperr.KindValidation, err)
	s.Empty(s.store.state.orders)
	s.Empty(s.store.state.payments)
}

func (s *WorkflowSuite) TestCheckout_EmptyCart() {
	s.store.state.carts[cartID] = cart.Cart{ID: cartID, UserID: customerID, Status: cart.StatusOpen}

	_, err := s.svc.Checkout(s.ctx, customerID)
	s.requireKind(apperr.KindValidation, err)
	s.Empty(s.store.state.orders)
	s.Empty(s.store.state.payments)
	s.Equal(cart.StatusOpen, s.store.state.carts[cartID].Status)
}

func (s *WorkflowSuite) TestCheckout_RollsBackOnFailure() {
	for _, op := range []string{"CreateOrderLines", "CreatePayment", "MarkCartOrdered"} {
		s.Run(op, func() {
			s.SetupTest()
			s.seedCart()
			s.store.failOn = op

			_, err := s.svc.Checkout(s.ctx, customerID)
			s.requireKind(apperr.KindInternal, err)
			s.Equal("No se pudo generar el pedido", apperr.PublicMessage(err))
			s.Empty(s.store.state.orders)
			s.Empty(s.store.state.orderLines)
			s.Empty(s.store.state.payments)
			s.Equal(cart.StatusOpen, s.store.state.carts[cartID].Status)
		})
	}
}

func (s *WorkflowSuite) TestCheckout_Twice() {
	s.checkout()
	_, err := s.svc.Checkout(s.ctx, customerID)
	s.requireKind(apperr.KindValidation, err)
	s.Len(s.store.state.orders, 1)
}

func (s *WorkflowSuite) TestAssign() {
	id := s.checkout()

	res, err := s.svc.Assign(s.ctx, id, adminID, &AssignRequest{CourierID: courierID, Notes: "Tocar timbre"})
	s.Require().NoError(err)
	s.Equal(id, res.OrderID)
	s.Equal(OrderStatusAssigned, res.OrderStatus)

	sh := s.store.state.shipments[id]
	s.Equal(res.ShipmentID, sh.ID)
	s.Equal(courierID, sh.CourierID)
	s.Equal(ShipmentStatusAssigned, sh.Status)
	s.Equal(s.now, sh.AssignedAt)
	s.Equal("Tocar timbre", sh.Notes)
	s.Equal(OrderStatusAssigned, s.store.state.orders[id].Status)
}

func (s *WorkflowSuite) TestAssign_Rejections() {
	id := s.checkout()

	_, err := s.svc.Assign(s.ctx, 999, adminID, &AssignRequest{CourierID: courierID})
	s.requireKind(apperr.KindNotFound, err)

	_, err = s.svc.Assign(s.ctx, id, adminID, &AssignRequest{CourierID: customerID})
	s.requireKind(apperr.KindValidation, err)
	s.Empty(s.store.state.shipments)
	s.Equal(OrderStatusPending, s.store.state.orders[id].Status)

	_, err = s.svc.Assign(s.ctx, id, adminID, &AssignRequest{CourierID: courierID})
	s.Require().NoError(err)

	_, err = s.svc.Assign(s.ctx, id, adminID, &AssignRequest{CourierID: otherID})
	s.requireKind(apperr.KindConflict, err)
	s.Len(s.store.state.shipments, 1)
	s.Equal(courierID, s.store.state.shipments[id].CourierID)
}

func (s *WorkflowSuite) TestStartDelivery() {
	id := s.assigned()

	_, err := s.svc.StartDelivery(s.ctx, id, otherID)
	s.requireKind(apperr.KindNotFound, err)
	s.Equal(OrderStatusAssigned, s.store.state.orders[id].Status)

	res, err := s.svc.StartDelivery(s.ctx, id, courierID)
	s.Require().NoError(err)
	s.Equal(StartResult{OK: true, OrderID: id, Status: OrderStatusInDelivery}, *res)
	s.Equal(OrderStatusInDelivery, s.store.state.orders[id].Status)
	s.Equal(ShipmentStatusInDelivery, s.store.state.shipments[id].Status)

	_, err = s.svc.StartDelivery(s.ctx, id, courierID)
	s.requireKind(apperr.KindConflict, err)
}

func (s *WorkflowSuite) TestStartDelivery_Unassigned() {
	id := s.checkout()
	_, err := s.svc.StartDelivery(s.ctx, id, courierID)
	s.requireKind(apperr.KindNotFound, err)
	s.Equal(OrderStatusPending, s.store.state.orders[id].Status)
}

func (s *WorkflowSuite) TestComplete_UpdatesPaymentInPlace() {
	id := s.inDelivery()
	before := s.store.state.payments[id]

	res, err := s.svc.Complete(s.ctx, id, courierID, s.validComplete())
	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal(ShipmentStatusDelivered, res.ShipmentStatus)
	s.Equal(OrderStatusPaid, res.OrderStatus)
	s.Equal(PaymentStatusPaid, res.Payment.Status)
	s.Equal(PaymentMethodTransfer, res.Payment.Method)

	s.Len(s.store.state.payments, 1)
	p := s.store.state.payments[id]
	s.Equal(before.ID, p.ID)
	s.Equal(PaymentStatusPaid, p.Status)
	s.Equal("34.50", p.Amount.StringFixed(2))
	s.Equal("/images/comprobante/r.png", p.ReceiptURL)
	s.Require().NotNil(p.CollectedBy)
	s.Equal(courierID, *p.CollectedBy)
	s.Require().NotNil(p.CollectedAt)
	s.Equal(s.now, *p.CollectedAt)

	sh := s.store.state.shipments[id]
	s.Equal(ShipmentStatusDelivered, sh.Status)
	s.Require().NotNil(sh.DeliveredAt)

	o := s.store.state.orders[id]
	s.Equal(OrderStatusPaid, o.Status)
	s.Equal("34.50", o.Total.StringFixed(2))

	var path []OrderStatus
	for _, h := range s.store.state.history {
		path = append(path, h.To)
	}
	s.Equal([]OrderStatus{OrderStatusPending, OrderStatusAssigned, OrderStatusInDelivery, OrderStatusPaid}, path)
}

func (s *WorkflowSuite) TestComplete_Validation() {
	id := s.inDelivery()
	testCases := []struct {
		name string
		req  CompleteRequest
	}{
		{name: "unknown method", req: CompleteRequest{Method: "TARJETA", Amount: dec("1"), ReceiptURL: "/r.png"}},
		{name: "zero amount", req: CompleteRequest{Method: PaymentMethodCash, Amount: decimal.Zero, ReceiptURL: "/r.png"}},
		{name: "negative amount", req: CompleteRequest{Method: PaymentMethodCash, Amount: dec("-3"), ReceiptURL: "/r.png"}},
		{name: "missing receipt", req: CompleteRequest{Method: PaymentMethodCash, Amount: dec("1")}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := tc.req
			_, err := s.svc.Complete(s.ctx, id, courierID, &req)
			s.requireKind(apperr.KindValidation, err)
			s.Equal(OrderStatusInDelivery, s.store.state.orders[id].Status)
		})
	}
}

func (s *WorkflowSuite) TestComplete_BeforeStart() {
	id := s.assigned()
	_, err := s.svc.Complete(s.ctx, id, courierID, s.validComplete())
	s.requireKind(apperr.KindConflict, err)
	s.Equal(PaymentStatusPending, s.store.state.payments[id].Status)
	s.Equal(ShipmentStatusAssigned, s.store.state.shipments[id].Status)
}

func (s *WorkflowSuite) TestComplete_OtherCourier() {
	id := s.inDelivery()
	_, err := s.svc.Complete(s.ctx, id, otherID, s.validComplete())
	s.requireKind(apperr.KindNotFound, err)
}

func (s *WorkflowSuite) TestComplete_Twice() {
	id := s.inDelivery()
	_, err := s.svc.Complete(s.ctx, id, courierID, s.validComplete())
	s.Require().NoError(err)

	_, err = s.svc.Complete(s.ctx, id, courierID, s.validComplete())
	s.requireKind(apperr.KindConflict, err)
	s.Len(s.store.state.payments, 1)
}

func (s *WorkflowSuite) TestComplete_RollsBackTogether() {
	id := s.inDelivery()
	s.store.failOn = "UpdateOrderStatus"

	_, err := s.svc.Complete(s.ctx, id, courierID, s.validComplete())
	s.requireKind(apperr.KindInternal, err)

	s.Equal(OrderStatusInDelivery, s.store.state.orders[id].Status)
	s.Equal(ShipmentStatusInDelivery, s.store.state.shipments[id].Status)
	p := s.store.state.payments[id]
	s.Equal(PaymentStatusPending, p.Status)
	s.Nil(p.CollectedBy)
}
