// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service runs the order workflow: checkout, assignment, delivery start and
// completion. Every operation is one transaction.
type Service struct {
	store  Store
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new order workflow service
func NewService(db *gorm.DB, logger logrus.FieldLogger) *Service {
	return newService(NewStore(db), logger)
}

func newService(store Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CheckoutResult is returned after a cart becomes an order
type CheckoutResult struct {
	OK      bool            `json:"ok"`
	CartID  uint            `json:"cart_id"`
	OrderID uint            `json:"pedido_id"`
	Number  string          `json:"numero"`
	Total   decimal.Decimal `json:"total"`
}

// AssignRequest represents an admin assigning a courier
type AssignRequest struct {
	CourierID uint   `json:"repartidor_usuario_id" binding:"required"`
	Notes     string `json:"notas"`
}

// AssignResult is returned after a shipment is created
type AssignResult struct {
	ShipmentID  uint        `json:"envio_id"`
	OrderID     uint        `json:"pedido_id"`
	OrderStatus OrderStatus `json:"estado_pedido"`
}

// StartResult is returned when a courier leaves with an order
type StartResult struct {
	OK      bool        `json:"ok"`
	OrderID uint        `json:"pedido_id"`
	Status  OrderStatus `json:"estado"`
}

// CompleteRequest carries the collected payment. ReceiptURL is the stored
// receipt image.
type CompleteRequest struct {
	Method     PaymentMethod
	Amount     decimal.Decimal
	ReceiptURL string
}

// PaymentSummary is the payment part of CompleteResult
type PaymentSummary struct {
	Method     PaymentMethod   `json:"metodo"`
	Amount     decimal.Decimal `json:"monto"`
	ReceiptURL string          `json:"comprobante"`
	Status     PaymentStatus   `json:"estado"`
}

// CompleteResult is returned after delivery and payment are recorded
type CompleteResult struct {
	OK             bool           `json:"ok"`
	OrderID        uint           `json:"pedido_id"`
	ShipmentStatus ShipmentStatus `json:"envio_estado"`
	OrderStatus    OrderStatus    `json:"pedido_estado"`
	Payment        PaymentSummary `json:"pago"`
}

// Checkout converts the user's open cart into a PENDIENTE order with a
// pending payment. Nothing is written unless every step succeeds.
func (s *Service) Checkout(ctx context.Context, userID uint) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		c, err := tx.FindOpenCartForUpdate(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("No tiene carrito abierto")
		}
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		lines, err := tx.ListCartLines(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(lines) == 0 {
			return apperr.Validation("El carrito está vacío")
		}

		billing, err := tx.DefaultAddressID(ctx, userID, user.AddressBilling)
		if err != nil {
			return fmt.Errorf("failed to load billing address: %w", err)
		}
		shipping, err := tx.DefaultAddressID(ctx, userID, user.AddressShipping)
		if err != nil {
			return fmt.Errorf("failed to load shipping address: %w", err)
		}

		totals := cart.ComputeTotals(lines)
		o := &Order{
			UserID:            userID,
			CartID:            c.ID,
			BillingAddressID:  billing,
			ShippingAddressID: shipping,
			Status:            OrderStatusPending,
			Currency:          c.Currency,
			Subtotal:          totals.Subtotal,
			Discount:          totals.Discount,
			Shipping:          totals.Shipping,
			Tax:               totals.Tax,
			Total:             totals.Total,
		}
		if err := tx.CreateOrder(ctx, o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		number := FormatNumber(o.ID)
		if err := tx.SetOrderNumber(ctx, o.ID, number); err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}
		o.Number = &number

		if err := tx.CreateOrderLines(ctx, snapshotLines(o.ID, lines)); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		payment := &Payment{
			OrderID: o.ID,
			Method:  PaymentMethodCash,
			Status:  PaymentStatusPending,
			Amount:  o.Total,
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := tx.MarkCartOrdered(ctx, c.ID); err != nil {
			return err
		}
		if err := tx.AddHistory(ctx, &StatusHistory{OrderID: o.ID, To: OrderStatusPending, ChangedBy: userID}); err != nil {
			return fmt.Errorf("failed to record order history: %w", err)
		}

		result = &CheckoutResult{OK: true, CartID: c.ID, OrderID: o.ID, Number: number, Total: o.Total}
		return nil
	})
	observeTransition(transitionCheckout, err)
	if err != nil {
		return nil, s.fail("checkout", err, "No se pudo generar el pedido", logrus.Fields{"user_id": userID})
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": result.OrderID,
		"number":   result.Number,
		"user_id":  userID,
	}).Info("Order created")
	return result, nil
}

// Assign gives a PENDIENTE order to an active courier
func (s *Service) Assign(ctx context.Context, orderID, adminID uint, req *AssignRequest) (*AssignResult, error) {
	var result *AssignResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		o, err := s.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		existing, err := tx.FindShipmentForUpdate(ctx, orderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load shipment: %w", err)
		}
		if err := CanAssign(o, existing); err != nil {
			return err
		}

		ok, err := tx.IsActiveCourier(ctx, req.CourierID)
		if err != nil {
			return fmt.Errorf("failed to load courier: %w", err)
		}
		if !ok {
			return apperr.Validation("El usuario no es un repartidor activo")
		}

		sh := &Shipment{
			OrderID:    o.ID,
			CourierID:  req.CourierID,
			Status:     ShipmentStatusAssigned,
			Notes:      req.Notes,
			AssignedAt: s.now(),
		}
		if err := tx.CreateShipment(ctx, sh); err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}
		if err := s.advance(ctx, tx, o, OrderStatusAssigned, adminID); err != nil {
			return err
		}

		result = &AssignResult{ShipmentID: sh.ID, OrderID: o.ID, OrderStatus: OrderStatusAssigned}
		return nil
	})
	observeTransition(transitionAssign, err)
	if err != nil {
		return nil, s.fail("assign", err, "No se pudo asignar el pedido", logrus.Fields{"order_id": orderID})
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"courier_id": req.CourierID,
	}).Info("Order assigned")
	return result, nil
}

// StartDelivery moves the courier's ASIGNADO order and shipment to EN_REPARTO
func (s *Service) StartDelivery(ctx context.Context, orderID, courierID uint) (*StartResult, error) {
	err := s.store.Transaction(ctx, func(tx Store) error {
		o, err := s.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		sh, err := s.courierShipment(ctx, tx, orderID, courierID)
		if err != nil {
			return err
		}
		if err := CanStartDelivery(o, sh); err != nil {
			return err
		}

		sh.Status = ShipmentStatusInDelivery
		if err := tx.UpdateShipment(ctx, sh); err != nil {
			return fmt.Errorf("failed to update shipment: %w", err)
		}
		return s.advance(ctx, tx, o, OrderStatusInDelivery, courierID)
	})
	observeTransition(transitionStart, err)
	if err != nil {
		return nil, s.fail("start delivery", err, "No se pudo iniciar el reparto", logrus.Fields{"order_id": orderID})
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"courier_id": courierID,
	}).Info("Delivery started")
	return &StartResult{OK: true, OrderID: orderID, Status: OrderStatusInDelivery}, nil
}

// Complete records delivery and payment. The pending payment created at
// checkout is updated in place.
func (s *Service) Complete(ctx context.Context, orderID, courierID uint, req *CompleteRequest) (*CompleteResult, error) {
	if err := validateComplete(req); err != nil {
		observeTransition(transitionComplete, err)
		return nil, err
	}

	var result *CompleteResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		o, err := s.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		sh, err := s.courierShipment(ctx, tx, orderID, courierID)
		if err != nil {
			return err
		}
		p, err := tx.FindPaymentForUpdate(ctx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Pago no encontrado")
		}
		if err != nil {
			return fmt.Errorf("failed to load payment: %w", err)
		}
		if err := CanComplete(o, sh, p); err != nil {
			return err
		}

		now := s.now()
		sh.Status = ShipmentStatusDelivered
		sh.DeliveredAt = &now
		if err := tx.UpdateShipment(ctx, sh); err != nil {
			return fmt.Errorf("failed to update shipment: %w", err)
		}

		p.Status = PaymentStatusPaid
		p.Method = req.Method
		p.Amount = req.Amount.Round(2)
		p.ReceiptURL = req.ReceiptURL
		p.CollectedBy = &courierID
		p.CollectedAt = &now
		if err := tx.UpdatePayment(ctx, p); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		if err := s.advance(ctx, tx, o, OrderStatusPaid, courierID); err != nil {
			return err
		}

		result = &CompleteResult{
			OK:             true,
			OrderID:        o.ID,
			ShipmentStatus: ShipmentStatusDelivered,
			OrderStatus:    OrderStatusPaid,
			Payment: PaymentSummary{
				Method:     p.Method,
				Amount:     p.Amount,
				ReceiptURL: p.ReceiptURL,
				Status:     p.Status,
			},
		}
		return nil
	})
	observeTransition(transitionComplete, err)
	if err != nil {
		return nil, s.fail("complete delivery", err, "No se pudo completar la entrega", logrus.Fields{"order_id": orderID})
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"courier_id": courierID,
		"amount":     result.Payment.Amount.StringFixed(2),
	}).Info("Delivery completed")
	return result, nil
}

func validateComplete(req *CompleteRequest) error {
	if !req.Method.Valid() {
		return apperr.Validation("Método de pago inválido (EFECTIVO o TRANSFERENCIA)")
	}
	if !req.Amount.IsPositive() {
		return apperr.Validation("El monto debe ser mayor a 0")
	}
	if req.ReceiptURL == "" {
		return apperr.Validation("El comprobante es obligatorio")
	}
	return nil
}

func (s *Service) lockOrder(ctx context.Context, tx Store, orderID uint) (*Order, error) {
	o, err := tx.FindOrderForUpdate(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Pedido no encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return o, nil
}

// courierShipment hides shipments of other couriers as missing.
func (s *Service) courierShipment(ctx context.Context, tx Store, orderID, courierID uint) (*Shipment, error) {
	sh, err := tx.FindShipmentForUpdate(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && sh.CourierID != courierID) {
		return nil, apperr.NotFound("Envío no encontrado para este repartidor")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	return sh, nil
}

func (s *Service) advance(ctx context.Context, tx Store, o *Order, to OrderStatus, by uint) error {
	from := o.Status
	if err := tx.UpdateOrderStatus(ctx, o.ID, from, to); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	o.Status = to
	if err := tx.AddHistory(ctx, &StatusHistory{OrderID: o.ID, From: from, To: to, ChangedBy: by}); err != nil {
		return fmt.Errorf("failed to record order history: %w", err)
	}
	return nil
}

// fail logs err and returns it in a form safe for the caller.
func (s *Service) fail(op string, err error, msg string, fields logrus.Fields) error {
	entry := s.logger.WithFields(fields).WithError(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		entry.Errorf("Order %s failed", op)
	} else {
		entry.Debugf("Order %s rejected", op)
	}
	return apperr.Internal(msg, err)
}

func snapshotLines(orderID uint, lines []cart.Line) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		out = append(out, OrderLine{
			OrderID:      orderID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Discount:     l.Discount,
			Tax:          decimal.Zero,
			Total:        l.Total,
			ProductName:  l.Product.Name,
			ProductPhoto: l.Product.PhotoURL,
		})
	}
	return out
}
