// internal/domain/order/workflow.go
package order

import (
	"fmt"

	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

// next is the only successor of each order state; PAGADO is terminal.
var next = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusAssigned,
	OrderStatusAssigned:   OrderStatusInDelivery,
	OrderStatusInDelivery: OrderStatusPaid,
}

// CanAdvanceTo reports whether to is the direct successor of s.
func (s OrderStatus) CanAdvanceTo(to OrderStatus) bool {
	successor, ok := next[s]
	return ok && successor == to
}

// shipmentFor is the shipment state that accompanies each order state.
var shipmentFor = map[OrderStatus]ShipmentStatus{
	OrderStatusAssigned:   ShipmentStatusAssigned,
	OrderStatusInDelivery: ShipmentStatusInDelivery,
	OrderStatusPaid:       ShipmentStatusDelivered,
}

func conflict(format string, args ...interface{}) error {
	return apperr.Conflict(fmt.Sprintf(format, args...))
}

// CanAssign guards PENDIENTE -> ASIGNADO. existing is the order's shipment, if any.
func CanAssign(o *Order, existing *Shipment) error {
	if !o.Status.CanAdvanceTo(OrderStatusAssigned) {
		return conflict("El pedido no está PENDIENTE (estado actual: %s)", o.Status)
	}
	if existing != nil {
		return conflict("El pedido ya tiene un envío asignado")
	}
	return nil
}

// CanStartDelivery guards ASIGNADO -> EN_REPARTO.
func CanStartDelivery(o *Order, s *Shipment) error {
	if s.Status != shipmentFor[OrderStatusAssigned] || !o.Status.CanAdvanceTo(OrderStatusInDelivery) {
		return conflict("El pedido/envío no está en estado ASIGNADO (pedido: %s, envío: %s)", o.Status, s.Status)
	}
	return nil
}

// CanComplete guards EN_REPARTO -> PAGADO. The payment must still be pending.
func CanComplete(o *Order, s *Shipment, p *Payment) error {
	if s.Status != shipmentFor[OrderStatusInDelivery] || !o.Status.CanAdvanceTo(OrderStatusPaid) {
		return conflict("El pedido/envío no está EN_REPARTO (pedido: %s, envío: %s)", o.Status, s.Status)
	}
	if p.Status != PaymentStatusPending {
		return conflict("El pago ya fue registrado")
	}
	return nil
}
