// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDIENTE"
	OrderStatusAssigned   OrderStatus = "ASIGNADO"
	OrderStatusInDelivery OrderStatus = "EN_REPARTO"
	OrderStatusPaid       OrderStatus = "PAGADO"
)

// ShipmentStatus represents the shipment status
type ShipmentStatus string

const (
	ShipmentStatusAssigned   ShipmentStatus = "ASIGNADO"
	ShipmentStatusInDelivery ShipmentStatus = "EN_REPARTO"
	ShipmentStatusDelivered  ShipmentStatus = "ENTREGADO"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDIENTE"
	PaymentStatusPaid    PaymentStatus = "PAGADO"
)

// PaymentMethod is how the courier collected the money
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "EFECTIVO"
	PaymentMethodTransfer PaymentMethod = "TRANSFERENCIA"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodTransfer
}

// Order represents the order entity. Monetary fields are a snapshot taken
// at checkout and are never recomputed.
type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Number            *string         `gorm:"uniqueIndex;size:20" json:"numero"`
	UserID            uint            `gorm:"not null;index" json:"usuario_id"`
	CartID            uint            `gorm:"not null;uniqueIndex" json:"carrito_id"`
	BillingAddressID  *uint           `gorm:"index" json:"direccion_facturacion_id"`
	ShippingAddressID *uint           `gorm:"index" json:"direccion_envio_id"`
	Status            OrderStatus     `gorm:"not null;size:20;default:PENDIENTE;index" json:"estado"`
	Currency          string          `gorm:"not null;size:3;default:USD" json:"moneda"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"descuento"`
	Shipping          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"envio"`
	Tax               decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"impuesto"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt         time.Time       `gorm:"index" json:"creado_en"`
	UpdatedAt         time.Time       `json:"actualizado_en"`

	// Relationships
	Lines    []OrderLine `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Shipment *Shipment   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// OrderLine is an immutable copy of a cart line
type OrderLine struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"pedido_id"`
	ProductID    uint            `gorm:"not null;index" json:"producto_id"`
	Quantity     int             `gorm:"not null" json:"cantidad"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio_unitario"`
	Discount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"descuento"`
	Tax          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"impuesto"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	ProductName  string          `gorm:"not null;size:200" json:"producto_nombre"`
	ProductPhoto string          `gorm:"size:500" json:"producto_foto"`
	CreatedAt    time.Time       `json:"creado_en"`
}

// Payment is the single evolving payment record of an order
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;uniqueIndex" json:"pedido_id"`
	Method      PaymentMethod   `gorm:"not null;size:20" json:"metodo"`
	Status      PaymentStatus   `gorm:"not null;size:20;default:PENDIENTE;index" json:"estado"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monto"`
	ReceiptURL  string          `gorm:"size:500" json:"comprobante_transferencia_url"`
	CollectedBy *uint           `gorm:"index" json:"recibido_por_usuario_id"`
	CollectedAt *time.Time      `json:"recibido_en"`
	CreatedAt   time.Time       `json:"creado_en"`
	UpdatedAt   time.Time       `json:"actualizado_en"`
}

// Shipment ties an order to the courier delivering it
type Shipment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"not null;uniqueIndex" json:"pedido_id"`
	CourierID   uint           `gorm:"not null;index" json:"repartidor_usuario_id"`
	Status      ShipmentStatus `gorm:"not null;size:20;default:ASIGNADO;index" json:"estado"`
	Notes       string         `gorm:"type:text" json:"notas"`
	AssignedAt  time.Time      `gorm:"not null" json:"asignado_en"`
	DeliveredAt *time.Time     `json:"entregado_en"`
	CreatedAt   time.Time      `json:"creado_en"`
	UpdatedAt   time.Time      `json:"actualizado_en"`
}

// StatusHistory records every order transition
type StatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"pedido_id"`
	From      OrderStatus `gorm:"size:20" json:"desde"`
	To        OrderStatus `gorm:"not null;size:20" json:"hasta"`
	ChangedBy uint        `gorm:"not null;index" json:"usuario_id"`
	CreatedAt time.Time   `json:"creado_en"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (OrderLine) TableName() string     { return "order_items" }
func (Payment) TableName() string       { return "payments" }
func (Shipment) TableName() string      { return "shipments" }
func (StatusHistory) TableName() string { return "order_status_history" }

// FormatNumber renders the display number for an order id
func FormatNumber(id uint) string {
	return fmt.Sprintf("PED-%06d", id)
}

// NumberOrEmpty returns the display number, empty before it is assigned
func (o *Order) NumberOrEmpty() string {
	if o.Number == nil {
		return ""
	}
	return *o.Number
}
