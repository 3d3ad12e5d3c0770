// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/domain/product"
)

// Status of a cart
type Status string

const (
	StatusOpen    Status = "ABIERTO"
	StatusOrdered Status = "PEDIDO"
)

// DefaultCurrency is used when the client does not send one
const DefaultCurrency = "USD"

// Cart represents a user's shopping cart. A user has at most one open cart.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_carts_user_status" json:"usuario_id"`
	Status    Status    `gorm:"not null;size:20;default:ABIERTO;index:idx_carts_user_status" json:"estado"`
	Currency  string    `gorm:"not null;size:3;default:USD" json:"moneda"`
	CreatedAt time.Time `json:"creado_en"`
	UpdatedAt time.Time `json:"actualizado_en"`

	// Relationships
	Lines []Line `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Line is one product in a cart with prices captured at add/update time
type Line struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CartID    uint            `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"carrito_id"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"producto_id"`
	Quantity  int             `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio_unitario"` // after discount
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"descuento"` // per unit
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt time.Time       `json:"creado_en"`
	UpdatedAt time.Time       `json:"actualizado_en"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// TableName overrides
func (Cart) TableName() string { return "carts" }
func (Line) TableName() string { return "cart_items" }

func (c *Cart) IsOpen() bool { return c.Status == StatusOpen }

// Reprice sets quantity and recomputes prices from the product's current pricing.
func (l *Line) Reprice(p *product.Product, quantity int) {
	final := p.FinalPrice()
	l.ProductID = p.ID
	l.Quantity = quantity
	l.UnitPrice = final
	l.Discount = p.UnitDiscount()
	l.Total = final.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// GrossTotal is the line total before discount.
func (l *Line) GrossTotal() decimal.Decimal {
	return l.UnitPrice.Add(l.Discount).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DiscountTotal is the discount applied across the whole line.
func (l *Line) DiscountTotal() decimal.Decimal {
	return l.Discount.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the monetary summary of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums lines. Shipping and tax are not charged, so
// Total == Subtotal - Discount == sum of line totals.
func ComputeTotals(lines []Line) Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for i := range lines {
		t.Subtotal = t.Subtotal.Add(lines[i].GrossTotal())
		t.Discount = t.Discount.Add(lines[i].DiscountTotal())
		t.Total = t.Total.Add(lines[i].Total)
	}
	t.Subtotal = t.Subtotal.Round(2)
	t.Discount = t.Discount.Round(2)
	t.Total = t.Total.Round(2)
	return t
}
