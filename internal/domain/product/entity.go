// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// ProductType groups products in the catalog
type ProductType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:120;uniqueIndex" json:"nombre"`
	Description string    `gorm:"size:500" json:"descripcion"`
	Active      bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"actualizado_en"`
}

// Product represents the product entity
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductTypeID uint            `gorm:"not null;index" json:"tipo_producto_id"`
	Name          string          `gorm:"not null;size:200" json:"nombre"`
	Description   string          `gorm:"type:text" json:"descripcion"`
	PhotoURL      string          `gorm:"size:500" json:"foto_url"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
	HasDiscount   bool            `gorm:"not null;default:false" json:"tiene_descuento"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"descuento"`       // fixed amount off
	Percentage    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"porcentaje"`       // percent off, wins over Discount
	Published     bool            `gorm:"not null;default:true;index" json:"publicado"`
	CreatedAt     time.Time       `json:"creado_en"`
	UpdatedAt     time.Time       `json:"actualizado_en"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	ProductType *ProductType `gorm:"foreignKey:ProductTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tipo_producto,omitempty"`
}

// TableName overrides
func (ProductType) TableName() string { return "product_types" }
func (Product) TableName() string     { return "products" }

// FinalPrice is the unit price a customer pays today, rounded to cents.
func (p *Product) FinalPrice() decimal.Decimal {
	price := p.Price.Round(2)
	if !p.HasDiscount {
		return price
	}

	var final decimal.Decimal
	switch {
	case p.Percentage.IsPositive():
		final = p.Price.Mul(hundred.Sub(p.Percentage)).Div(hundred).Round(2)
	case p.Discount.IsPositive():
		final = p.Price.Sub(p.Discount).Round(2)
	default:
		return price
	}

	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// UnitDiscount is the amount taken off the list price per unit.
func (p *Product) UnitDiscount() decimal.Decimal {
	return p.Price.Round(2).Sub(p.FinalPrice())
}

// IsAvailable reports whether the product may be added to a cart.
func (p *Product) IsAvailable() bool {
	return p.Published && !p.DeletedAt.Valid
}
