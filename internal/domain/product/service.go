// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	ProductTypeID uint            `json:"tipo_producto_id" binding:"required"`
	Name          string          `json:"nombre" binding:"required,max=200"`
	Description   string          `json:"descripcion"`
	PhotoURL      string          `json:"foto_url" binding:"max=500"`
	Price         decimal.Decimal `json:"precio" binding:"required"`
	HasDiscount   bool            `json:"tiene_descuento"`
	Discount      decimal.Decimal `json:"descuento"`
	Percentage    decimal.Decimal `json:"porcentaje"`
	Published     *bool           `json:"publicado"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	ProductTypeID *uint            `json:"tipo_producto_id"`
	Name          *string          `json:"nombre" binding:"omitempty,max=200"`
	Description   *string          `json:"descripcion"`
	PhotoURL      *string          `json:"foto_url" binding:"omitempty,max=500"`
	Price         *decimal.Decimal `json:"precio"`
	HasDiscount   *bool            `json:"tiene_descuento"`
	Discount      *decimal.Decimal `json:"descuento"`
	Percentage    *decimal.Decimal `json:"porcentaje"`
	Published     *bool            `json:"publicado"`
}

// ProductView adds the computed final price to a product
type ProductView struct {
	Product
	FinalPrice decimal.Decimal `json:"precio_final"`
}

// NewProductView builds the response shape for p
func NewProductView(p *Product) ProductView {
	return ProductView{Product: *p, FinalPrice: p.FinalPrice()}
}

// ValidatePricing checks price, discount and percentage bounds
func ValidatePricing(price, discount, percentage decimal.Decimal) error {
	if !price.IsPositive() {
		return apperr.Validation("El precio debe ser mayor a 0")
	}
	if discount.IsNegative() {
		return apperr.Validation("El descuento no puede ser negativo")
	}
	if discount.GreaterThan(price) {
		return apperr.Validation("El descuento no puede superar el precio")
	}
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return apperr.Validation("El porcentaje debe estar entre 0 y 100")
	}
	return nil
}

// ListProducts returns products that are not deleted; published filters by the flag.
func (s *Service) ListProducts(ctx context.Context, published bool) ([]ProductView, error) {
	var products []Product
	err := s.db.WithContext(ctx).
		Preload("ProductType").
		Where("published = ?", published).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperr.Internal("No se pudieron listar los productos", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i]))
	}
	return views, nil
}

// GetProduct returns a non-deleted product
func (s *Service) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(p)
	return &view, nil
}

// CreateProduct adds a product to the catalog
func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := ValidatePricing(req.Price, req.Discount, req.Percentage); err != nil {
		return nil, err
	}
	if err := s.ensureType(ctx, req.ProductTypeID); err != nil {
		return nil, err
	}

	p := &Product{
		ProductTypeID: req.ProductTypeID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		Price:         req.Price.Round(2),
		HasDiscount:   req.HasDiscount,
		Discount:      req.Discount.Round(2),
		Percentage:    req.Percentage.Round(2),
		Published:     req.Published == nil || *req.Published,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, apperr.Internal("No se pudo crear el producto", err)
	}
	return p, nil
}

// UpdateProduct applies the non-nil fields of req
func (s *Service) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.ProductTypeID != nil {
		if err := s.ensureType(ctx, *req.ProductTypeID); err != nil {
			return err
		}
		updates["product_type_id"] = *req.ProductTypeID
		p.ProductTypeID = *req.ProductTypeID
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.Price != nil {
		p.Price = req.Price.Round(2)
		updates["price"] = p.Price
	}
	if req.HasDiscount != nil {
		updates["has_discount"] = *req.HasDiscount
	}
	if req.Discount != nil {
		p.Discount = req.Discount.Round(2)
		updates["discount"] = p.Discount
	}
	if req.Percentage != nil {
		p.Percentage = req.Percentage.Round(2)
		updates["percentage"] = p.Percentage
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		return apperr.Validation("No hay campos para actualizar")
	}

	if err := ValidatePricing(p.Price, p.Discount, p.Percentage); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperr.Internal("No se pudo actualizar el producto", err)
	}
	return nil
}

// SetPhoto replaces the product photo and returns the previous URL
func (s *Service) SetPhoto(ctx context.Context, id uint, photoURL string) (string, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Update("photo_url", photoURL).Error; err != nil {
		return "", apperr.Internal("No se pudo actualizar la foto", err)
	}
	return p.PhotoURL, nil
}

// DeleteProduct unpublishes and soft-deletes a product. Order lines keep
// their own name and photo snapshot.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	err := dbtx.Run(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&Product{}).Where("id = ?", id).Update("published", false).Error; err != nil {
			return err
		}
		return tx.Delete(&Product{}, id).Error
	})
	if err != nil {
		return apperr.Internal("No se pudo eliminar el producto", err)
	}
	return nil
}

// ListTypes returns active product types ordered by name
func (s *Service) ListTypes(ctx context.Context) ([]ProductType, error) {
	var types []ProductType
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperr.Internal("No se pudieron listar los tipos de producto", err)
	}
	return types, nil
}

func (s *Service) find(ctx context.Context, id uint) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).Preload("ProductType").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Producto no encontrado")
		}
		return nil, apperr.Internal("No se pudo obtener el producto", err)
	}
	return &p, nil
}

func (s *Service) ensureType(ctx context.Context, typeID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ProductType{}).Where("id = ? AND active = ?", typeID, true).Count(&count).Error; err != nil {
		return apperr.Internal("No se pudo validar el tipo de producto", err)
	}
	if count == 0 {
		return apperr.Validation(fmt.Sprintf("Tipo de producto %d inválido", typeID))
	}
	return nil
}
