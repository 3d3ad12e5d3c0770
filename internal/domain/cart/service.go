// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/domain/product"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles shopping cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uint `json:"producto_id" binding:"required"`
	Quantity  *int `json:"cantidad"`
}

// UpdateItemRequest represents a quantity change
type UpdateItemRequest struct {
	Quantity int `json:"cantidad"`
}

// LineView is a cart line with product display data
type LineView struct {
	Line
	ProductName string `json:"producto_nombre"`
	PhotoURL    string `json:"foto_url"`
}

// View is the cart response
type View struct {
	Cart  *Cart           `json:"cart"`
	Items []LineView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// GetOrCreate returns the user's open cart, creating it when missing
func (s *Service) GetOrCreate(ctx context.Context, userID uint, currency string) (*View, error) {
	c, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Cart, error) {
		return openCart(tx, userID, currency)
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo obtener el carrito", err)
	}
	return s.view(ctx, c)
}

// AddItem adds quantity of a product, merging with an existing line
func (s *Service) AddItem(ctx context.Context, userID uint, req *AddItemRequest) (*View, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, apperr.Validation("La cantidad debe ser mayor a 0")
	}

	c, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Cart, error) {
		c, err := openCart(tx, userID, "")
		if err != nil {
			return nil, err
		}
		p, err := availableProduct(tx, req.ProductID)
		if err != nil {
			return nil, err
		}

		var line Line
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", c.ID, p.ID).
			Take(&line).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = Line{CartID: c.ID}
			line.Reprice(p, quantity)
			if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
				return nil, fmt.Errorf("failed to add cart item: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("failed to load cart item: %w", err)
		default:
			line.Reprice(p, line.Quantity+quantity)
			if err := tx.Omit(clause.Associations).Save(&line).Error; err != nil {
				return nil, fmt.Errorf("failed to update cart item: %w", err)
			}
		}
		return c, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo agregar el producto", err)
	}
	return s.view(ctx, c)
}

// UpdateItem sets the quantity of a line in the user's open cart
func (s *Service) UpdateItem(ctx context.Context, userID, lineID uint, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("La cantidad debe ser mayor a 0")
	}

	c, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Cart, error) {
		c, line, err := ownedLine(tx, userID, lineID)
		if err != nil {
			return nil, err
		}
		p, err := availableProduct(tx, line.ProductID)
		if err != nil {
			return nil, err
		}
		line.Reprice(p, quantity)
		if err := tx.Omit(clause.Associations).Save(line).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return c, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo actualizar el producto", err)
	}
	return s.view(ctx, c)
}

// RemoveItem deletes a line from the user's open cart
func (s *Service) RemoveItem(ctx context.Context, userID, lineID uint) (*View, error) {
	c, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Cart, error) {
		c, line, err := ownedLine(tx, userID, lineID)
		if err != nil {
			return nil, err
		}
		if err := tx.Delete(line).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return c, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo eliminar el producto", err)
	}
	return s.view(ctx, c)
}

// Clear empties the user's open cart; without one it returns an empty view
func (s *Service) Clear(ctx context.Context, userID uint) (*View, error) {
	c, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Cart, error) {
		var c Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ?", userID, StatusOpen).
			Take(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		if err := tx.Where("cart_id = ?", c.ID).Delete(&Line{}).Error; err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		return &c, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo vaciar el carrito", err)
	}
	if c == nil {
		return &View{Items: []LineView{}, Total: decimal.Zero}, nil
	}
	return s.view(ctx, c)
}

func (s *Service) view(ctx context.Context, c *Cart) (*View, error) {
	var lines []Line
	err := s.db.WithContext(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("cart_id = ?", c.ID).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, apperr.Internal("No se pudo obtener el carrito", err)
	}

	items := make([]LineView, 0, len(lines))
	for i := range lines {
		items = append(items, LineView{
			Line:        lines[i],
			ProductName: lines[i].Product.Name,
			PhotoURL:    upload.PublicURL(s.config.Upload.PublicURL, lines[i].Product.PhotoURL),
		})
	}

	return &View{Cart: c, Items: items, Total: ComputeTotals(lines).Total}, nil
}

// openCart returns the open cart, creating one. The user row is locked so
// concurrent requests cannot both create a cart.
func openCart(tx *gorm.DB, userID uint, currency string) (*Cart, error) {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Take(&user.User{}, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to lock user %d: %w", userID, err)
	}

	var c Cart
	err := tx.Where("user_id = ? AND status = ?", userID, StatusOpen).Order("id DESC").Take(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c = Cart{UserID: userID, Status: StatusOpen, Currency: normalizeCurrency(currency)}
	if err := tx.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &c, nil
}

func ownedLine(tx *gorm.DB, userID, lineID uint) (*Cart, *Line, error) {
	var line Line
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "cart_items"}}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ? AND carts.status = ?", lineID, userID, StatusOpen).
		Take(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("Item no encontrado")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart item: %w", err)
	}

	var c Cart
	if err := tx.First(&c, line.CartID).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &c, &line, nil
}

func availableProduct(tx *gorm.DB, productID uint) (*product.Product, error) {
	var p product.Product
	err := tx.Unscoped().First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Producto no disponible")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !p.IsAvailable() {
		return nil, apperr.NotFound("Producto no disponible")
	}
	return &p, nil
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return DefaultCurrency
	}
	return currency
}
