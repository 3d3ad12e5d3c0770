// internal/domain/user/address_service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddressService handles address business logic
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddressRequest is the full representation used by create and replace.
type AddressRequest struct {
	Type        AddressType `json:"tipo" binding:"required,oneof=SHIPPING BILLING"`
	Recipient   string      `json:"destinatario" binding:"required,max=150"`
	Line1       string      `json:"linea1" binding:"required,max=255"`
	Line2       string      `json:"linea2" binding:"max=255"`
	City        string      `json:"ciudad" binding:"required,max=100"`
	Province    string      `json:"provincia" binding:"required,max=100"`
	PostalCode  string      `json:"codigo_postal" binding:"max=20"`
	CountryCode string      `json:"pais_codigo" binding:"required,len=2"`
	Phone       string      `json:"telefono" binding:"max=30"`
	IsDefault   *bool       `json:"es_predeterminada"`
}

func (r *AddressRequest) apply(a *Address) {
	a.Type = r.Type
	a.Recipient = strings.TrimSpace(r.Recipient)
	a.Line1 = strings.TrimSpace(r.Line1)
	a.Line2 = strings.TrimSpace(r.Line2)
	a.City = strings.TrimSpace(r.City)
	a.Province = strings.TrimSpace(r.Province)
	a.PostalCode = strings.TrimSpace(r.PostalCode)
	a.CountryCode = strings.ToUpper(r.CountryCode)
	a.Phone = strings.TrimSpace(r.Phone)
}

// List returns the user's addresses, defaults first
func (s *AddressService) List(ctx context.Context, userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("type ASC, is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, apperr.Internal("No se pudieron obtener las direcciones", err)
	}
	return addresses, nil
}

// Create adds an address; a default one displaces the previous default of its type
func (s *AddressService) Create(ctx context.Context, userID uint, req *AddressRequest) (*Address, error) {
	address, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Address, error) {
		address := &Address{UserID: userID}
		req.apply(address)

		if err := tx.Create(address).Error; err != nil {
			return nil, fmt.Errorf("failed to create address: %w", err)
		}
		if req.IsDefault != nil && *req.IsDefault {
			if err := address.MakeDefault(tx); err != nil {
				return nil, err
			}
		}
		return address, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo crear la dirección", err)
	}
	return address, nil
}

// Replace overwrites every field of an owned address
func (s *AddressService) Replace(ctx context.Context, userID, addressID uint, req *AddressRequest) (*Address, error) {
	if req.IsDefault == nil {
		return nil, apperr.Validation("es_predeterminada es requerido")
	}

	address, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Address, error) {
		address, err := s.owned(tx, userID, addressID)
		if err != nil {
			return nil, err
		}

		req.apply(address)
		address.IsDefault = false
		if err := tx.Save(address).Error; err != nil {
			return nil, fmt.Errorf("failed to update address: %w", err)
		}
		if *req.IsDefault {
			if err := address.MakeDefault(tx); err != nil {
				return nil, err
			}
		}
		return address, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo actualizar la dirección", err)
	}
	return address, nil
}

// SetDefault makes an owned address the default of its type
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uint) (*Address, error) {
	address, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*Address, error) {
		address, err := s.owned(tx, userID, addressID)
		if err != nil {
			return nil, err
		}
		if err := address.MakeDefault(tx); err != nil {
			return nil, err
		}
		return address, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo marcar la dirección", err)
	}
	return address, nil
}

// Delete soft-deletes an owned address and drops its default flag
func (s *AddressService) Delete(ctx context.Context, userID, addressID uint) error {
	err := dbtx.Run(ctx, s.db, func(tx *gorm.DB) error {
		address, err := s.owned(tx, userID, addressID)
		if err != nil {
			return err
		}
		if err := tx.Model(address).Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default flag: %w", err)
		}
		if err := tx.Delete(address).Error; err != nil {
			return fmt.Errorf("failed to delete address: %w", err)
		}
		return nil
	})
	if err != nil {
		return apperr.Internal("No se pudo eliminar la dirección", err)
	}
	return nil
}

// DefaultAddressID returns the id of the user's default address of the given
// type, or nil when there is none.
func DefaultAddressID(tx *gorm.DB, userID uint, addressType AddressType) (*uint, error) {
	var address Address
	err := tx.Select("id").
		Where("user_id = ? AND type = ? AND is_default = ?", userID, addressType, true).
		Order("id DESC").
		Take(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load default %s address: %w", addressType, err)
	}
	return &address.ID, nil
}

// owned loads and locks an address, separating "missing" from "someone else's".
func (s *AddressService) owned(tx *gorm.DB, userID, addressID uint) (*Address, error) {
	var address Address
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&address, addressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Dirección no encontrada")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load address: %w", err)
	}
	if address.UserID != userID {
		return nil, apperr.Forbidden("La dirección no pertenece al usuario")
	}
	return &address, nil
}
