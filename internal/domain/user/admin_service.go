// internal/domain/user/admin_service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
)

// ListUsersRequest filters the admin user list
type ListUsersRequest struct {
	Query  string `form:"q"`
	Status Status `form:"estado" binding:"omitempty,oneof=ACTIVE BLOCKED"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// CreateCourierRequest represents courier account data
type CreateCourierRequest struct {
	FullName string `json:"nombre_completo" binding:"required,max=150"`
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"contrasena" binding:"required"`
	Phone    string `json:"telefono" binding:"max=30"`
}

// SetStatusRequest blocks or re-activates an account
type SetStatusRequest struct {
	Status Status `json:"estado" binding:"required,oneof=ACTIVE BLOCKED"`
}

// ListUsers returns non-admin accounts, newest first
func (s *Service) ListUsers(ctx context.Context, req *ListUsersRequest) ([]Profile, error) {
	limit, offset := clampPage(req.Limit, req.Offset)

	q := s.db.WithContext(ctx).Model(&User{}).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name <> ?", RoleAdmin)

	if term := strings.TrimSpace(req.Query); term != "" {
		like := "%" + term + "%"
		q = q.Where("users.full_name LIKE ? OR users.email LIKE ? OR users.phone LIKE ?", like, like, like)
	}
	if req.Status != "" {
		q = q.Where("users.status = ?", req.Status)
	}

	var users []User
	if err := q.Order("users.created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, apperr.Internal("No se pudo listar usuarios", err)
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *NewProfile(&users[i]))
	}
	return profiles, nil
}

// CreateCourier creates a REPARTIDOR account
func (s *Service) CreateCourier(ctx context.Context, req *CreateCourierRequest) (*Profile, error) {
	return s.createWithRole(ctx, RoleCourier, req.FullName, req.Email, req.Password, req.Phone)
}

// SetStatus blocks or re-activates a non-admin account
func (s *Service) SetStatus(ctx context.Context, id uint, status Status) (*Profile, error) {
	return s.updateNonAdmin(ctx, id, map[string]interface{}{"status": status})
}

// UpdateBasic edits name and phone of a non-admin account
func (s *Service) UpdateBasic(ctx context.Context, id uint, req *UpdateProfileRequest) (*Profile, error) {
	return s.updateNonAdmin(ctx, id, map[string]interface{}{
		"full_name": strings.TrimSpace(req.FullName),
		"phone":     strings.TrimSpace(req.Phone),
	})
}

func (s *Service) updateNonAdmin(ctx context.Context, id uint, updates map[string]interface{}) (*Profile, error) {
	u, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*User, error) {
		var u User
		if err := tx.Preload("Role").First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Usuario no encontrado")
			}
			return nil, err
		}
		if u.HasRole(RoleAdmin) {
			return nil, apperr.Forbidden("No se puede modificar un administrador")
		}
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return &u, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo actualizar el usuario", err)
	}
	return NewProfile(u), nil
}

// BootstrapAdmin seeds roles and the initial admin account. created is false
// when the admin email already exists.
func (s *Service) BootstrapAdmin(ctx context.Context) (profile *Profile, created bool, err error) {
	setup := s.config.Setup
	if !setup.Enabled {
		return nil, false, apperr.Forbidden("Setup deshabilitado")
	}

	if err := EnsureRoles(s.db.WithContext(ctx)); err != nil {
		return nil, false, apperr.Internal("No se pudieron crear los roles", err)
	}

	profile, err = s.createWithRole(ctx, RoleAdmin, setup.AdminName, setup.AdminEmail, setup.AdminPassword, setup.AdminPhone)
	if apperr.Is(err, apperr.KindConflict) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
