// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
	"github.com/your-org/tienda-backend/internal/pkg/dbtx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles authentication and profile logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	jwtManager  *auth.JWTManager
	passwordMgr *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		jwtManager:  auth.NewJWTManager(cfg),
		passwordMgr: auth.NewPasswordManager(cfg),
	}
}

// Profile is the public view of a user
type Profile struct {
	User
	RoleLabel RoleName `json:"rol"`
}

// NewProfile builds the public view; u.Role must be loaded.
func NewProfile(u *User) *Profile {
	return &Profile{User: *u, RoleLabel: u.Role.Name}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"contrasena" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"usuario"`
}

// RegisterRequest represents self sign-up data
type RegisterRequest struct {
	FullName string `json:"nombre_completo" binding:"required,max=150"`
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"contrasena" binding:"required"`
	Phone    string `json:"telefono" binding:"max=30"`
}

// UpdateProfileRequest represents editable profile fields
type UpdateProfileRequest struct {
	FullName string `json:"nombre_completo" binding:"required,max=150"`
	Phone    string `json:"telefono" binding:"max=30"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"contrasena_actual" binding:"required"`
	NewPassword     string `json:"contrasena_nueva" binding:"required"`
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var u User
	err := s.db.WithContext(ctx).Preload("Role").
		Where("email = ?", NormalizeEmail(req.Email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Credenciales inválidas")
		}
		return nil, apperr.Internal("No se pudo iniciar sesión", err)
	}

	if err := s.passwordMgr.VerifyPassword(req.Password, u.PasswordHash); err != nil {
		return nil, apperr.Unauthorized("Credenciales inválidas")
	}
	if !u.IsActive() {
		return nil, apperr.Forbidden("Usuario bloqueado")
	}

	token, err := s.jwtManager.GenerateAccessToken(auth.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     string(u.Role.Name),
		FullName: u.FullName,
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo iniciar sesión", err)
	}

	return &LoginResponse{Token: token, User: NewProfile(&u)}, nil
}

// Register creates a customer account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Profile, error) {
	return s.createWithRole(ctx, RoleCustomer, req.FullName, req.Email, req.Password, req.Phone)
}

func (s *Service) createWithRole(ctx context.Context, roleName RoleName, fullName, email, password, phone string) (*Profile, error) {
	hash, err := s.passwordMgr.HashPassword(password)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	u, err := dbtx.InTx(ctx, s.db, func(tx *gorm.DB) (*User, error) {
		var count int64
		if err := tx.Model(&User{}).Where("email = ?", NormalizeEmail(email)).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("El correo ya está registrado")
		}

		role, err := FindRoleByName(tx, roleName)
		if err != nil {
			return nil, err
		}

		u := &User{
			RoleID:       role.ID,
			Email:        email,
			PasswordHash: hash,
			FullName:     strings.TrimSpace(fullName),
			Phone:        strings.TrimSpace(phone),
			Status:       StatusActive,
			Role:         *role,
		}
		if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("El correo ya está registrado")
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return u, nil
	})
	if err != nil {
		return nil, apperr.Internal("No se pudo crear el usuario", err)
	}
	return NewProfile(u), nil
}

// GetByID loads a user with its role
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Preload("Role").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Usuario no encontrado")
		}
		return nil, apperr.Internal("No se pudo obtener el usuario", err)
	}
	return &u, nil
}

// Me returns the caller's profile
func (s *Service) Me(ctx context.Context, id uint) (*Profile, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProfile(u), nil
}

// UpdateProfile changes the caller's name and phone
func (s *Service) UpdateProfile(ctx context.Context, id uint, req *UpdateProfileRequest) (*Profile, error) {
	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"full_name": strings.TrimSpace(req.FullName),
		"phone":     strings.TrimSpace(req.Phone),
	})
	if res.Error != nil {
		return nil, apperr.Internal("No se pudo actualizar el perfil", res.Error)
	}
	// affected rows is 0 on MySQL when nothing changed, so existence is checked by the reload
	return s.Me(ctx, id)
}

// ChangePassword replaces the caller's password after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwordMgr.VerifyPassword(req.CurrentPassword, u.PasswordHash); err != nil {
		return apperr.Unauthorized("La contraseña actual es incorrecta")
	}

	hash, err := s.passwordMgr.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		return apperr.Internal("No se pudo cambiar la contraseña", err)
	}
	return nil
}

// SetAvatar stores the new avatar URL and returns the previous one so the
// caller can discard the old file.
func (s *Service) SetAvatar(ctx context.Context, id uint, avatarURL string) (previous string, profile *Profile, err error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	previous = u.AvatarURL

	if err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("avatar_url", avatarURL).Error; err != nil {
		return "", nil, apperr.Internal("No se pudo actualizar el avatar", err)
	}
	u.AvatarURL = avatarURL
	return previous, NewProfile(u), nil
}
