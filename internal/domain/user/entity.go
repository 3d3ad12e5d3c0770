// internal/domain/user/entity.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RoleName identifies one of the fixed roles.
type RoleName string

const (
	RoleAdmin    RoleName = "ADMIN"
	RoleCustomer RoleName = "CLIENTE"
	RoleCourier  RoleName = "REPARTIDOR"
)

// AllRoles lists the roles seeded at startup.
var AllRoles = []RoleName{RoleAdmin, RoleCustomer, RoleCourier}

// Status of a user account
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

// AddressType distinguishes shipping from billing addresses
type AddressType string

const (
	AddressShipping AddressType = "SHIPPING"
	AddressBilling  AddressType = "BILLING"
)

// Role represents an authorization role
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      RoleName  `gorm:"uniqueIndex;not null;size:30" json:"nombre"`
	CreatedAt time.Time `json:"-"`
}

// User represents the user entity
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoleID       uint      `gorm:"not null;index" json:"-"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"correo"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	FullName     string    `gorm:"not null;size:150" json:"nombre_completo"`
	Phone        string    `gorm:"size:30" json:"telefono"`
	AvatarURL    string    `gorm:"size:500" json:"avatar_url"`
	Status       Status    `gorm:"not null;size:20;default:ACTIVE;index" json:"estado"`
	CreatedAt    time.Time `json:"creado_en"`
	UpdatedAt    time.Time `json:"actualizado_en"`

	// Relationships
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Address represents user addresses
type Address struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:idx_addresses_user_type" json:"usuario_id"`
	Type        AddressType    `gorm:"not null;size:20;index:idx_addresses_user_type" json:"tipo"`
	Recipient   string         `gorm:"not null;size:150" json:"destinatario"`
	Line1       string         `gorm:"not null;size:255" json:"linea1"`
	Line2       string         `gorm:"size:255" json:"linea2"`
	City        string         `gorm:"not null;size:100" json:"ciudad"`
	Province    string         `gorm:"not null;size:100" json:"provincia"`
	PostalCode  string         `gorm:"size:20" json:"codigo_postal"`
	CountryCode string         `gorm:"not null;size:2" json:"pais_codigo"`
	Phone       string         `gorm:"size:30" json:"telefono"`
	IsDefault   bool           `gorm:"not null;default:false" json:"es_predeterminada"`
	CreatedAt   time.Time      `json:"creado_en"`
	UpdatedAt   time.Time      `json:"actualizado_en"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Role) TableName() string    { return "roles" }
func (User) TableName() string    { return "users" }
func (Address) TableName() string { return "addresses" }

// BeforeSave keeps emails case-insensitive
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

// RoleName returns the loaded role's name; Role must be preloaded.
func (u *User) RoleName() RoleName { return u.Role.Name }

func (u *User) HasRole(name RoleName) bool { return u.Role.Name == name }

// FindRoleByName loads the role row with the given name.
func FindRoleByName(tx *gorm.DB, name RoleName) (*Role, error) {
	var role Role
	if err := tx.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not seeded: %w", name, err)
		}
		return nil, fmt.Errorf("failed to load role %s: %w", name, err)
	}
	return &role, nil
}

// EnsureRoles creates any missing fixed role.
func EnsureRoles(tx *gorm.DB) error {
	for _, name := range AllRoles {
		role := Role{Name: name}
		if err := tx.Where(Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to ensure role %s: %w", name, err)
		}
	}
	return nil
}

// ClearDefaults unsets the default flag on every address of the given user
// and type except the one with id keep (0 keeps none).
func ClearDefaults(tx *gorm.DB, userID uint, addressType AddressType, keep uint) error {
	q := tx.Model(&Address{}).
		Where("user_id = ? AND type = ? AND is_default = ?", userID, addressType, true)
	if keep != 0 {
		q = q.Where("id <> ?", keep)
	}
	if err := q.Update("is_default", false).Error; err != nil {
		return fmt.Errorf("failed to clear default addresses: %w", err)
	}
	return nil
}

// MakeDefault marks a as the single default address of its user and type.
// It must run inside the caller's transaction.
func (a *Address) MakeDefault(tx *gorm.DB) error {
	if err := ClearDefaults(tx, a.UserID, a.Type, a.ID); err != nil {
		return err
	}
	if err := tx.Model(a).Update("is_default", true).Error; err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}
	a.IsDefault = true
	return nil
}
