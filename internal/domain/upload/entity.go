// internal/domain/upload/entity.go
package upload

import (
	"time"
)

// UploadedFile tracks a file written to local storage
type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OriginalName string    `gorm:"not null;size:255" json:"nombre_original"`
	Filename     string    `gorm:"not null;size:255;uniqueIndex" json:"archivo"`
	Category     string    `gorm:"not null;size:50;index" json:"categoria"` // avatars, productos, comprobante
	Path         string    `gorm:"not null;size:500" json:"-"`
	URL          string    `gorm:"not null;size:500;index" json:"url"`
	MimeType     string    `gorm:"not null;size:100" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"tamano"`
	UploadedBy   uint      `gorm:"not null;index" json:"subido_por"`
	CreatedAt    time.Time `json:"creado_en"`
}

// TableName overrides
func (UploadedFile) TableName() string { return "uploaded_files" }

// Upload categories double as subdirectories under the upload root.
const (
	CategoryAvatar  = "avatars"
	CategoryProduct = "productos"
	CategoryReceipt = "comprobante"
)
