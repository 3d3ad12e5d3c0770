// internal/domain/upload/service.go
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

	mimeExtensions = map[string]string{
		"image/png":  ".png",
		"image/jpeg": ".jpg",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
)

// Service handles file upload business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	now    func() time.Time
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
		now:    time.Now,
	}
}

// Save validates and stores an uploaded image under category and records it.
// The returned file's URL is relative to the site root.
func (s *Service) Save(ctx context.Context, category string, header *multipart.FileHeader, uploadedBy uint) (*UploadedFile, error) {
	mimeType, err := s.validate(header)
	if err != nil {
		return nil, err
	}

	filename := SafeFilename(header.Filename, mimeType, s.now())
	relativePath := filepath.Join(category, filename)
	fullPath := filepath.Join(s.config.Upload.Dir, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperr.Internal("No se pudo guardar el archivo", fmt.Errorf("failed to create directory: %w", err))
	}
	if err := writeFile(fullPath, header); err != nil {
		return nil, apperr.Internal("No se pudo guardar el archivo", err)
	}

	file := &UploadedFile{
		OriginalName: header.Filename,
		Filename:     filename,
		Category:     category,
		Path:         relativePath,
		URL:          URLFor(s.config.Upload.MountPath, category, filename),
		MimeType:     mimeType,
		Size:         header.Size,
		UploadedBy:   uploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		// Clean up file if database insert fails
		os.Remove(fullPath)
		return nil, apperr.Internal("No se pudo guardar el archivo", fmt.Errorf("failed to save file info: %w", err))
	}

	return file, nil
}

// Remove deletes a previously stored file by its relative URL. URLs outside
// the mount path (external avatars, seeded photos) are ignored.
func (s *Service) Remove(ctx context.Context, url string) error {
	rel, ok := s.localPath(url)
	if !ok {
		return nil
	}

	if err := os.Remove(filepath.Join(s.config.Upload.Dir, rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("url = ?", url).Delete(&UploadedFile{}).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

// RemoveQuietly is Remove for cleanup paths where failure only gets logged.
func (s *Service) RemoveQuietly(ctx context.Context, url string) {
	if err := s.Remove(ctx, url); err != nil {
		logrus.WithError(err).WithField("url", url).Warn("failed to remove uploaded file")
	}
}

// PublicURL turns a stored relative URL into an absolute one.
func (s *Service) PublicURL(rel string) string {
	return PublicURL(s.config.Upload.PublicURL, rel)
}

func (s *Service) validate(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", apperr.Validation("Archivo requerido")
	}
	if header.Size > s.config.Upload.MaxSize {
		return "", apperr.Validation(fmt.Sprintf("El archivo supera el máximo de %d bytes", s.config.Upload.MaxSize))
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(header.Header.Get("Content-Type"), ";")[0]))
	for _, allowed := range s.config.Upload.AllowedMIMEs {
		if mimeType == allowed {
			return mimeType, nil
		}
	}
	return "", apperr.Validation("Solo se permiten imágenes (png, jpg, webp, gif)")
}

func (s *Service) localPath(url string) (string, bool) {
	prefix := strings.TrimRight(s.config.Upload.MountPath, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(url, prefix))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.FromSlash(rel), true
}

func writeFile(fullPath string, header *multipart.FileHeader) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// SafeFilename builds "<unix-ms>-<slug><ext>" from the client's file name.
func SafeFilename(original, mimeType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if known, ok := mimeExtensions[mimeType]; ok {
		ext = known
	}

	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), slug, ext)
}

// URLFor joins the mount path, category and file name into a relative URL.
func URLFor(mountPath, category, filename string) string {
	return path.Join("/", mountPath, category, filename)
}

// PublicURL prefixes relative URLs with base; absolute and empty URLs pass through.
func PublicURL(base, rel string) string {
	if rel == "" || strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
