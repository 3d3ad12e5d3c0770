// internal/interfaces/http/handlers/deps.go
package handlers

import (
	"bytes"
	"context"
	"mime/multipart"

	"github.com/your-org/tienda-backend/internal/domain/order"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
)

//go:generate mockgen -source=deps.go -destination=mocks/deps_mock.go -package=mocks

// OrderWorkflow runs the order state transitions
type OrderWorkflow interface {
	Checkout(ctx context.Context, userID uint) (*order.CheckoutResult, error)
	Assign(ctx context.Context, orderID, adminID uint, req *order.AssignRequest) (*order.AssignResult, error)
	StartDelivery(ctx context.Context, orderID, courierID uint) (*order.StartResult, error)
	Complete(ctx context.Context, orderID, courierID uint, req *order.CompleteRequest) (*order.CompleteResult, error)
}

// OrderQueries serves read-only order views
type OrderQueries interface {
	AdminList(ctx context.Context, req *order.AdminListRequest) ([]order.Summary, error)
	ListMine(ctx context.Context, userID uint, limit, offset int) ([]order.Summary, error)
	CourierList(ctx context.Context, courierID uint, req *order.CourierListRequest) ([]order.Summary, error)
	Couriers(ctx context.Context, query string) ([]user.Profile, error)
	Detail(ctx context.Context, orderID uint, viewer order.Viewer) (*order.Detail, error)
}

// FileStore keeps uploaded images
type FileStore interface {
	Save(ctx context.Context, category string, header *multipart.FileHeader, uploadedBy uint) (*upload.UploadedFile, error)
	RemoveQuietly(ctx context.Context, url string)
	PublicURL(rel string) string
}

// InvoiceRenderer produces invoice documents
type InvoiceRenderer interface {
	GenerateInvoice(d *order.Detail) (*bytes.Buffer, error)
}
