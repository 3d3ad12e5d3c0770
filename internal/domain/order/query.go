// internal/domain/order/query.go
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// QueryService serves read-only order views
type QueryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewQueryService creates a new order query service
func NewQueryService(db *gorm.DB, cfg *config.Config) *QueryService {
	return &QueryService{
		db:     db,
		config: cfg,
	}
}

// AdminListRequest filters the admin order list
type AdminListRequest struct {
	Query         string `form:"q"`
	Status        string `form:"estado"` // comma separated
	PaymentStatus string `form:"pago_estado"`
	From          string `form:"fdesde"`
	To            string `form:"fhasta"`
	Limit         int    `form:"limit"`
	Offset        int    `form:"offset"`
}

// CourierListRequest filters a courier's orders by order status
type CourierListRequest struct {
	Status string `form:"estado"` // comma separated
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// Summary is one row of an order list
type Summary struct {
	ID             uint            `json:"id"`
	Number         *string         `json:"numero"`
	Status         OrderStatus     `json:"estado"`
	Currency       string          `json:"moneda"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"creado_en"`
	CustomerID     uint            `json:"usuario_id"`
	CustomerName   string          `json:"cliente_nombre"`
	CustomerEmail  string          `json:"cliente_correo"`
	CustomerPhone  string          `json:"cliente_telefono"`
	PaymentStatus  *PaymentStatus  `json:"pago_estado"`
	PaymentMethod  *PaymentMethod  `json:"pago_metodo"`
	ShipmentID     *uint           `json:"envio_id"`
	ShipmentStatus *ShipmentStatus `json:"envio_estado"`
	CourierID      *uint           `json:"repartidor_usuario_id"`
	CourierName    *string         `json:"repartidor_nombre"`
}

// Viewer is the caller asking for an order
type Viewer struct {
	UserID uint
	Role   user.RoleName
}

// Customer is the buyer part of an order detail
type Customer struct {
	ID       uint   `json:"id"`
	FullName string `json:"nombre_completo"`
	Email    string `json:"correo"`
	Phone    string `json:"telefono"`
}

// ShipmentView is a shipment with its courier's name
type ShipmentView struct {
	Shipment
	CourierName string `json:"repartidor_nombre"`
}

// Detail is the full order view
type Detail struct {
	Order           *Order        `json:"pedido"`
	Customer        *Customer     `json:"cliente"`
	Lines           []OrderLine   `json:"items"`
	Payments        []Payment     `json:"pagos"`
	Shipment        *ShipmentView `json:"envio"`
	BillingAddress  *user.Address `json:"direccion_facturacion"`
	ShippingAddress *user.Address `json:"direccion_envio"`
}

const summarySelect = `orders.id, orders.number, orders.status, orders.currency, orders.total, orders.created_at,
	users.id AS customer_id, users.full_name AS customer_name, users.email AS customer_email, users.phone AS customer_phone,
	payments.status AS payment_status, payments.method AS payment_method,
	shipments.id AS shipment_id, shipments.status AS shipment_status,
	shipments.courier_id AS courier_id, couriers.full_name AS courier_name`

func (s *QueryService) summaries(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table("orders").
		Select(summarySelect).
		Joins("JOIN users ON users.id = orders.user_id").
		Joins("LEFT JOIN payments ON payments.order_id = orders.id").
		Joins("LEFT JOIN shipments ON shipments.order_id = orders.id").
		Joins("LEFT JOIN users AS couriers ON couriers.id = shipments.courier_id")
}

// AdminList returns orders matching the filters, newest first
func (s *QueryService) AdminList(ctx context.Context, req *AdminListRequest) ([]Summary, error) {
	limit, offset := clampPage(req.Limit, req.Offset)
	q := s.summaries(ctx)

	if term := strings.TrimSpace(req.Query); term != "" {
		like := "%" + term + "%"
		q = q.Where("orders.number LIKE ? OR users.full_name LIKE ? OR users.email LIKE ? OR users.phone LIKE ?",
			like, like, like, like)
	}
	if statuses := parseOrderStatuses(req.Status); len(statuses) > 0 {
		q = q.Where("orders.status IN ?", statuses)
	}
	if ps := PaymentStatus(strings.ToUpper(strings.TrimSpace(req.PaymentStatus))); ps != "" {
		if ps != PaymentStatusPending && ps != PaymentStatusPaid {
			return nil, apperr.Validation("pago_estado inválido")
		}
		q = q.Where("payments.status = ?", ps)
	}
	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return nil, apperr.Validation("fdesde inválida (AAAA-MM-DD)")
		}
		q = q.Where("orders.created_at >= ?", from)
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return nil, apperr.Validation("fhasta inválida (AAAA-MM-DD)")
		}
		q = q.Where("orders.created_at < ?", to.AddDate(0, 0, 1))
	}

	rows := []Summary{}
	if err := q.Order("orders.created_at DESC, orders.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("No se pudo listar pedidos", err)
	}
	return rows, nil
}

// ListMine returns the caller's orders, newest first
func (s *QueryService) ListMine(ctx context.Context, userID uint, limit, offset int) ([]Summary, error) {
	limit, offset = clampPage(limit, offset)
	rows := []Summary{}
	err := s.summaries(ctx).
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC, orders.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("No se pudo listar pedidos", err)
	}
	return rows, nil
}

// CourierList returns the orders assigned to a courier, newest first
func (s *QueryService) CourierList(ctx context.Context, courierID uint, req *CourierListRequest) ([]Summary, error) {
	limit, offset := clampPage(req.Limit, req.Offset)
	q := s.summaries(ctx).Where("shipments.courier_id = ?", courierID)
	if statuses := parseOrderStatuses(req.Status); len(statuses) > 0 {
		q = q.Where("orders.status IN ?", statuses)
	}

	rows := []Summary{}
	if err := q.Order("orders.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("No se pudo listar pedidos", err)
	}
	return rows, nil
}

// Couriers lists active couriers for assignment
func (s *QueryService) Couriers(ctx context.Context, query string) ([]user.Profile, error) {
	q := s.db.WithContext(ctx).Model(&user.User{}).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ? AND users.status = ?", user.RoleCourier, user.StatusActive)
	if term := strings.TrimSpace(query); term != "" {
		like := "%" + term + "%"
		q = q.Where("users.full_name LIKE ? OR users.email LIKE ? OR users.phone LIKE ?", like, like, like)
	}

	var users []user.User
	if err := q.Order("users.full_name ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("No se pudo listar repartidores", err)
	}
	profiles := make([]user.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *user.NewProfile(&users[i]))
	}
	return profiles, nil
}

// Detail loads an order the viewer may see. Orders outside the viewer's
// reach are reported as not found.
func (s *QueryService) Detail(ctx context.Context, orderID uint, viewer Viewer) (*Detail, error) {
	var o Order
	err := s.db.WithContext(ctx).First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Pedido no encontrado")
	}
	if err != nil {
		return nil, apperr.Internal("No se pudo obtener el pedido", err)
	}

	d := &Detail{Order: &o}
	g, gctx := errgroup.WithContext(ctx)
	db := s.db.WithContext(gctx)

	g.Go(func() error {
		var u user.User
		if err := db.Select("id", "full_name", "email", "phone").First(&u, o.UserID).Error; err != nil {
			return err
		}
		d.Customer = &Customer{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone}
		return nil
	})
	g.Go(func() error {
		d.Lines = []OrderLine{}
		return db.Where("order_id = ?", o.ID).Order("id ASC").Find(&d.Lines).Error
	})
	g.Go(func() error {
		d.Payments = []Payment{}
		return db.Where("order_id = ?", o.ID).Order("id ASC").Find(&d.Payments).Error
	})
	g.Go(func() error {
		var sv ShipmentView
		err := db.Table("shipments").
			Select("shipments.*, users.full_name AS courier_name").
			Joins("LEFT JOIN users ON users.id = shipments.courier_id").
			Where("shipments.order_id = ?", o.ID).
			Take(&sv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		d.Shipment = &sv
		return nil
	})
	g.Go(func() error {
		var err error
		d.BillingAddress, err = findAddress(db, o.BillingAddressID)
		return err
	})
	g.Go(func() error {
		var err error
		d.ShippingAddress, err = findAddress(db, o.ShippingAddressID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("No se pudo obtener el pedido", err)
	}

	if !viewer.canSee(d) {
		return nil, apperr.NotFound("Pedido no encontrado")
	}

	for i := range d.Lines {
		d.Lines[i].ProductPhoto = upload.PublicURL(s.config.Upload.PublicURL, d.Lines[i].ProductPhoto)
	}
	for i := range d.Payments {
		d.Payments[i].ReceiptURL = upload.PublicURL(s.config.Upload.PublicURL, d.Payments[i].ReceiptURL)
	}
	return d, nil
}

func (v Viewer) canSee(d *Detail) bool {
	switch v.Role {
	case user.RoleAdmin:
		return true
	case user.RoleCourier:
		return d.Shipment != nil && d.Shipment.CourierID == v.UserID
	default:
		return d.Order.UserID == v.UserID
	}
}

// findAddress includes soft-deleted rows; the order keeps pointing at them.
func findAddress(db *gorm.DB, id *uint) (*user.Address, error) {
	if id == nil {
		return nil, nil
	}
	var a user.Address
	err := db.Unscoped().First(&a, *id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func parseOrderStatuses(raw string) []OrderStatus {
	var out []OrderStatus
	for _, part := range strings.Split(raw, ",") {
		switch st := OrderStatus(strings.ToUpper(strings.TrimSpace(part))); st {
		case OrderStatusPending, OrderStatusAssigned, OrderStatusInDelivery, OrderStatusPaid:
			out = append(out, st)
		}
	}
	return out
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
