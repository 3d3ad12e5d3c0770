// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/domain/order"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/interfaces/http/middleware"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

// OrderHandler handles order, courier and invoice endpoints
type OrderHandler struct {
	workflow OrderWorkflow
	queries  OrderQueries
	files    FileStore
	invoices InvoiceRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(workflow OrderWorkflow, queries OrderQueries, files FileStore, invoices InvoiceRenderer) *OrderHandler {
	return &OrderHandler{
		workflow: workflow,
		queries:  queries,
		files:    files,
		invoices: invoices,
	}
}

// AdminList handles GET /orders/admin
func (h *OrderHandler) AdminList(c *gin.Context) {
	var req order.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := h.queries.AdminList(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Couriers handles GET /orders/admin/repartidores
func (h *OrderHandler) Couriers(c *gin.Context) {
	couriers, err := h.queries.Couriers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, couriers)
}

// Assign handles POST /orders/admin/:id/assign
func (h *OrderHandler) Assign(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req order.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.workflow.Assign(c.Request.Context(), orderID, adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListMine handles GET /orders/list/me
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.queries.ListMine(c.Request.Context(), userID, queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Detail handles GET /orders/:id
func (h *OrderHandler) Detail(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Invoice handles GET /orders/:id/invoice
func (h *OrderHandler) Invoice(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}

	pdfBuffer, err := h.invoices.GenerateInvoice(detail)
	if err != nil {
		respondError(c, apperr.Internal("No se pudo generar la factura", err))
		return
	}

	filename := fmt.Sprintf("factura-%s.pdf", detail.Order.NumberOrEmpty())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// CourierList handles GET /courier/pedidos
func (h *OrderHandler) CourierList(c *gin.Context) {
	courierID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req order.CourierListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := h.queries.CourierList(c.Request.Context(), courierID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Start handles POST /courier/pedidos/:id/start
func (h *OrderHandler) Start(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	courierID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.workflow.StartDelivery(c.Request.Context(), orderID, courierID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Complete handles POST /courier/pedidos/:id/complete with multipart
// fields metodo, monto and comprobante.
func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	courierID, ok := currentUserID(c)
	if !ok {
		return
	}

	method := order.PaymentMethod(strings.ToUpper(strings.TrimSpace(c.PostForm("metodo"))))
	if !method.Valid() {
		respondError(c, apperr.Validation("Método de pago inválido"))
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("monto")))
	if err != nil || !amount.IsPositive() {
		respondError(c, apperr.Validation("Monto inválido"))
		return
	}
	header, err := c.FormFile("comprobante")
	if err != nil {
		respondError(c, apperr.Validation("Comprobante requerido"))
		return
	}

	ctx := c.Request.Context()
	file, err := h.files.Save(ctx, upload.CategoryReceipt, header, courierID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.workflow.Complete(ctx, orderID, courierID, &order.CompleteRequest{
		Method:     method,
		Amount:     amount,
		ReceiptURL: file.URL,
	})
	if err != nil {
		h.files.RemoveQuietly(ctx, file.URL)
		respondError(c, err)
		return
	}
	result.Payment.ReceiptURL = h.files.PublicURL(result.Payment.ReceiptURL)

	c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) loadDetail(c *gin.Context) (*order.Detail, bool) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	viewer := order.Viewer{
		UserID: userID,
		Role:   user.RoleName(middleware.GetRoleFromContext(c)),
	}
	detail, err := h.queries.Detail(c.Request.Context(), orderID, viewer)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return detail, true
}
