// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/product"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *product.Service
	files          FileStore
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, files FileStore) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		files:          files,
	}
}

// GetProductTypes handles GET /product-types and GET /products/meta
func (h *ProductHandler) GetProductTypes(c *gin.Context) {
	types, err := h.productService.ListTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GetProducts handles GET /products?published=1|0
func (h *ProductHandler) GetProducts(c *gin.Context) {
	published := c.DefaultQuery("published", "1") != "0"

	views, err := h.productService.ListProducts(c.Request.Context(), published)
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range views {
		views[i].PhotoURL = h.files.PublicURL(views[i].PhotoURL)
	}

	c.JSON(http.StatusOK, views)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	view.PhotoURL = h.files.PublicURL(view.PhotoURL)

	c.JSON(http.StatusOK, view)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": p.ID})
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.productService.UpdateProduct(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// UploadPhoto handles POST /products/:id/photo (multipart field "foto")
func (h *ProductHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("foto")
	if err != nil {
		respondError(c, apperr.Validation("Archivo \"foto\" requerido"))
		return
	}

	ctx := c.Request.Context()
	file, err := h.files.Save(ctx, upload.CategoryProduct, header, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	previous, err := h.productService.SetPhoto(ctx, id, file.URL)
	if err != nil {
		h.files.RemoveQuietly(ctx, file.URL)
		respondError(c, err)
		return
	}
	if previous != "" && previous != file.URL {
		h.files.RemoveQuietly(ctx, previous)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"foto_url": h.files.PublicURL(file.URL),
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
