// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/domain/cart"
	"github.com/your-org/tienda-backend/internal/domain/order"
	"github.com/your-org/tienda-backend/internal/domain/product"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/interfaces/http/handlers"
	"github.com/your-org/tienda-backend/internal/interfaces/http/middleware"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
	"github.com/your-org/tienda-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

const (
	roleAdmin    = string(user.RoleAdmin)
	roleCustomer = string(user.RoleCustomer)
	roleCourier  = string(user.RoleCourier)
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth      *handlers.AuthHandler
	Setup     *handlers.SetupHandler
	Profile   *handlers.UserProfileHandler
	Addresses *handlers.UserAddressHandler
	Products  *handlers.ProductHandler
	Cart      *handlers.CartHandler
	Orders    *handlers.OrderHandler
	Users     *handlers.UserAdminHandler
}

// NewHandlers wires domain services into handlers
func NewHandlers(db *gorm.DB, revoked auth.RevocationList, cfg *config.Config, logger logrus.FieldLogger) *Handlers {
	userService := user.NewService(db, cfg)
	files := upload.NewService(db, cfg)
	workflow := order.NewService(db, logger)

	return &Handlers{
		Auth:      handlers.NewAuthHandler(userService, revoked, files),
		Setup:     handlers.NewSetupHandler(userService),
		Profile:   handlers.NewUserProfileHandler(userService, files),
		Addresses: handlers.NewUserAddressHandler(user.NewAddressService(db)),
		Products:  handlers.NewProductHandler(product.NewService(db), files),
		Cart:      handlers.NewCartHandler(cart.NewService(db, cfg), workflow),
		Orders:    handlers.NewOrderHandler(workflow, order.NewQueryService(db, cfg), files, pdf.NewService(cfg)),
		Users:     handlers.NewUserAdminHandler(userService, files),
	}
}

// SetupRoutes mounts every API route on rg
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger logrus.FieldLogger) {
	revoked := auth.NewRedisRevocationList(redisClient)
	h := NewHandlers(db, revoked, cfg, logger)
	authenticated := middleware.AuthMiddleware(cfg, revoked)

	SetupAuthRoutes(rg, h, authenticated)
	SetupUserRoutes(rg, h, authenticated)
	SetupProductRoutes(rg, h, authenticated)
	SetupCartRoutes(rg, h, authenticated)
	SetupOrderRoutes(rg, h, authenticated)
	SetupCourierRoutes(rg, h, authenticated)
	SetupAdminRoutes(rg, h, authenticated)
}

// SetupAuthRoutes sets up setup and authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	rg.POST("/setup/admin", h.Setup.CreateAdmin)

	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)

		protected := authGroup.Group("")
		protected.Use(authenticated)
		{
			protected.GET("/me", h.Auth.Me)
			protected.POST("/logout", h.Auth.Logout)
		}
	}
}

// SetupUserRoutes sets up profile and address routes
func SetupUserRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	profile := rg.Group("/profile")
	profile.Use(authenticated)
	{
		profile.PUT("", h.Profile.UpdateProfile)
		profile.PUT("/password", h.Profile.ChangePassword)
		profile.POST("/avatar", h.Profile.UploadAvatar)
	}

	addresses := rg.Group("/addresses")
	addresses.Use(authenticated)
	{
		addresses.GET("", h.Addresses.GetAddresses)
		addresses.POST("", h.Addresses.CreateAddress)
		addresses.PUT("/:id", h.Addresses.UpdateAddress)
		addresses.PUT("/:id/default", h.Addresses.SetDefaultAddress)
		addresses.DELETE("/:id", h.Addresses.DeleteAddress)
	}
}

// SetupProductRoutes sets up catalog routes; writes are admin only
func SetupProductRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	rg.GET("/product-types", h.Products.GetProductTypes)

	products := rg.Group("/products")
	{
		products.GET("", h.Products.GetProducts)
		products.GET("/meta", h.Products.GetProductTypes)
		products.GET("/:id", h.Products.GetProduct)

		admin := products.Group("")
		admin.Use(authenticated, middleware.RequireRole(roleAdmin))
		{
			admin.POST("", h.Products.CreateProduct)
			admin.PUT("/:id", h.Products.UpdateProduct)
			admin.POST("/:id/photo", h.Products.UploadPhoto)
			admin.DELETE("/:id", h.Products.DeleteProduct)
		}
	}
}

// SetupCartRoutes sets up cart and checkout routes
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	cartGroup := rg.Group("/cart")
	cartGroup.Use(authenticated, middleware.RequireRole(roleCustomer, roleAdmin))
	{
		cartGroup.GET("", h.Cart.GetCart)
		cartGroup.POST("/items", h.Cart.AddItem)
		cartGroup.PUT("/items/:itemId", h.Cart.UpdateItem)
		cartGroup.DELETE("/items/:itemId", h.Cart.RemoveItem)
		cartGroup.POST("/clear", h.Cart.Clear)
		cartGroup.POST("/checkout", h.Cart.Checkout)
	}
}

// SetupOrderRoutes sets up order routes; visibility per role is enforced by the query service
func SetupOrderRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	orders := rg.Group("/orders")
	orders.Use(authenticated)
	{
		admin := orders.Group("/admin")
		admin.Use(middleware.RequireRole(roleAdmin))
		{
			admin.GET("", h.Orders.AdminList)
			admin.GET("/repartidores", h.Orders.Couriers)
			admin.POST("/:id/assign", h.Orders.Assign)
		}

		orders.GET("/list/me", h.Orders.ListMine)
		orders.GET("/:id", h.Orders.Detail)
		orders.GET("/:id/invoice", h.Orders.Invoice)
	}
}

// SetupCourierRoutes sets up delivery routes for couriers
func SetupCourierRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	courier := rg.Group("/courier")
	courier.Use(authenticated, middleware.RequireRole(roleCourier))
	{
		courier.GET("/pedidos", h.Orders.CourierList)
		courier.POST("/pedidos/:id/start", h.Orders.Start)
		courier.POST("/pedidos/:id/complete", h.Orders.Complete)
	}
}

// SetupAdminRoutes sets up user management routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers, authenticated gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authenticated, middleware.RequireRole(roleAdmin))
	{
		users := admin.Group("/users")
		{
			users.GET("", h.Users.GetUsers)
			users.POST("", h.Users.CreateCourier)
			users.PUT("/:id/status", h.Users.UpdateUserStatus)
			users.PUT("/:id", h.Users.UpdateUser)
		}
	}
}
