package routes

import (
	"pharmacy-api/handlers"
	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/notify"
	"pharmacy-api/security"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group. Collaborators are injected here so
// handlers never reach for globals.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hasher security.PasswordHasher, verifier security.GoogleVerifier, notifier notify.Notifier) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register(db, hasher))
		public.POST("/auth/login", handlers.Login(db, hasher))
		public.POST("/auth/google", handlers.GoogleLogin(db, verifier))

		public.GET("/categories", handlers.ListCategories(db))
		public.GET("/products", handlers.ListProducts(db))
		public.GET("/products/:id", handlers.GetProduct(db))

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile(db))
		auth.PUT("/profile", handlers.UpdateProfile(db))
		auth.PUT("/profile/password", handlers.ChangePassword(db, hasher))
		auth.PUT("/profile/avatar", handlers.UpdateAvatar(db))

		auth.GET("/cart", handlers.GetCart(db))
		auth.POST("/cart/add", handlers.AddToCart(db))
		auth.PUT("/cart/:itemId", handlers.UpdateCartItem(db))
		auth.DELETE("/cart/:itemId", handlers.RemoveCartItem(db))
		auth.DELETE("/cart", handlers.ClearCart(db))

		auth.POST("/orders/create", handlers.CreateOrder(db))
		auth.GET("/orders", handlers.GetMyOrders(db))
		auth.GET("/orders/:id", handlers.GetOrderDetail(db))
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder(db))
	}

	// ── Courier routes ─────────────────────────────────────────────
	courier := r.Group("/api/courier")
	courier.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCourier))
	{
		courier.GET("/orders", handlers.GetAvailableOrders(db))
		courier.GET("/orders/my", handlers.GetMyDeliveries(db))
		courier.POST("/orders/accept", handlers.AcceptOrder(db, notifier))
		courier.POST("/orders/complete", handlers.CompleteOrder(db))
		courier.POST("/orders/cancel", handlers.CourierCancelOrder(db))
		courier.GET("/stats", handlers.GetCourierStats(db))

		courier.GET("/messages", handlers.GetInbox(db))
		courier.PUT("/messages/:id/read", handlers.MarkMessageRead(db))
		courier.GET("/chat", handlers.GetChat(db))
		courier.POST("/chat", handlers.PostChatMessage(db))
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders(db))
		admin.GET("/users", handlers.AdminGetAllUsers(db))
		admin.POST("/messages", handlers.AdminSendMessage(db))
	}
}
