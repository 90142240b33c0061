package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/handlers"
	"github.com/eunsoo8606/texaspapa/middleware"
	"github.com/eunsoo8606/texaspapa/notifier"
	"github.com/eunsoo8606/texaspapa/store"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, jwtSecret []byte, codec *crypto.Codec,
	n notifier.Notifier, companyID int, st *store.Postgres) {

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, jwtSecret)
	healthHandler := handlers.NewHealthHandler(db)
	communityHandler := handlers.NewCommunityHandler(st, st, st, codec, n, companyID)
	boardHandler := handlers.NewBoardAdminHandler(st, st, st, codec, n)
	consultationHandler := handlers.NewConsultationHandler(st, codec, n)
	franchiseHandler := handlers.NewFranchiseHandler(st)
	popupHandler := handlers.NewPopupHandler(st)

	r.GET("/health", healthHandler.HealthCheck)

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/community/:tab", communityHandler.ListBoard)
		api.GET("/community/:tab/:id", communityHandler.GetPost)
		api.POST("/community/:tab", communityHandler.SubmitPost)
		api.POST("/community/:tab/:id/verify", communityHandler.VerifyPost)

		api.POST("/consultation", consultationHandler.Create)
		api.GET("/stores", franchiseHandler.ListPublic)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/refresh", authHandler.RefreshToken)
	}

	// Protected console routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(db, jwtSecret))
	{
		admin.POST("/logout", authHandler.Logout)

		// Board routes
		admin.GET("/board/:tab", boardHandler.ListPosts)
		admin.POST("/board/:tab", boardHandler.CreatePost)
		admin.GET("/board/:tab/:id", boardHandler.GetPost)
		admin.PUT("/board/:tab/:id", boardHandler.UpdatePost)
		admin.DELETE("/board/:tab/:id", boardHandler.DeletePost)
		admin.POST("/board/:tab/:id/reply", boardHandler.SaveReply)

		// Consultation routes
		admin.GET("/consultations", consultationHandler.List)
		admin.PUT("/consultations/:id/status", consultationHandler.UpdateStatus)

		// Franchise store routes
		admin.GET("/stores", franchiseHandler.List)
		admin.POST("/stores", franchiseHandler.Create)
		admin.PUT("/stores/:id", franchiseHandler.Update)
		admin.DELETE("/stores/:id", franchiseHandler.Delete)

		// Popup routes
		admin.GET("/popups", popupHandler.List)
		admin.POST("/popups", popupHandler.Create)
		admin.PUT("/popups/:id", popupHandler.Update)
		admin.DELETE("/popups/:id", popupHandler.Delete)
		admin.PUT("/popups/:id/status", popupHandler.ToggleStatus)
	}
}
