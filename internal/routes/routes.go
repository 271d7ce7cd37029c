package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tchapssolution/customer-webapp/internal/audit"
	"github.com/tchapssolution/customer-webapp/internal/config"
	domain "github.com/tchapssolution/customer-webapp/internal/domain/customer"
	"github.com/tchapssolution/customer-webapp/internal/handlers"
	infraRepo "github.com/tchapssolution/customer-webapp/internal/infra/repository"
	"github.com/tchapssolution/customer-webapp/internal/middleware"
	"github.com/tchapssolution/customer-webapp/internal/session"
	"github.com/tchapssolution/customer-webapp/internal/storage"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessions := session.New(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var files storage.FileStore
	if cfg.UploadBackend == "s3" {
		files = storage.NewS3Store(cfg)
	} else {
		files = storage.NewLocalStore(cfg.UploadDir)
	}

	// One unit of work per request.
	repoFactory := func() domain.Repository {
		return infraRepo.NewCustomerGormRepository(db)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	customerHandler := handlers.NewCustomerHandler(repoFactory, files, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, sessions, auditDispatcher)

	// ======================================================
	// PUBLIC ROUTES
	// ======================================================
	r.GET("/customers", customerHandler.Index)
	r.GET("/customers/:id", customerHandler.Details)

	users := r.Group("/users")
	{
		users.GET("/login", userHandler.LoginForm)
		users.POST("/login", userHandler.Login)
		users.GET("/logout", userHandler.Logout)
	}

	// ======================================================
	// PROTECTED ROUTES
	// ======================================================
	secured := r.Group("/customers")
	secured.Use(middleware.AuthMiddleware(sessions))
	secured.Use(middleware.CSRFMiddleware())
	{
		secured.GET("/create", customerHandler.CreateForm)
		secured.POST("/create", customerHandler.Create)

		secured.GET("/:id/edit", customerHandler.EditForm)
		secured.POST("/:id/edit", customerHandler.Edit)

		secured.GET("/:id/delete", customerHandler.DeleteForm)
		secured.POST("/:id/delete", customerHandler.DeleteConfirmed)
	}
}
