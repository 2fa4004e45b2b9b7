package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"post-content-api/internal/client"
	"post-content-api/internal/handler"
	"post-content-api/internal/metrics"
	"post-content-api/internal/middleware"
	"post-content-api/internal/repository"
	"post-content-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB                 *gorm.DB
	Logger             *zap.Logger
	BasePath           string
	Blob               client.BlobClient
	Notifier           client.Notifier
	Metrics            *metrics.Metrics
	ValidationMessages map[string]map[string]string
	AllowedOrigins     []string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "post-content-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "post-content-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "post-content-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "post-content-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "post-content-api"})
	})

	// Initialize repositories
	postRepo := repository.NewPostRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	// Initialize services
	validator := service.NewValidator(cfg.ValidationMessages)
	workflow := service.NewPostWorkflow(
		postRepo,
		attachmentRepo,
		cfg.Blob,
		cfg.Notifier,
		validator,
		cfg.Metrics,
		cfg.Logger,
	)

	// Initialize handlers
	postHandler := handler.NewPostHandler(workflow, cfg.Blob)
	attachmentHandler := handler.NewAttachmentHandler(workflow, cfg.Blob)

	// API routes group
	api := r.Group(cfg.BasePath)
	{
		api.GET("", postHandler.List)
		api.POST("", postHandler.Create)
		api.GET("/:id", postHandler.Get)
		api.PUT("/:id", postHandler.Update)
		api.DELETE("/:id", postHandler.Delete)
		api.GET("/:id/attachments", attachmentHandler.ListForPost)
		api.DELETE("/attachments/:id", attachmentHandler.Delete)
	}

	return r
}
