package v1

import (
	"net/http"

	"vastorn-backend/config"
	"vastorn-backend/internal/delivery/http/middleware"
	"vastorn-backend/internal/delivery/http/response"
	"vastorn-backend/internal/domain"
	"vastorn-backend/internal/usecase"
	"vastorn-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("Panic recovered", "path", c.Request.URL.Path, "error", recovered)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}))
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	// Browser form controller for the marketing site
	r.Static("/static", "./web/static")

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		check := deps.HealthUC.Check(c.Request.Context())
		response.OK(c, http.StatusOK, gin.H{
			"message":   check["message"],
			"timestamp": check["timestamp"],
		})
	})

	NewContactHandler(api, deps.ContactUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
