package handlers

import (
	"net/http"
	"reflect"
	"time"

	"github.com/SscSPs/fintrack_app/cmd/docs"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// hub may be nil, in which case the websocket endpoint is not served.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub RealtimeHub,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerDecimalValidation()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public authentication routes
	if err := registerAuthRoutes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services, hub, posthogClient)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	hub RealtimeHub,
	posthogClient *utils.PosthogClientWrapper,
) {
	if hub != nil {
		ws := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, true))
		RegisterRealtimeRoutes(ws, hub)
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(posthogClient))

	RegisterAccountRoutes(v1, service.Account)
	RegisterProfileRoutes(v1, service.Profile)
	RegisterLedgerRoutes(v1, service.Ledger, service.Export)
	RegisterBudgetRoutes(v1, service.Budget)
	RegisterReportingRoutes(v1, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerDecimalValidation lets binding tags such as required and gt=0 see a
// decimal.Decimal as a number instead of a struct.
func registerDecimalValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
