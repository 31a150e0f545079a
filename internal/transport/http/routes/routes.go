package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/infra/config"
	"github.com/arklim/access-core/internal/transport/http/handlers"
	"github.com/arklim/access-core/internal/transport/http/middleware"
	"github.com/arklim/access-core/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Directory   *usecase.DirectoryService
	Roles       *usecase.RoleService
	Assignments *usecase.AssignmentService
	Authz       *usecase.AuthorizationService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	handlers.NewUserHandler(deps.Services.Directory).RegisterRoutes(api.Group("/users"))
	handlers.NewRoleHandler(deps.Services.Roles).RegisterRoutes(api.Group("/roles"))
	handlers.NewAssignmentHandler(deps.Services.Assignments).RegisterRoutes(api.Group("/assignments"))
	handlers.NewAuthzHandler(deps.Services.Authz).RegisterRoutes(api.Group("/authz"))

	return r
}
