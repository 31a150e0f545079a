package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/infra/config"
	"github.com/arklim/access-core/internal/infra/logger"
	"github.com/arklim/access-core/internal/repository/memory"
	"github.com/arklim/access-core/internal/transport/http/middleware"
	"github.com/arklim/access-core/internal/transport/http/routes"
	"github.com/arklim/access-core/internal/usecase"
)

// Application wires the stores, services, and HTTP transport together. All
// state is volatile: the stores live in memory and reset on restart.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

// New builds a fully wired application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	registry := domain.NewNameRegistry()
	userStore := memory.NewUserStore()
	roleStore := memory.NewRoleStore()
	assignmentStore := memory.NewAssignmentStore(userStore, roleStore)

	services := routes.ServiceSet{
		Directory:   usecase.NewDirectoryService(userStore, log),
		Roles:       usecase.NewRoleService(registry, roleStore, log),
		Assignments: usecase.NewAssignmentService(userStore, roleStore, assignmentStore, domain.SystemClock, log),
		Authz:       usecase.NewAuthorizationService(userStore, roleStore, assignmentStore, log),
	}

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Services: services,
	})

	return &Application{cfg: cfg, engine: engine, logger: log}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr(),
		Handler:      a.engine,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}
