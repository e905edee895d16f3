package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/aerodrome/api"
	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/service/billing"
	"github.com/Domenick1991/aerodrome/internal/service/infras"
	"github.com/Domenick1991/aerodrome/internal/service/slots"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, slotSvc slots.SlotUseCase, infraSvc infras.InfraUseCase, billingSvc billing.BillingUseCase) error {
	router := newRouter(cfg, slotSvc, infraSvc, billingSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func newRouter(cfg *config.Config, slotSvc slots.SlotUseCase, infraSvc infras.InfraUseCase, billingSvc billing.BillingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	v1 := router.Group("/api/v1")
	api.NewSlotHandler(slotSvc).Register(v1.Group("/slots"))
	api.NewInfrastructureHandler(infraSvc).Register(v1.Group("/infrastructures"))
	api.NewFuelingHandler(billingSvc).Register(v1.Group("/fuelings"))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/aerodrome.swagger.json"),
		)))
	}

	return router
}
