package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/compassx/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/compassx/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/compassx/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

type API struct {
	log     *zap.Logger
	limiter *rate.Limiter
}

// NewAPI. rateLimit is the sustained requests per second across all clients; zero disables limiting.
func NewAPI(log *zap.Logger, rateLimit float64, rateBurst int) *API {
	api := &API{log: log}
	if rateLimit > 0 {
		if rateBurst < 1 {
			rateBurst = 1
		}
		api.limiter = rate.NewLimiter(rate.Limit(rateLimit), rateBurst)
	}
	return api
}

// Handler builds the router and its middleware chain.
func (api *API) Handler(compassService controllers.CompassService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	group := router_helper.NewRouteGroup(router, "/api")
	compassRoutes := controllers.New(compassService, api.log)
	compassRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Metrics}
	if api.limiter != nil {
		mwChain = append(mwChain, api.Limit)
	}
	return alice.New(mwChain...).Then(router)
}

// Run serves the API until ctx is cancelled, then shuts the server down gracefully.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	compassService controllers.CompassService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(compassService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Error("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
