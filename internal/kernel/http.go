// Package kernel assembles the HTTP middleware stack and route table.
package kernel

import (
	"net/http"
	"time"

	"github.com/ordena/ordena/app/routes"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/metrics"
	"github.com/ordena/ordena/pkg/middleware"
	"github.com/ordena/ordena/pkg/reqid"
	"github.com/ordena/ordena/pkg/response"
	"github.com/ordena/ordena/pkg/router"
	"github.com/ordena/ordena/pkg/session"
)

// HTTPKernel owns the router and the global middleware chain.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the full HTTP stack. Order matters: metrics and
// request IDs wrap everything, Recovery catches panics from the layers
// below it, and the session loads before any route handler runs.
func NewHTTPKernel(cartStore services.CartStore) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))
	r.Use(session.Middleware(session.DefaultOptions()))

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	routes.RegisterAPI(r, cartStore)

	return &HTTPKernel{router: r}
}

// Handler returns the ready-to-serve http.Handler.
func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the named-route table (route:list).
func (k *HTTPKernel) Router() *router.Router { return k.router }
