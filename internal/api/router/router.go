package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/infra/metrics"
	"github.com/RoyceAzure/lab/storefront/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

type Deps struct {
	Server          *api.Server
	TokenVerifier   auth.TokenVerifier
	UserService     service.IUserService
	CheckoutLimiter ratelimit.Limiter
	Metrics         *metrics.ServerMetrics
	Logger          *zerolog.Logger
}

func SetupRouter(deps Deps) *chi.Mux {
	if deps.Server == nil || deps.TokenVerifier == nil || deps.UserService == nil || deps.Logger == nil {
		panic("setup router failed, missing dependency")
	}
	server, logger := deps.Server, deps.Logger
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(deps.TokenVerifier, deps.UserService, logger))
	r.Use(m.LoggerMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(m.MetricsMiddleware(deps.Metrics))
	}
	r.Use(m.RecoverMiddleware(logger))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.ErrorJSON(w, r, http.StatusNotFound, resp.KindNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		resp.ErrorJSON(w, r, http.StatusMethodNotAllowed, resp.KindBadRequest, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp.SuccessJSON(w, r, http.StatusOK, "ok")
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/add", server.CartHandler.AddItem)
			r.Get("/", server.CartHandler.GetCart)
			r.Put("/item/{id}", server.CartHandler.UpdateItem)
			r.Delete("/item/{id}", server.CartHandler.DeleteItem)
			checkout := r.With()
			if deps.CheckoutLimiter != nil {
				checkout = r.With(m.NewRateLimitMiddleware(deps.CheckoutLimiter, logger))
			}
			checkout.Post("/checkout", server.CartHandler.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			//admin 是靜態路徑, 不會被 /{id} 吃掉
			r.Route("/admin", func(r chi.Router) {
				r.Use(m.AdminMiddleware)
				r.Get("/allorders", server.OrderHandler.ListAllOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Patch("/{id}/status", server.OrderHandler.UpdateOrderStatus)
			})

			r.Get("/", server.OrderHandler.ListMyOrders)
			r.Get("/{id}", server.OrderHandler.GetMyOrder)
			r.Patch("/{id}/status", server.OrderHandler.UpdateMyOrderStatus)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{id}", server.ProductHandler.RetrieveProduct)
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware, m.AdminMiddleware)
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Delete("/{id}", server.ProductHandler.DeleteProduct)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Route("/admin", func(r chi.Router) {
				r.Use(m.AdminMiddleware)
				r.Get("/all", server.PaymentHandler.ListPayments)
			})
		})
	})

	// 在設置完所有路由後打印路由樹
	_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}
