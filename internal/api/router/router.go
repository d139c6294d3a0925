package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/spacyk/eshop-recipe/internal/api"
	m "github.com/spacyk/eshop-recipe/internal/api/middleware"
	"github.com/spacyk/eshop-recipe/internal/infra/auth"
	"github.com/spacyk/eshop-recipe/pkg/metrics"
)

func SetupRouter(server *api.Server, verifier auth.IAuthVerifier, loginURL string, serverMetrics *metrics.ServerMetrics, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.SessionMiddleware)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.MetricsMiddleware(serverMetrics))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// 商品瀏覽不用登入
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", server.CatalogHandler.ListItems)
		r.Get("/items/{slug}", server.CatalogHandler.GetItem)
	})

	// 購物車與結帳都要登入
	r.Group(func(r chi.Router) {
		r.Use(m.AuthMiddleware(verifier, loginURL))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/add/{itemID}", server.CartHandler.AddSingleItem)
			r.Post("/remove-single/{itemID}", server.CartHandler.RemoveSingleItem)
			r.Post("/remove/{itemID}", server.CartHandler.RemoveItem)
		})

		r.Get("/checkout", server.CheckoutHandler.GetCheckout)
		r.Post("/checkout", server.CheckoutHandler.SubmitCheckout)
		r.Get("/payment/{paymentOption}", server.CheckoutHandler.GetPayment)
	})

	return r
}
