package api

import "github.com/spacyk/eshop-recipe/internal/api/handler"

type Server struct {
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
}

func NewServer(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
) *Server {
	return &Server{
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
	}
}
