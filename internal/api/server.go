package api

import (
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
)

type Server struct {
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
	PaymentHandler *handler.PaymentHandler
}

func NewServer(cartHandler *handler.CartHandler, orderHandler *handler.OrderHandler, productHandler *handler.ProductHandler, paymentHandler *handler.PaymentHandler) *Server {
	if cartHandler == nil || orderHandler == nil || productHandler == nil || paymentHandler == nil {
		panic("api server init failed, missing handler")
	}
	return &Server{
		CartHandler:    cartHandler,
		OrderHandler:   orderHandler,
		ProductHandler: productHandler,
		PaymentHandler: paymentHandler,
	}
}
