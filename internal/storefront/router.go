package storefront

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewRouter registra as telas do storefront
func NewRouter(handler *StorefrontHandler, serviceName string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		telemetry.RequestID(),
		telemetry.AccessLog(logger),
		telemetry.CountRequests(serviceName),
	)

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", telemetry.MetricsHandler())

	r.GET(handoff.PathCatalog, handler.Catalog)
	r.GET("/product/:id", handler.Product)
	r.POST("/product/:id/add", handler.AddToCart)
	r.POST("/product/:id/buy", handler.BuyNow)

	r.GET(handoff.PathCart, handler.Cart)
	r.PUT(handoff.PathCart+"/items/:id", handler.UpdateQuantity)
	r.DELETE(handoff.PathCart+"/items/:id", handler.RemoveFromCart)
	r.DELETE(handoff.PathCart, handler.ClearCart)

	r.GET(handoff.PathCheckout, handler.Checkout)
	r.POST(handoff.PathCheckout, handler.PlaceOrder)

	r.GET(handoff.PathConfirmation, handler.OrderConfirmation)
	r.POST(handoff.PathConfirmation+"/track", handler.TrackOrder)

	return r
}
