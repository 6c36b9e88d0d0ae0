package delivery

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewRouter registra a tela de entrega
func NewRouter(handler *DeliveryHandler, serviceName string, logger *zap.Logger) *gin.Engine {
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

	r.GET(handoff.PathDelivery, handler.Payment)
	r.DELETE(handoff.PathDelivery, handler.Dismiss)
	r.POST(handoff.PathDelivery+"/address", handler.SubmitAddress)
	r.GET(handoff.PathDelivery+"/status", handler.Status)
	r.POST(handoff.PathDelivery+"/return", handler.ReturnToStore)

	return r
}
