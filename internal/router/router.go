package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/auth"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/handler"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log logrus.FieldLogger,
	verifier auth.TokenVerifier,
	allowedOrigins []string,
	docH *handler.DocumentHandler,
	paymentH *handler.PaymentHandler,
	seqH *handler.SequenceHandler,
	taxH *handler.TaxHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Everything under /api/v1 requires a valid access token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(verifier))
	v1.Use(middleware.TenantGuard())

	docs := v1.Group("/documents")
	docs.POST("", docH.Create)
	docs.POST("/preview", docH.Preview)
	docs.GET("/register.csv", docH.RegisterCSV)
	docs.GET("/:id", docH.GetByID)
	docs.PUT("/:id", docH.Update)
	docs.GET("/:id/tax-summary.xlsx", docH.TaxSummaryXLSX)

	payments := v1.Group("/payments")
	payments.POST("", paymentH.Create)
	payments.GET("/:id", paymentH.GetByID)
	payments.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), paymentH.Delete)

	seqs := v1.Group("/sequences")
	seqs.GET("/:series/peek", seqH.Peek)
	seqs.POST("/:series/next", seqH.Next)
	seqs.PUT("/:series", middleware.RequireRole(domain.RoleAdmin), seqH.Configure)

	v1.GET("/tax/split", taxH.Split)

	return r
}
