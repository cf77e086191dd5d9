package api

import (
	"net/http"

	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions toggles the auxiliary endpoints.
type RouterOptions struct {
	SwaggerDir string
	Metrics    bool
}

// NewRouter builds the REST surface of the service.
func NewRouter(service flights.FlightUseCase, log logger.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if opts.SwaggerDir != "" {
		router.Static("/swagger", opts.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/flights.swagger.json"),
		)))
	}

	NewFlightHandler(service, log).Register(router.Group("/api/flights"))
	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
