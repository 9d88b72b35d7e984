package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ihdim5/healthrecord-api/internal/handler/auth"
	"github.com/ihdim5/healthrecord-api/internal/handler/doctor"
	"github.com/ihdim5/healthrecord-api/internal/handler/health"
	"github.com/ihdim5/healthrecord-api/internal/handler/patient"
	"github.com/ihdim5/healthrecord-api/internal/handler/report"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/pkg/metrics"
)

type Router struct {
	engine *gin.Engine
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	Metrics   *metrics.Metrics
}

// NewRouter assembles the engine: ambient middleware first, then every
// handler registers its own routes under /api/v1.
func NewRouter(
	cfg Config,
	authMW *middleware.AuthMiddleware,
	authH *auth.Handler,
	patientH *patient.Handler,
	doctorH *doctor.Handler,
	reportH *report.Handler,
	healthH *health.Handler,
) *Router {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	if cfg.RateLimit > 0 {
		engine.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).RateLimit())
	}
	if cfg.Metrics != nil {
		engine.Use(instrument(cfg.Metrics))
	}

	healthH.RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	authH.RegisterRoutes(api, authMW)
	patientH.RegisterRoutes(api, authMW)
	doctorH.RegisterRoutes(api, authMW)
	reportH.RegisterRoutes(api, authMW)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// instrument records request counts, durations and error counts, labeled by
// route template so path cardinality stays bounded.
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.RequestTotal.WithLabelValues(method, path, status).Inc()
		m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			m.ErrorTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}
