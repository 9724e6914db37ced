package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospiflow/internal/handler"
	authhandler "github.com/jwalitptl/hospiflow/internal/handler/auth"
	"github.com/jwalitptl/hospiflow/internal/middleware"
	"github.com/jwalitptl/hospiflow/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// ModuleHandlers maps every dashboard module to the handler serving it.
type ModuleHandlers map[model.Module]Handler

type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	authH      *authhandler.Handler
	dashboardH Handler
	modules    ModuleHandlers
	h          *handler.Handler
	loginLimit *middleware.RateLimiter
	metrics    *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	Mode          string
	LoginRate     rate.Limit
	LoginBurst    int
	CORSOrigins   []string
	MetricsPrefix string
	Registerer    prometheus.Registerer
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	dashboardH Handler,
	modules ModuleHandlers,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	r := &Router{
		engine:     engine,
		auth:       auth,
		authH:      authH,
		dashboardH: dashboardH,
		modules:    modules,
		h:          h,
		loginLimit: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.LoginRate,
			Burst: config.LoginBurst,
		}),
		metrics: initRouterMetrics(config.Registerer, config.MetricsPrefix),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.CORS(config.CORSOrigins),
	)

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.h.RegisterRoutes(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.loginLimit.RateLimit(), r.authH.Login)
		auth.POST("/logout", r.authH.Logout)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/session", r.authH.Session)
	r.dashboardH.RegisterRoutes(rg)

	for _, module := range model.Modules {
		h, ok := r.modules[module]
		if !ok {
			continue
		}
		group := rg.Group("/"+string(module), r.auth.RequireModule(module))
		h.RegisterRoutes(group)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(reg prometheus.Registerer, prefix string) *routerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &routerMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		switch {
		case c.Writer.Status() >= 500:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		case c.Writer.Status() >= 400:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
