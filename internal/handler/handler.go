package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/hospiflow/internal/model"
)

type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type PolicySource interface {
	Policy() map[model.Module][]model.Role
}

// Handler serves the unauthenticated operational endpoints.
type Handler struct {
	ready    ReadinessChecker
	policy   PolicySource
	gatherer prometheus.Gatherer
}

func NewHandler(ready ReadinessChecker, policy PolicySource, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		ready:    ready,
		policy:   policy,
		gatherer: gatherer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
	r.GET("/metrics", h.MetricsHandler())
	r.GET("/policy", h.GetPolicy)
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "alive",
		"time":   time.Now(),
	}))
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ready.Ready(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse("session store unavailable"))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "ready",
		"time":   time.Now(),
	}))
}

func (h *Handler) MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// GetPolicy returns the module access table.
func (h *Handler) GetPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(h.policy.Policy()))
}
