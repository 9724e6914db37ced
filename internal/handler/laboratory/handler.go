package laboratory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/laboratory"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *laboratory.Service
}

func NewHandler(svc *laboratory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tests := r.Group("/tests")
	{
		tests.GET("", h.ListTests)
		tests.GET("/:id", h.GetTest)
		tests.POST("/:id/start", h.StartTest)
		tests.POST("/:id/complete", h.CompleteTest)
	}
}

func (h *Handler) ListTests(c *gin.Context) {
	list, err := h.svc.ListTests(c.Request.Context(), model.LabTestStatus(c.Query("status")))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) GetTest(c *gin.Context) {
	t, err := h.svc.GetTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}

func (h *Handler) StartTest(c *gin.Context) {
	t, err := h.svc.Start(c.Request.Context(), handler.ActorID(c), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}

func (h *Handler) CompleteTest(c *gin.Context) {
	var req model.CompleteLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	t, err := h.svc.Complete(c.Request.Context(), handler.ActorID(c), c.Param("id"), req.Results)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}
