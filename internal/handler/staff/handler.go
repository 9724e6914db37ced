package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/staff"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *staff.Service
}

func NewHandler(svc *staff.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListStaff)
	r.POST("", h.CreateStaff)
	r.GET("/:id", h.GetStaff)
	r.PUT("/:id", h.UpdateStaff)
	r.DELETE("/:id", h.DeleteStaff)
}

func (h *Handler) ListStaff(c *gin.Context) {
	var filters model.StaffFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid query", err))
		return
	}

	list, err := h.svc.ListStaff(c.Request.Context(), &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) GetStaff(c *gin.Context) {
	st, err := h.svc.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(st))
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	st, err := h.svc.CreateStaff(c.Request.Context(), handler.ActorID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(st))
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	var req model.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	st, err := h.svc.UpdateStaff(c.Request.Context(), handler.ActorID(c), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(st))
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	if err := h.svc.DeleteStaff(c.Request.Context(), handler.ActorID(c), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("staff member deleted"))
}
