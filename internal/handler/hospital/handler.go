package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/hospital"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *hospital.Service
}

func NewHandler(svc *hospital.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.GetHospital)
	r.PUT("", h.UpdateHospital)
}

func (h *Handler) GetHospital(c *gin.Context) {
	hosp, err := h.svc.GetHospital(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hosp))
}

func (h *Handler) UpdateHospital(c *gin.Context) {
	var req model.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	hosp, err := h.svc.UpdateHospital(c.Request.Context(), handler.ActorID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hosp))
}
