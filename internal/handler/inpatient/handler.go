package inpatient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/service/inpatient"
)

type Handler struct {
	svc *inpatient.Service
}

func NewHandler(svc *inpatient.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admissions := r.Group("/admissions")
	{
		admissions.GET("", h.ListAdmissions)
		admissions.POST("/:id/discharge", h.Discharge)
	}
}

// ListAdmissions lists every admission, or only active ones with ?status=active.
func (h *Handler) ListAdmissions(c *gin.Context) {
	list, err := h.svc.ListAdmissions(c.Request.Context(), c.Query("status") == "active")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) Discharge(c *gin.Context) {
	a, err := h.svc.Discharge(c.Request.Context(), handler.ActorID(c), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(a))
}
