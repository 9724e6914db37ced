package outpatient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/patient"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

// Handler serves the patient registry used by the outpatient module.
type Handler struct {
	svc *patient.Service
}

func NewHandler(svc *patient.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid query", err))
		return
	}

	list, err := h.svc.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

// GetPatient returns the patient with its prescriptions and lab tests.
func (h *Handler) GetPatient(c *gin.Context) {
	record, err := h.svc.GetPatientRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}
