package pharmacy

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/pharmacy"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *pharmacy.Service
}

func NewHandler(svc *pharmacy.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medicines := r.Group("/medicines")
	{
		medicines.GET("", h.ListMedicines)
		medicines.GET("/low-stock", h.ListLowStock)
	}
	r.GET("/inventory-value", h.GetInventoryValue)

	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.POST("/:id/dispense", h.Dispense)
	}
}

func (h *Handler) ListMedicines(c *gin.Context) {
	var filters model.MedicineFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid query", err))
		return
	}

	list, err := h.svc.ListMedicines(c.Request.Context(), &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) ListLowStock(c *gin.Context) {
	list, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) GetInventoryValue(c *gin.Context) {
	total, err := h.svc.InventoryValue(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"totalInventoryValue": total}))
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	list, err := h.svc.ListPrescriptions(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

// Dispense marks a pending prescription dispensed. Stock is not touched.
func (h *Handler) Dispense(c *gin.Context) {
	p, err := h.svc.Dispense(c.Request.Context(), handler.ActorID(c), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}
