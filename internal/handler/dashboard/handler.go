package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/service/rbac"
)

// Handler serves the shell: the signed-in actor and the modules it may open.
type Handler struct {
	rbac *rbac.Service
}

func NewHandler(rbac *rbac.Service) *Handler {
	return &Handler{rbac: rbac}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetDashboard)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.rbac.Dashboard(handler.CurrentActor(c))))
}
