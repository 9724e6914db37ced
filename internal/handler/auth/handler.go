package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/middleware"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/auth"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("Username and password are required", err))
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(session))
}

// Logout always succeeds, with or without a valid token.
func (h *Handler) Logout(c *gin.Context) {
	if token := middleware.BearerToken(c); token != "" {
		h.svc.Logout(c.Request.Context(), token)
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out successfully"))
}

func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(handler.CurrentActor(c)))
}
