package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/chat"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Handler struct {
	svc *chat.Service
}

func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.PostMessage)
	}
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.svc.ListMessages(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(msgs))
}

func (h *Handler) PostMessage(c *gin.Context) {
	var req model.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	msg, err := h.svc.Post(c.Request.Context(), handler.CurrentActor(c), req.Message)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(msg))
}
