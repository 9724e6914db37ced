package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/handler"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/auth"
	"github.com/jwalitptl/hospiflow/internal/service/rbac"
)

type AuthMiddleware struct {
	rbacService *rbac.Service
	authService *auth.Service
}

func NewAuthMiddleware(rbacService *rbac.Service, authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		rbacService: rbacService,
		authService: authService,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is missing or malformed.
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate restores the actor of the session token and stores it in the
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			return
		}

		actor, err := m.authService.CurrentActor(c.Request.Context(), token)
		if err != nil {
			handler.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(handler.ContextActor, actor)
		c.Set(handler.ContextToken, token)
		c.Next()
	}
}

// RequireModule rejects actors whose role may not open module.
func (m *AuthMiddleware) RequireModule(module model.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := handler.CurrentActor(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("No active session"))
			return
		}

		if !m.rbacService.CanAccess(actor.Role, module) {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse("Access denied"))
			return
		}

		c.Next()
	}
}
