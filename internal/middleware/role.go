package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// RequireProvider protege os endpoints de publicação/remoção de janelas.
// Depende do AuthMiddleware já ter populado o contexto.
func RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleProvider {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "provider_role_required"})
			return
		}
		c.Next()
	}
}
