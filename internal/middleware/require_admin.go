package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur authentifié a le rôle "admin".
// À chaîner après AuthRequired : un appelant sans token reçoit 401 là-bas,
// un appelant authentifié mais non privilégié reçoit 403 ici.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		c.Abort()
		return
	}
	if role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
