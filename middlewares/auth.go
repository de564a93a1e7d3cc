package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

// AuthMiddleware verifies the bearer token and, when roles are given,
// enforces them. The token's tokenVersion must match the user's current one
// so "logout everywhere" takes effect immediately.
func AuthMiddleware(db *gorm.DB, secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		var current struct{ TokenVersion int }
		if err := db.Model(&entity.User{}).
			Select("token_version").
			Where("id = ?", claims.UserID).
			First(&current).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}
		if current.TokenVersion != claims.TokenVersion {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session revoked"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
