package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware must run after JWTMiddleware: it only checks the role the
// token carried. Admin accounts live in their own store, so there is no user
// record to look up here.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		log.Printf("👑 AdminMiddleware: admin %s authenticated", c.GetString("username"))
		c.Next()
	}
}
