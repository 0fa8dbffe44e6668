package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"tentamenbank-api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// StudentIDKey is the gin context key holding the viewer's student number
const StudentIDKey = "student_id"

// Logger writes one line per request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("%s %s %d %s", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// CORS applies rs/cors to gin routes and answers preflight requests itself.
// studentHeader is the identity header set by the proxy and must be allowed cross-origin.
func CORS(allowedOrigins []string, studentHeader string) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", studentHeader},
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// StudentIdentity copies the student number set by the authenticating proxy
// into the request context. A missing header means an anonymous viewer.
func StudentIdentity(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(StudentIDKey, strings.TrimSpace(c.GetHeader(header)))
		c.Next()
	}
}

// StudentID returns the student number stored by StudentIdentity
func StudentID(c *gin.Context) string {
	return c.GetString(StudentIDKey)
}

// AdminToken guards admin routes with a static bearer token.
// With an empty token every request passes.
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "admin token required",
			})
			return
		}
		c.Next()
	}
}
