package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/application"
	handlers "github.com/oksasatya/user-account-service/internal/interface/http"
	"github.com/oksasatya/user-account-service/pkg/response"
)

// Auth validates the bearer token in the Authorization header.
// It sets auth_claims, userID and phone in the Gin context on success and
// attaches the claims to the request context.
func Auth(svc *application.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := svc.Authorize(c.GetHeader("Authorization"))
		if err != nil {
			status, msg := handlers.StatusFor(err)
			if logger != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
				}).Debug("request not authorized")
			}
			response.Error(c, status, msg)
			return
		}

		c.Set("auth_claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Request = c.Request.WithContext(application.ContextWithClaims(c.Request.Context(), claims))
		c.Next()
	}
}
