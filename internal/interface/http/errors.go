package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/pkg/helpers"
	"github.com/oksasatya/user-account-service/pkg/response"
)

const (
	MsgUserNotFound      = "User not found"
	MsgPasswordIncorrect = "Password is incorrect"
	MsgFieldsRequired    = "All fields are required"
	MsgEmailTaken        = "Email already in use"
	MsgMissingAuthHeader = "Authorization header is missing"
	MsgInvalidToken      = "Token is not valid"
	MsgInternal          = "Internal server error"
	MsgInvalidBody       = "Invalid request body"
	MsgLoginRequired     = "Phone and password are required"
	MsgPasswordTooLong   = "Password is too long"
)

// StatusFor maps an application error to its HTTP status and client message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest, MsgFieldsRequired
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return http.StatusBadRequest, MsgPasswordTooLong
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, MsgUserNotFound
	case errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict, MsgEmailTaken
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgPasswordIncorrect
	case errors.Is(err, application.ErrMissingCredential):
		return http.StatusUnauthorized, MsgMissingAuthHeader
	case errors.Is(err, application.ErrInvalidToken):
		return http.StatusForbidden, MsgInvalidToken
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// writeError writes the mapped error body. Server errors are logged with the
// request id; their details never reach the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := StatusFor(err)
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
	}
	response.Error(c, status, msg)
}
