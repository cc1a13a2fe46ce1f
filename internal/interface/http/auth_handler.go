package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/pkg/response"
	"github.com/oksasatya/user-account-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// An empty phone is looked up like any other and ends in not found.
type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/v1/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsMissingField(err) {
			response.Error(c, http.StatusBadRequest, MsgLoginRequired)
			return
		}
		if h.Logger != nil {
			h.Logger.WithField("details", validation.ToDetails(err)).Debug("login payload rejected")
		}
		response.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
