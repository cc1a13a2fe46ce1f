package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/pkg/helpers"
	"github.com/oksasatya/user-account-service/pkg/response"
	"github.com/oksasatya/user-account-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Hasher helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, hasher helpers.PasswordHasher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Hasher: hasher, Logger: logger}
}

type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// bindUser decodes the body and hashes the password. It writes the error
// response itself and reports false when the request must stop.
func (h *UserHandler) bindUser(c *gin.Context) (application.UserInput, bool) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsMissingField(err) {
			response.Error(c, http.StatusBadRequest, MsgFieldsRequired)
			return application.UserInput{}, false
		}
		if h.Logger != nil {
			h.Logger.WithField("details", validation.ToDetails(err)).Debug("user payload rejected")
		}
		response.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return application.UserInput{}, false
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return application.UserInput{}, false
	}
	return application.UserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: hash,
		Address:  req.Address,
	}, true
}

// userID parses :id. A non-numeric or out-of-range id cannot match any row and
// is reported as not found.
func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, MsgUserNotFound)
		return 0, false
	}
	return id, true
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	in, ok := h.bindUser(c)
	if !ok {
		return
	}
	payload, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, payload)
}

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	in, ok := h.bindUser(c)
	if !ok {
		return
	}
	payload, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, payload)
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Search GET /api/v1/users/search?q=...&size=10
// size defaults to 10 when absent or not a number and is capped at 50.
func (h *UserHandler) Search(c *gin.Context) {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = application.DefaultSearchSize
	}
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}
