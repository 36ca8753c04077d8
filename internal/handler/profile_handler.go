package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErr "billtrack/internal/pkg/errors"
	"billtrack/internal/pkg/response"
	"billtrack/internal/pkg/validate"
	"billtrack/internal/service"
)

// ProfileHandler serves the record of the identity resolved by the auth
// middleware; the routes carry no user id of their own.
type ProfileHandler struct {
	users *service.UserService
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) Show(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), actingUserID(c))
	if err != nil {
		logWarn(c, "profile not found", err)
		response.Fail(c, http.StatusBadRequest, "Profile not found!")
		return
	}
	logInfo(c, "profile viewed", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validate.UserUpdateRules.Apply(map[string]string{
		"name":  req.Name,
		"email": req.Email,
	}); errs != nil {
		response.ValidationFail(c, errs)
		return
	}
	user, err := h.users.Update(c.Request.Context(), actingUserID(c), req.Name, req.Email)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "profile not found", err)
			response.Fail(c, http.StatusBadRequest, "Profile not found!")
			return
		}
		logWarn(c, "profile not updated", err)
		response.Fail(c, http.StatusBadRequest, "Profile not updated!")
		return
	}
	logInfo(c, "profile updated", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "Profile updated successfully!",
	})
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validate.PasswordRules.Apply(map[string]string{
		"password": req.Password,
	}); errs != nil {
		response.ValidationFail(c, errs)
		return
	}
	user, err := h.users.UpdatePassword(c.Request.Context(), actingUserID(c), req.Password)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "profile not found", err)
			response.Fail(c, http.StatusBadRequest, "Profile not found!")
			return
		}
		logWarn(c, "profile password not updated", err)
		response.Fail(c, http.StatusBadRequest, "Profile password not updated!")
		return
	}
	logInfo(c, "profile password updated", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "Profile password updated successfully!",
	})
}
