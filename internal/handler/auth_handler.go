package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"billtrack/internal/pkg/response"
	"billtrack/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a bearer token on a credential match. Unknown email and
// wrong password get the same generic 404 so callers cannot enumerate
// accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusNotFound, "Incorrect login or password.")
		return
	}
	user, signed, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logWarn(c, "login failed", err, zap.String("email", req.Email))
		response.Fail(c, http.StatusNotFound, "Incorrect login or password.")
		return
	}
	logInfo(c, "login succeeded", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusCreated, gin.H{
		"token": signed,
		"user":  user,
	})
}

// Logout revokes every active token of the acting user.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := actingUserID(c)
	if userID == 0 {
		logWarn(c, "logout without identity", nil)
		response.Fail(c, http.StatusBadRequest, "User is not logged in.")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		logWarn(c, "logout failed", err)
		response.Fail(c, http.StatusBadRequest, "Not logged out.")
		return
	}
	logInfo(c, "logout succeeded")
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully."})
}
