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

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	page := pageParam(c)
	users, meta, err := h.users.List(c.Request.Context(), page)
	if err != nil {
		logWarn(c, "users not listed", err)
		response.Fail(c, http.StatusBadRequest, "Users not listed!")
		return
	}
	logInfo(c, "users listed", zap.Int("page", page))
	response.Success(c, http.StatusOK, gin.H{
		"users":       users,
		"page":        meta.Page,
		"page_size":   meta.PageSize,
		"total":       meta.Total,
		"total_pages": meta.TotalPages,
	})
}

func (h *UserHandler) Show(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "User not found!")
		return
	}
	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		logWarn(c, "user not found", err, zap.Int64("user_id", userID))
		response.Fail(c, http.StatusNotFound, "User not found!")
		return
	}
	logInfo(c, "user viewed", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

type userCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validate.UserCreateRules.Apply(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); errs != nil {
		response.ValidationFail(c, errs)
		return
	}
	user, err := h.users.Create(c.Request.Context(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logWarn(c, "user not created", err, zap.String("email", req.Email))
		response.Fail(c, http.StatusBadRequest, "User not created!")
		return
	}
	logInfo(c, "user created", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusCreated, gin.H{
		"user":    user,
		"message": "User created successfully!",
	})
}

type userUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "User not found!")
		return
	}
	var req userUpdateRequest
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
	user, err := h.users.Update(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "user not found", err, zap.Int64("user_id", userID))
			response.Fail(c, http.StatusNotFound, "User not found!")
			return
		}
		logWarn(c, "user not updated", err, zap.Int64("user_id", userID))
		response.Fail(c, http.StatusBadRequest, "User not updated!")
		return
	}
	logInfo(c, "user updated", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "User updated successfully!",
	})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "User not found!")
		return
	}
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
	user, err := h.users.UpdatePassword(c.Request.Context(), userID, req.Password)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "user not found", err, zap.Int64("user_id", userID))
			response.Fail(c, http.StatusNotFound, "User not found!")
			return
		}
		logWarn(c, "user password not updated", err, zap.Int64("user_id", userID))
		response.Fail(c, http.StatusBadRequest, "User password not updated!")
		return
	}
	logInfo(c, "user password updated", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "User password updated successfully!",
	})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "User not found!")
		return
	}
	user, err := h.users.Delete(c.Request.Context(), userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "user not found", err, zap.Int64("user_id", userID))
			response.Fail(c, http.StatusNotFound, "User not found!")
			return
		}
		logWarn(c, "user not deleted", err, zap.Int64("user_id", userID))
		response.Fail(c, http.StatusBadRequest, "User not deleted!")
		return
	}
	logInfo(c, "user deleted", zap.Int64("user_id", user.ID))
	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "User deleted successfully!",
	})
}
