package public

import (
	"errors"

	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	user, token, err := h.AuthService.Register(service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		case errors.Is(err, service.ErrUsernameExists):
			respondError(c, response.CodeConflict, "error.username_exists", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "error.email_exists", nil)
		case errors.Is(err, service.ErrPasswordTooWeak):
			respondError(c, response.CodeBadRequest, "error.password_too_weak", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}

	if h.AuthzService != nil {
		if err := h.AuthzService.BindUserRole(user.ID, user.Role); err != nil {
			respondError(c, response.CodeInternal, "error.internal_error", err)
			return
		}
	}

	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	user, token, err := h.AuthService.Login(service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}

	if h.AuthzService != nil {
		if err := h.AuthzService.BindUserRole(user.ID, user.Role); err != nil {
			respondError(c, response.CodeInternal, "error.internal_error", err)
			return
		}
	}

	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.AuthService.GetProfile(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	user, err := h.AuthService.UpdateProfile(uid, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, user)
}
