package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/adapter/http/mapper"
	"github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
	"github.com/kamal845/task-management/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang),
		)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, lang, err, apierrors.MsgFailRegister)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang),
		)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, lang, err, apierrors.MsgFailLogin)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Logged in successfully",
		Token:   token,
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang),
		)
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user, domain.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondAuthError(c, lang, err, apierrors.MsgFailUpdateProfile)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    dto.UserPayload{User: mapper.ToUserItem(*updated)},
	})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang),
		)
		return
	}

	token, err := h.authService.UpdatePassword(c.Request.Context(), user, domain.UpdatePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if errors.Is(err, domain.ErrInvalidCredentials) {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgWrongCurrentPassword, lang),
		)
		return
	}
	if err != nil {
		respondAuthError(c, lang, err, apierrors.MsgFailUpdatePassword)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Password updated successfully",
		Token:   token,
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

func respondAuthError(c *gin.Context, lang string, err error, fallbackKey string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang, mapper.ToFieldViolations(verr)),
		)
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
		)
	default:
		zap.L().Error("auth operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
		)
	}
}
