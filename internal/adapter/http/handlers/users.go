package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/adapter/http/mapper"
	"github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
	"github.com/kamal845/task-management/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	lang := middleware.GetLang(c)

	query := domain.UserListQuery{
		Search:    c.Query("search"),
		Role:      domain.Role(c.Query("role")),
		SortBy:    domain.UserSortKey(c.DefaultQuery("sortBy", string(domain.UserSortCreatedAt))),
		SortOrder: domain.SortOrder(c.DefaultQuery("sortOrder", string(domain.SortDesc))),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	page, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		respondUserError(c, lang, err, apierrors.MsgFailListUsers)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Success:    true,
		Count:      len(page.Users),
		Total:      page.Total,
		Pagination: mapper.ToPaginationInfo(page.Pagination),
		Data:       dto.UsersPayload{Users: mapper.ToUserItems(page.Users)},
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	requester := middleware.CurrentUser(c)

	userID, ok := userIDParam(c, lang)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), requester, userID)
	if err != nil {
		respondUserError(c, lang, err, apierrors.MsgFailGetUser)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	requester := middleware.CurrentUser(c)

	userID, ok := userIDParam(c, lang)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), requester, userID); err != nil {
		respondUserError(c, lang, err, apierrors.MsgFailDeleteUser)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "User and associated tasks deleted successfully",
	})
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	lang := middleware.GetLang(c)
	requester := middleware.CurrentUser(c)

	userID, ok := userIDParam(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang,
				[]apierrors.FieldViolation{{Field: "role", Message: "Role must be either user or admin"}}),
		)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), requester, userID, domain.Role(req.Role))
	if err != nil {
		respondUserError(c, lang, err, apierrors.MsgFailUpdateUserRole)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "User role updated successfully",
		Data:    dto.UserPayload{User: mapper.ToUserItem(*user)},
	})
}

func (h *UserHandler) UserStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	requester := middleware.CurrentUser(c)

	stats, err := h.userService.Stats(c.Request.Context(), requester.ID)
	if err != nil {
		respondUserError(c, lang, err, apierrors.MsgFailUserStats)
		return
	}

	resp := dto.UserStatsResponse{Success: true}
	resp.Data.Stats = mapper.ToUserStatsItem(*stats)
	c.JSON(http.StatusOK, resp)
}

func userIDParam(c *gin.Context, lang string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, lang),
		)
		return "", false
	}
	return id, true
}

func respondUserError(c *gin.Context, lang string, err error, fallbackKey string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang, mapper.ToFieldViolations(verr)),
		)
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgUserNotFound, lang),
		)
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
	case errors.Is(err, domain.ErrSelfTarget):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgCannotTargetSelf, lang),
		)
	case errors.Is(err, domain.ErrInvalidUserID):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, lang),
		)
	default:
		zap.L().Error("user operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
		)
	}
}
