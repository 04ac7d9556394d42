package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/adapter/http/handlers"
	"github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/pkg/apierrors"
	"github.com/kamal845/task-management/pkg/translator"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, string, error) {
	args := m.Called(ctx, in)

	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *authServiceMock) Login(ctx context.Context, in domain.LoginInput) (*domain.User, string, error) {
	args := m.Called(ctx, in)

	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *authServiceMock) UpdateProfile(ctx context.Context, user *domain.User, in domain.UpdateProfileInput) (*domain.User, error) {
	args := m.Called(ctx, user, in)

	var updated *domain.User
	if value := args.Get(0); value != nil {
		updated = value.(*domain.User)
	}
	return updated, args.Error(1)
}

func (m *authServiceMock) UpdatePassword(ctx context.Context, user *domain.User, in domain.UpdatePasswordInput) (string, error) {
	args := m.Called(ctx, user, in)
	return args.String(0), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)

	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.Error(1)
}

func newAuthRouter(serviceMock *authServiceMock) *gin.Engine {
	handler := handlers.NewAuthHandler(serviceMock)

	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.POST("/auth/register", handler.Register)
	api.POST("/auth/login", handler.Login)
	api.GET("/auth/me", middleware.AuthMiddleware(serviceMock), handler.Me)
	api.PUT("/auth/update-profile", withUser(testUser()), handler.UpdateProfile)
	api.PUT("/auth/update-password", withUser(testUser()), handler.UpdatePassword)
	return router
}

func TestAuthHandler_Register_Success(t *testing.T) {
	createdAt := time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC)

	serviceMock := new(authServiceMock)
	serviceMock.On("Register", mock.Anything, domain.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Secret123",
	}).Return(
		&domain.User{
			ID:        testUserID,
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			Role:      domain.RoleUser,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		"signed-token",
		nil,
	).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/auth/register",
		`{"name": "Jane Doe", "email": "jane@example.com", "password": "Secret123"}`, translator.LanguageEn)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "signed-token", got.Token)
	require.Equal(t, "jane@example.com", got.Data.User.Email)
	require.Equal(t, "user", got.Data.User.Role)

	// The hash must never appear anywhere in the rendered user.
	require.NotContains(t, rec.Body.String(), "password")
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_Register_ValidationFieldsListed(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("email", "Please provide a valid email")
	verr.Add("password", "Password must be at least 6 characters")

	serviceMock := new(authServiceMock)
	serviceMock.On("Register", mock.Anything, mock.Anything).Return(nil, "", verr).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/auth/register",
		`{"name": "Jane Doe", "email": "nope", "password": "x"}`, translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Validation failed", got.ErrDetails.Message)
	require.Len(t, got.ErrDetails.Fields, 2)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	serviceMock := new(authServiceMock)
	serviceMock.On("Login", mock.Anything, mock.Anything).Return(nil, "", domain.ErrInvalidCredentials).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email": "jane@example.com", "password": "Wrong456"}`, translator.LanguageEn)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid email or password", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	updated := testUser()
	updated.Name = "Jane Smith"
	updated.Email = "jane.smith@example.com"

	serviceMock := new(authServiceMock)
	serviceMock.On("UpdateProfile", mock.Anything, testUser(), domain.UpdateProfileInput{
		Name:  "Jane Smith",
		Email: "jane.smith@example.com",
	}).Return(updated, nil).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPut, "/api/auth/update-profile",
		`{"name": "Jane Smith", "email": "jane.smith@example.com"}`, translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "Jane Smith", got.Data.User.Name)
	require.Equal(t, "jane.smith@example.com", got.Data.User.Email)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_UpdateProfile_DuplicateEmail(t *testing.T) {
	serviceMock := new(authServiceMock)
	serviceMock.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("email", "Email is already registered")).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPut, "/api/auth/update-profile",
		`{"name": "Jane Doe", "email": "taken@example.com"}`, translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.ErrDetails.Fields, 1)
	require.Equal(t, "email", got.ErrDetails.Fields[0].Field)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_UpdatePassword_Success(t *testing.T) {
	serviceMock := new(authServiceMock)
	serviceMock.On("UpdatePassword", mock.Anything, testUser(), domain.UpdatePasswordInput{
		CurrentPassword: "Secret123",
		NewPassword:     "Fresh456",
	}).Return("rotated-token", nil).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPut, "/api/auth/update-password",
		`{"currentPassword": "Secret123", "newPassword": "Fresh456"}`, translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "rotated-token", got.Token)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_UpdatePassword_WrongCurrentPassword(t *testing.T) {
	serviceMock := new(authServiceMock)
	serviceMock.On("UpdatePassword", mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.ErrInvalidCredentials).Once()
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodPut, "/api/auth/update-password",
		`{"currentPassword": "Wrong456", "newPassword": "Fresh456"}`, translator.LanguageEn)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Current password is incorrect", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestAuthMiddleware_MissingBearer(t *testing.T) {
	serviceMock := new(authServiceMock)
	router := newAuthRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/auth/me", "", translator.LanguageEn)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Not authenticated", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "Authenticate")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	serviceMock := new(authServiceMock)
	serviceMock.On("Authenticate", mock.Anything, "signed-token").Return(testUser(), nil).Once()
	router := newAuthRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("Authorization", "Bearer signed-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, testUserID, got.Data.User.ID)
	serviceMock.AssertExpectations(t)
}
