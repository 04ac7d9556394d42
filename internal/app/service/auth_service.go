package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
)

// AuthService issues and verifies HS256 bearer tokens whose subject is the
// user id. The user record is reloaded on every Authenticate call so role
// changes take effect without reissuing tokens.
type AuthService struct {
	users      ports.UserRepository
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(users ports.UserRepository, signingKey []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, string, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", domain.NewValidationError("email", "Email is already registered")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, in domain.LoginInput) (*domain.User, string, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	loginAt := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, "", err
	}
	user.LastLogin = &loginAt

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, in domain.UpdateProfileInput) (*domain.User, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.NewValidationError("email", "Email is already registered")
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	if err := s.users.UpdateProfile(ctx, user.ID, in.Name, in.Email); err != nil {
		return nil, err
	}

	updated := *user
	updated.Name = in.Name
	updated.Email = in.Email
	return &updated, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, user *domain.User, in domain.UpdatePasswordInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return "", err
	}

	// Tokens carry no password material, so earlier tokens stay valid; the
	// fresh one just saves the client a re-login.
	return s.issueToken(user.ID)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return s.users.FindByID(ctx, claims.Subject)
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
