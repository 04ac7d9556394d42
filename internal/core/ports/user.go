package ports

import (
	"context"
	"time"

	"github.com/kamal845/task-management/internal/core/domain"
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Delete removes the user and every task they own in one transaction.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int, error)
}

type UserService interface {
	List(ctx context.Context, q domain.UserListQuery) (*domain.UserPage, error)
	Get(ctx context.Context, requester *domain.User, userID string) (*domain.User, error)
	Delete(ctx context.Context, requester *domain.User, userID string) error
	UpdateRole(ctx context.Context, requester *domain.User, userID string, role domain.Role) (*domain.User, error)
	Stats(ctx context.Context, userID string) (*domain.UserStats, error)
}

type AuthService interface {
	Register(ctx context.Context, in domain.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, in domain.LoginInput) (*domain.User, string, error)
	UpdateProfile(ctx context.Context, user *domain.User, in domain.UpdateProfileInput) (*domain.User, error)

	// UpdatePassword verifies the current password before storing the new
	// hash and returns a freshly issued token.
	UpdatePassword(ctx context.Context, user *domain.User, in domain.UpdatePasswordInput) (string, error)

	// Authenticate verifies a bearer token and loads the user it names.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
