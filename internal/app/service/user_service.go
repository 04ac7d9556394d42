package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
)

// UserService covers the admin-facing user operations and the extended
// per-user stats aggregate.
type UserService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	now   func() time.Time
}

func NewUserService(users ports.UserRepository, tasks ports.TaskRepository) *UserService {
	return &UserService{users: users, tasks: tasks, now: time.Now}
}

var _ ports.UserService = (*UserService)(nil)

func (s *UserService) List(ctx context.Context, q domain.UserListQuery) (*domain.UserPage, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &domain.UserPage{
		Users:      users,
		Total:      total,
		Pagination: domain.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Get lets users read their own profile; reading anyone else requires the
// admin role.
func (s *UserService) Get(ctx context.Context, requester *domain.User, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester.ID != userID && !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Delete removes a user and cascade-deletes every task they own. Admins may
// not delete their own account.
func (s *UserService) Delete(ctx context.Context, requester *domain.User, userID string) error {
	if requester.ID == userID {
		return domain.ErrSelfTarget
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *UserService) UpdateRole(ctx context.Context, requester *domain.User, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "Role must be either user or admin")
	}
	if requester.ID == userID {
		return nil, domain.ErrSelfTarget
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Stats computes the extended aggregate for the user-stats endpoint. Every
// count excludes archived tasks.
func (s *UserService) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrInvalidUserID
	}

	now := s.now()
	total, err := s.tasks.CountOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountOverdue(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	startOfMonth := domain.StartOfMonth(now)
	createdThisMonth, err := s.tasks.CountCreatedSince(ctx, userID, startOfMonth)
	if err != nil {
		return nil, err
	}
	completedThisMonth, err := s.tasks.CountCompletedSince(ctx, userID, startOfMonth)
	if err != nil {
		return nil, err
	}

	completed := counts[domain.TaskStatusCompleted]
	return &domain.UserStats{
		TotalTasks:         total,
		CompletedTasks:     completed,
		PendingTasks:       counts[domain.TaskStatusPending],
		InProgressTasks:    counts[domain.TaskStatusInProgress],
		OverdueTasks:       overdue,
		TasksThisMonth:     createdThisMonth,
		CompletedThisMonth: completedThisMonth,
		CompletionRate:     domain.CompletionRate(completed, total),
	}, nil
}
