package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kamal845/task-management/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) Insert(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *taskRepositoryMock) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)

	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskRepositoryMock) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskRepositoryMock) List(ctx context.Context, userID string, q domain.TaskListQuery) ([]domain.Task, int, error) {
	args := m.Called(ctx, userID, q)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Int(1), args.Error(2)
}

func (m *taskRepositoryMock) ListOverdue(ctx context.Context, userID string, now time.Time, page, limit int) ([]domain.Task, int, error) {
	args := m.Called(ctx, userID, now, page, limit)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Int(1), args.Error(2)
}

func (m *taskRepositoryMock) CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error) {
	args := m.Called(ctx, userID)

	var counts map[domain.TaskStatus]int
	if value := args.Get(0); value != nil {
		counts = value.(map[domain.TaskStatus]int)
	}
	return counts, args.Error(1)
}

func (m *taskRepositoryMock) CountOwned(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *taskRepositoryMock) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *taskRepositoryMock) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *taskRepositoryMock) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) Insert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepositoryMock) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)

	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.Error(1)
}

func (m *userRepositoryMock) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)

	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.Error(1)
}

func (m *userRepositoryMock) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *userRepositoryMock) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *userRepositoryMock) UpdateProfile(ctx context.Context, id, name, email string) error {
	args := m.Called(ctx, id, name, email)
	return args.Error(0)
}

func (m *userRepositoryMock) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *userRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *userRepositoryMock) List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int, error) {
	args := m.Called(ctx, q)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Int(1), args.Error(2)
}
