package ports

import (
	"context"
	"time"

	"github.com/kamal845/task-management/internal/core/domain"
)

type TaskRepository interface {
	Insert(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// List returns one window of the owner's non-archived tasks plus the
	// total match count, both computed against the same predicate.
	List(ctx context.Context, userID string, q domain.TaskListQuery) ([]domain.Task, int, error)
	ListOverdue(ctx context.Context, userID string, now time.Time, page, limit int) ([]domain.Task, int, error)

	CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error)
	CountOwned(ctx context.Context, userID string) (int, error)
	CountOverdue(ctx context.Context, userID string, now time.Time) (int, error)
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type TaskService interface {
	Create(ctx context.Context, userID string, in domain.CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, in domain.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	List(ctx context.Context, userID string, q domain.TaskListQuery) (*domain.TaskPage, error)
	Search(ctx context.Context, userID, search string, page, limit int) ([]domain.Task, int, error)
	ListByStatus(ctx context.Context, userID string, status domain.TaskStatus, page, limit int) ([]domain.Task, int, error)
	ListOverdue(ctx context.Context, userID string, page, limit int) ([]domain.Task, int, error)
	Archive(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Unarchive(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Stats(ctx context.Context, userID string) (*domain.TaskStats, error)
}
