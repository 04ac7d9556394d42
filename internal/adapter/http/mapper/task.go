package mapper

import (
	"time"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/pkg/apierrors"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Tags:        task.Tags,
		IsArchived:  task.IsArchived,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}
	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}

	return item
}

func ToPaginationInfo(p domain.Pagination) *dto.PaginationInfo {
	return &dto.PaginationInfo{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
		Limit:       p.Limit,
	}
}

func ToTaskStatsItem(stats domain.TaskStats) dto.TaskStatsItem {
	return dto.TaskStatsItem{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
	}
}

func ToFieldViolations(verr *domain.ValidationError) []apierrors.FieldViolation {
	fields := make([]apierrors.FieldViolation, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, apierrors.FieldViolation{Field: v.Field, Message: v.Message})
	}
	return fields
}
