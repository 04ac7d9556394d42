package mapper

import (
	"time"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToUserItem(user domain.User) dto.UserItem {
	item := dto.UserItem{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		value := user.LastLogin.Format(time.RFC3339)
		item.LastLogin = &value
	}
	return item
}

func ToUserStatsItem(stats domain.UserStats) dto.UserStatsItem {
	return dto.UserStatsItem{
		TotalTasks:         stats.TotalTasks,
		CompletedTasks:     stats.CompletedTasks,
		PendingTasks:       stats.PendingTasks,
		InProgressTasks:    stats.InProgressTasks,
		OverdueTasks:       stats.OverdueTasks,
		TasksThisMonth:     stats.TasksThisMonth,
		CompletedThisMonth: stats.CompletedThisMonth,
		CompletionRate:     stats.CompletionRate,
	}
}
