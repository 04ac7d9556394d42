package db

import (
	"fmt"
	"strings"

	"github.com/kamal845/task-management/internal/core/domain"
)

// taskSortColumns maps the closed set of sort keys onto columns. priority
// and status are MySQL ENUMs, so ordering follows enum definition order
// (low < medium < high, pending < in-progress < completed) rather than
// lexicographic order.
var taskSortColumns = map[domain.TaskSortKey]string{
	domain.TaskSortCreatedAt: "created_at",
	domain.TaskSortUpdatedAt: "updated_at",
	domain.TaskSortDueDate:   "due_date",
	domain.TaskSortPriority:  "priority",
	domain.TaskSortStatus:    "status",
	domain.TaskSortTitle:     "title",
}

// buildTaskListWhere compiles the list query into a WHERE clause. The owner
// and not-archived conditions are always present; status and priority
// AND-combine; search adds one OR-group over title, description and tags.
// The window SELECT and the COUNT both reuse the exact clause and args so
// the total is computed against the same predicate.
func buildTaskListWhere(userID string, q domain.TaskListQuery) (string, []any) {
	conds := []string{"t.user_id = ?", "t.is_archived = 0"}
	args := []any{userID}

	if q.Status != "" {
		conds = append(conds, "t.status = ?")
		args = append(args, string(q.Status))
	}
	if q.Priority != "" {
		conds = append(conds, "t.priority = ?")
		args = append(args, string(q.Priority))
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		conds = append(conds, "(LOWER(t.title) LIKE ? OR LOWER(t.description) LIKE ? OR EXISTS ("+
			"SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND LOWER(tt.tag) LIKE ?))")
		args = append(args, pattern, pattern, pattern)
	}

	return strings.Join(conds, " AND "), args
}

// buildTaskOrderBy produces the single-key ordering with id as a
// deterministic tie-break, so equal sort keys never shuffle across pages.
func buildTaskOrderBy(q domain.TaskListQuery) string {
	column, ok := taskSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY t.%s %s, t.id %s", column, direction, direction)
}
