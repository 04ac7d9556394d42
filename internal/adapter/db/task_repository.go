package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
)

const taskColumns = "t.id, t.user_id, t.title, t.description, t.status, t.priority, t.due_date, t.completed_at, t.is_archived, t.created_at, t.updated_at"

const findTaskByIDQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.id = ?;
`

const insertTaskQuery = `
INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, completed_at, is_archived, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const updateTaskQuery = `
UPDATE tasks
SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, completed_at = ?, is_archived = ?, updated_at = ?
WHERE id = ?;
`

const deleteTaskQuery = `DELETE FROM tasks WHERE id = ?;`

const deleteTaskTagsQuery = `DELETE FROM task_tags WHERE task_id = ?;`

const selectTagsQuery = `
SELECT task_id, tag
FROM task_tags
WHERE task_id IN (?)
ORDER BY task_id, position;
`

const countTasksByStatusQuery = `
SELECT status, COUNT(*) AS count
FROM tasks
WHERE user_id = ? AND is_archived = 0
GROUP BY status;
`

const countOwnedTasksQuery = `
SELECT COUNT(*) FROM tasks
WHERE user_id = ? AND is_archived = 0;
`

const countOverdueTasksQuery = `
SELECT COUNT(*) FROM tasks
WHERE user_id = ? AND is_archived = 0 AND due_date IS NOT NULL AND due_date < ? AND status != 'completed';
`

const countCreatedSinceQuery = `
SELECT COUNT(*) FROM tasks
WHERE user_id = ? AND is_archived = 0 AND created_at >= ?;
`

const countCompletedSinceQuery = `
SELECT COUNT(*) FROM tasks
WHERE user_id = ? AND is_archived = 0 AND status = 'completed' AND completed_at >= ?;
`

const listOverdueWhere = `t.user_id = ? AND t.is_archived = 0 AND t.due_date IS NOT NULL AND t.due_date < ? AND t.status != 'completed'`

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Status      string       `db:"status"`
	Priority    string       `db:"priority"`
	DueDate     sql.NullTime `db:"due_date"`
	CompletedAt sql.NullTime `db:"completed_at"`
	IsArchived  bool         `db:"is_archived"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

type tagRow struct {
	TaskID string `db:"task_id"`
	Tag    string `db:"tag"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) error {
	now := r.now().UTC().Truncate(time.Second)
	task.CreatedAt = now
	task.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		nullTime(task.CompletedAt),
		task.IsArchived,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := replaceTags(ctx, tx, task.ID, task.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, findTaskByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task := mapTaskRowToDomainTask(row)
	if err := r.loadTags(ctx, []*domain.Task{&task}); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = r.now().UTC().Truncate(time.Second)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateTaskQuery,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		nullTime(task.CompletedAt),
		task.IsArchived,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		// MySQL reports 0 for a no-op rewrite of identical values too, so
		// confirm the row is really gone before reporting not-found.
		var exists int
		if err := tx.GetContext(ctx, &exists, "SELECT COUNT(*) FROM tasks WHERE id = ?", task.ID); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrTaskNotFound
		}
	}

	if err := replaceTags(ctx, tx, task.ID, task.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, userID string, q domain.TaskListQuery) ([]domain.Task, int, error) {
	where, args := buildTaskListWhere(userID, q)

	query := fmt.Sprintf("SELECT %s FROM tasks t WHERE %s %s LIMIT ? OFFSET ?",
		taskColumns, where, buildTaskOrderBy(q))
	windowArgs := append(append([]any{}, args...), q.Limit, q.Offset())

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, windowArgs...); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	tasks, err := r.mapRows(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) ListOverdue(ctx context.Context, userID string, now time.Time, page, limit int) ([]domain.Task, int, error) {
	// Soonest-due first, unlike the default listings.
	query := fmt.Sprintf("SELECT %s FROM tasks t WHERE %s ORDER BY t.due_date ASC, t.id ASC LIMIT ? OFFSET ?",
		taskColumns, listOverdueWhere)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, now, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + listOverdueWhere
	if err := r.db.GetContext(ctx, &total, countQuery, userID, now); err != nil {
		return nil, 0, err
	}

	tasks, err := r.mapRows(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, countTasksByStatusQuery, userID); err != nil {
		return nil, err
	}

	counts := make(map[domain.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.TaskStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *TaskRepository) CountOwned(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, countOwnedTasksQuery, userID)
	return total, err
}

func (r *TaskRepository) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, countOverdueTasksQuery, userID, now)
	return total, err
}

func (r *TaskRepository) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, countCreatedSinceQuery, userID, since)
	return total, err
}

func (r *TaskRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, countCompletedSinceQuery, userID, since)
	return total, err
}

func (r *TaskRepository) mapRows(ctx context.Context, rows []taskRow) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(rows))
	refs := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
		refs = append(refs, &tasks[len(tasks)-1])
	}
	if err := r.loadTags(ctx, refs); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadTags attaches ordered tags to the given tasks in one IN query.
func (r *TaskRepository) loadTags(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tasks))
	byID := make(map[string]*domain.Task, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
		byID[task.ID] = task
	}

	query, args, err := sqlx.In(selectTagsQuery, ids)
	if err != nil {
		return err
	}

	var rows []tagRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		if task, ok := byID[row.TaskID]; ok {
			task.Tags = append(task.Tags, row.Tag)
		}
	}
	return nil
}

// replaceTags rewrites the task's tag rows, keeping client-supplied order
// through the position column.
func replaceTags(ctx context.Context, tx *sqlx.Tx, taskID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, deleteTaskTagsQuery, taskID); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	values := make([]string, 0, len(tags))
	args := make([]any, 0, len(tags)*3)
	for i, tag := range tags {
		values = append(values, "(?, ?, ?)")
		args = append(args, taskID, i, tag)
	}
	query := "INSERT INTO task_tags (task_id, position, tag) VALUES " + strings.Join(values, ", ")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		IsArchived:  row.IsArchived,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}

	return task
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
