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

const userColumns = "u.id, u.name, u.email, u.password_hash, u.role, u.last_login, u.created_at, u.updated_at"

const findUserByIDQuery = `
SELECT ` + userColumns + `
FROM users u
WHERE u.id = ?;
`

const findUserByEmailQuery = `
SELECT ` + userColumns + `
FROM users u
WHERE u.email = ?;
`

const insertUserQuery = `
INSERT INTO users (id, name, email, password_hash, role, last_login, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`

const updateUserRoleQuery = `
UPDATE users SET role = ?, updated_at = ? WHERE id = ?;
`

const updateLastLoginQuery = `
UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?;
`

const updateUserProfileQuery = `
UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?;
`

const updateUserPasswordQuery = `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?;
`

const deleteUserQuery = `DELETE FROM users WHERE id = ?;`

const deleteTasksByUserQuery = `DELETE FROM tasks WHERE user_id = ?;`

var userSortColumns = map[domain.UserSortKey]string{
	domain.UserSortCreatedAt: "created_at",
	domain.UserSortName:      "name",
	domain.UserSortEmail:     "email",
	domain.UserSortLastLogin: "last_login",
}

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type userRow struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Role         string       `db:"role"`
	LastLogin    sql.NullTime `db:"last_login"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	now := r.now().UTC().Truncate(time.Second)
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		nullTime(user.LastLogin),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, findUserByIDQuery, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, findUserByEmailQuery, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user := mapUserRowToDomainUser(row)
	return &user, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, updateUserRoleQuery, string(role), r.now().UTC().Truncate(time.Second), id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateLastLoginQuery, at.UTC().Truncate(time.Second), r.now().UTC().Truncate(time.Second), id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

// UpdateProfile skips the rows-affected check: saving unchanged values
// affects zero rows under the driver's default settings, and the caller is
// always an authenticated user that exists.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) error {
	_, err := r.db.ExecContext(ctx, updateUserProfileQuery, name, email, r.now().UTC().Truncate(time.Second), id)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updateUserPasswordQuery, passwordHash, r.now().UTC().Truncate(time.Second), id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

// Delete removes the user's tasks and then the user in one transaction. The
// tasks FK also cascades, but the explicit delete keeps the cascade visible
// and works on schemas restored without the constraint.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteTasksByUserQuery, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}
	return tx.Commit()
}

func (r *UserRepository) List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int, error) {
	where, args := buildUserListWhere(q)

	query := fmt.Sprintf("SELECT %s FROM users u WHERE %s %s LIMIT ? OFFSET ?",
		userColumns, where, buildUserOrderBy(q))
	windowArgs := append(append([]any{}, args...), q.Limit, q.Offset())

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, windowArgs...); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM users u WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users, total, nil
}

func buildUserListWhere(q domain.UserListQuery) (string, []any) {
	conds := []string{"1 = 1"}
	args := []any{}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		conds = append(conds, "(LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if q.Role != "" {
		conds = append(conds, "u.role = ?")
		args = append(args, string(q.Role))
	}

	return strings.Join(conds, " AND "), args
}

func buildUserOrderBy(q domain.UserListQuery) string {
	column, ok := userSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY u.%s %s, u.id %s", column, direction, direction)
}

func noRowsAsNotFound(res sql.Result) error {
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func mapUserRowToDomainUser(row userRow) domain.User {
	user := domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.LastLogin.Valid {
		value := row.LastLogin.Time
		user.LastLogin = &value
	}
	return user
}
