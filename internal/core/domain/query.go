package domain

import "math"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

type TaskSortKey string

const (
	TaskSortCreatedAt TaskSortKey = "createdAt"
	TaskSortUpdatedAt TaskSortKey = "updatedAt"
	TaskSortDueDate   TaskSortKey = "dueDate"
	TaskSortPriority  TaskSortKey = "priority"
	TaskSortStatus    TaskSortKey = "status"
	TaskSortTitle     TaskSortKey = "title"
)

func (k TaskSortKey) Valid() bool {
	switch k {
	case TaskSortCreatedAt, TaskSortUpdatedAt, TaskSortDueDate, TaskSortPriority, TaskSortStatus, TaskSortTitle:
		return true
	}
	return false
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// TaskListQuery is the closed set of recognized list parameters. The store
// always adds owner and not-archived to whatever is set here.
type TaskListQuery struct {
	Status    TaskStatus   // optional
	Priority  TaskPriority // optional
	Search    string       // optional; OR-matches title, description, tags
	SortBy    TaskSortKey
	SortOrder SortOrder
	Page      int
	Limit     int
}

// Normalize fills defaults and clamps pagination into range.
func (q *TaskListQuery) Normalize() {
	if q.SortBy == "" {
		q.SortBy = TaskSortCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q TaskListQuery) Validate() error {
	verr := &ValidationError{}
	if q.Status != "" && !q.Status.Valid() {
		verr.Add("status", "Status must be pending, in-progress, or completed")
	}
	if q.Priority != "" && !q.Priority.Valid() {
		verr.Add("priority", "Priority must be low, medium, or high")
	}
	if !q.SortBy.Valid() {
		verr.Add("sortBy", "Sort key must be createdAt, updatedAt, dueDate, priority, status, or title")
	}
	if !q.SortOrder.Valid() {
		verr.Add("sortOrder", "Sort order must be asc or desc")
	}
	return verr.OrNil()
}

func (q TaskListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type UserSortKey string

const (
	UserSortCreatedAt UserSortKey = "createdAt"
	UserSortName      UserSortKey = "name"
	UserSortEmail     UserSortKey = "email"
	UserSortLastLogin UserSortKey = "lastLogin"
)

func (k UserSortKey) Valid() bool {
	switch k {
	case UserSortCreatedAt, UserSortName, UserSortEmail, UserSortLastLogin:
		return true
	}
	return false
}

type UserListQuery struct {
	Search    string // optional; OR-matches name, email
	Role      Role   // optional
	SortBy    UserSortKey
	SortOrder SortOrder
	Page      int
	Limit     int
}

func (q *UserListQuery) Normalize() {
	if q.SortBy == "" {
		q.SortBy = UserSortCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q UserListQuery) Validate() error {
	verr := &ValidationError{}
	if q.Role != "" && !q.Role.Valid() {
		verr.Add("role", "Role must be either user or admin")
	}
	if !q.SortBy.Valid() {
		verr.Add("sortBy", "Sort key must be createdAt, name, email, or lastLogin")
	}
	if !q.SortOrder.Valid() {
		verr.Add("sortOrder", "Sort order must be asc or desc")
	}
	return verr.OrNil()
}

func (q UserListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes one window of a paginated result.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

// TaskPage is a window of matching tasks plus the total match count,
// both computed against the same predicate.
type TaskPage struct {
	Tasks      []Task
	Total      int
	Pagination Pagination
}

type UserPage struct {
	Users      []User
	Total      int
	Pagination Pagination
}
