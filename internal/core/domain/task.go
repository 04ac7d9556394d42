package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Length limits count characters, not bytes.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
	MaxTags           = 5
	TagMaxLen         = 20
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	Tags        []string
	CompletedAt *time.Time
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanModify reports whether userID owns the task. Read-single and every
// mutating operation use this exact check.
func (t *Task) CanModify(userID string) bool {
	return t.UserID == userID
}

func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// ApplyStatus moves the task to status and maintains CompletedAt: entering
// completed stamps it, leaving completed clears it. Re-applying completed to
// an already-completed task keeps the original timestamp.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	if status == TaskStatusCompleted {
		if t.CompletedAt == nil {
			at := now
			t.CompletedAt = &at
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus   // empty means default (pending)
	Priority    TaskPriority // empty means default (medium)
	DueDate     *time.Time
	Tags        []string
}

// Normalize trims whitespace the same way the store persists it, so length
// validation runs against the stored form.
func (in *CreateTaskInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	for i, tag := range in.Tags {
		in.Tags[i] = strings.TrimSpace(tag)
	}
}

// Validate accumulates every violated field instead of stopping at the
// first, so clients see the full list in one response.
func (in CreateTaskInput) Validate(now time.Time) error {
	verr := &ValidationError{}
	if in.Title == "" || utf8.RuneCountInString(in.Title) > TitleMaxLen {
		verr.Add("title", fmt.Sprintf("Title must be between 1 and %d characters", TitleMaxLen))
	}
	if in.Description == "" || utf8.RuneCountInString(in.Description) > DescriptionMaxLen {
		verr.Add("description", fmt.Sprintf("Description must be between 1 and %d characters", DescriptionMaxLen))
	}
	if in.Status != "" && !in.Status.Valid() {
		verr.Add("status", "Status must be pending, in-progress, or completed")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		verr.Add("priority", "Priority must be low, medium, or high")
	}
	if in.DueDate != nil && !in.DueDate.After(now) {
		verr.Add("dueDate", "Due date must be in the future")
	}
	validateTags(in.Tags, verr)
	return verr.OrNil()
}

// UpdateTaskInput is a partial patch: nil pointers mean "leave unchanged".
// DueDateSet and TagsSet distinguish clearing a field from omitting it.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	DueDateSet  bool
	Tags        []string
	TagsSet     bool
}

func (in *UpdateTaskInput) Normalize() {
	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		in.Title = &v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		in.Description = &v
	}
	for i, tag := range in.Tags {
		in.Tags[i] = strings.TrimSpace(tag)
	}
}

func (in UpdateTaskInput) Validate(now time.Time) error {
	verr := &ValidationError{}
	if in.Title != nil && (*in.Title == "" || utf8.RuneCountInString(*in.Title) > TitleMaxLen) {
		verr.Add("title", fmt.Sprintf("Title must be between 1 and %d characters", TitleMaxLen))
	}
	if in.Description != nil && (*in.Description == "" || utf8.RuneCountInString(*in.Description) > DescriptionMaxLen) {
		verr.Add("description", fmt.Sprintf("Description must be between 1 and %d characters", DescriptionMaxLen))
	}
	if in.Status != nil && !in.Status.Valid() {
		verr.Add("status", "Status must be pending, in-progress, or completed")
	}
	if in.Priority != nil && !in.Priority.Valid() {
		verr.Add("priority", "Priority must be low, medium, or high")
	}
	if in.DueDateSet && in.DueDate != nil && !in.DueDate.After(now) {
		verr.Add("dueDate", "Due date must be in the future")
	}
	if in.TagsSet {
		validateTags(in.Tags, verr)
	}
	return verr.OrNil()
}

func validateTags(tags []string, verr *ValidationError) {
	if len(tags) > MaxTags {
		verr.Add("tags", fmt.Sprintf("Maximum %d tags allowed", MaxTags))
	}
	for _, tag := range tags {
		if tag == "" || utf8.RuneCountInString(tag) > TagMaxLen {
			verr.Add("tags", fmt.Sprintf("Each tag must be between 1 and %d characters", TagMaxLen))
			break
		}
	}
}
