package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/core/domain"
)

// Accepted due date layouts: full RFC3339 timestamps and bare dates.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// BuildCreateTaskInput maps the request body onto the domain input. Field
// constraints (lengths, enums, future due date) are validated by the domain;
// only shape problems are reported here.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	in := domain.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		in.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		in.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, domain.NewValidationError("dueDate", "Due date must be a valid date")
		}
		in.DueDate = &dueDate
	}
	return in, nil
}

// BuildUpdateTaskInput maps a partial patch. The raw body distinguishes an
// omitted dueDate/tags from an explicit null, which clears the field.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	in := domain.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}

	if hasJSONField(raw, "dueDate") {
		in.DueDateSet = true
		if !isJSONNull(raw["dueDate"]) {
			if req.DueDate == nil {
				return domain.UpdateTaskInput{}, domain.NewValidationError("dueDate", "Due date must be a valid date")
			}
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return domain.UpdateTaskInput{}, domain.NewValidationError("dueDate", "Due date must be a valid date")
			}
			in.DueDate = &dueDate
		}
	}

	if hasJSONField(raw, "tags") {
		in.TagsSet = true
		if !isJSONNull(raw["tags"]) {
			in.Tags = req.Tags
		}
	}

	return in, nil
}

func parseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
