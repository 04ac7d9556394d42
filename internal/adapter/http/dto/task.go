package dto

type TaskItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Tags        []string `json:"tags"`
	CompletedAt *string  `json:"completedAt,omitempty"`
	IsArchived  bool     `json:"isArchived"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is a partial patch; presence of dueDate and tags is
// detected against the raw JSON body so null clears them.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

type TaskPayload struct {
	Task TaskItem `json:"task"`
}

type TasksPayload struct {
	Tasks []TaskItem `json:"tasks"`
}

type TaskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    TaskPayload `json:"data"`
}

type TaskListResponse struct {
	Success    bool            `json:"success"`
	Count      int             `json:"count"`
	Total      int             `json:"total"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Data       TasksPayload    `json:"data"`
}

type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TaskStatsItem struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in-progress"`
	Completed  int `json:"completed"`
}

type TaskStatsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Stats TaskStatsItem `json:"stats"`
	} `json:"data"`
}
