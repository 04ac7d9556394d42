package dto

// UserItem never carries the password hash; the omission is structural, not
// a serialization option.
type UserItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	LastLogin *string `json:"lastLogin,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type UserPayload struct {
	User UserItem `json:"user"`
}

type UsersPayload struct {
	Users []UserItem `json:"users"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	Data    UserPayload `json:"data"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    UserPayload `json:"data"`
}

type UserListResponse struct {
	Success    bool            `json:"success"`
	Count      int             `json:"count"`
	Total      int             `json:"total"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Data       UsersPayload    `json:"data"`
}

type UserStatsItem struct {
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	PendingTasks       int     `json:"pendingTasks"`
	InProgressTasks    int     `json:"inProgressTasks"`
	OverdueTasks       int     `json:"overdueTasks"`
	TasksThisMonth     int     `json:"tasksThisMonth"`
	CompletedThisMonth int     `json:"completedThisMonth"`
	CompletionRate     float64 `json:"completionRate"`
}

type UserStatsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Stats UserStatsItem `json:"stats"`
	} `json:"data"`
}
