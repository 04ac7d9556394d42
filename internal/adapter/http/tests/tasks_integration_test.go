//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dbadapter "github.com/kamal845/task-management/internal/adapter/db"
	httpadapter "github.com/kamal845/task-management/internal/adapter/http"
	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/adapter/http/handlers"
	appservice "github.com/kamal845/task-management/internal/app/service"
	"github.com/kamal845/task-management/pkg/apierrors"
)

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	taskRepository := dbadapter.NewTaskRepository(s.DB)
	userRepository := dbadapter.NewUserRepository(s.DB)
	taskService := appservice.NewTaskService(taskRepository)
	userService := appservice.NewUserService(userRepository, taskRepository)
	authService := appservice.NewAuthService(userRepository, []byte("integration-test-key"), time.Hour)

	router := gin.New()
	httpadapter.RegisterRoutes(
		router,
		authService,
		handlers.NewHealthHandler(s.DB),
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewUserHandler(userService),
	)
	s.router = router
}

func (s *TasksIntegrationSuite) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the public endpoint and returns the
// bearer token plus the new user's id.
func (s *TasksIntegrationSuite) register(name, email string) (string, string) {
	body := fmt.Sprintf(`{"name": %q, "email": %q, "password": "Secret123"}`, name, email)
	rec := s.doJSON(http.MethodPost, "/api/auth/register", "", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotEmpty(got.Token)
	return got.Token, got.Data.User.ID
}

func (s *TasksIntegrationSuite) createTask(token, body string) dto.TaskItem {
	rec := s.doJSON(http.MethodPost, "/api/tasks", token, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Data.Task
}

func (s *TasksIntegrationSuite) TestTaskLifecycle_CompletedAtFollowsStatus() {
	token, _ := s.register("Jane Doe", "jane@example.com")

	task := s.createTask(token, `{"title": "Write report", "description": "Quarterly numbers", "priority": "high", "tags": ["work", "q1"]}`)
	s.Require().Equal("pending", task.Status)
	s.Require().Equal([]string{"work", "q1"}, task.Tags)
	s.Require().Nil(task.CompletedAt)

	rec := s.doJSON(http.MethodPut, "/api/tasks/"+task.ID, token, `{"status": "completed"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("completed", updated.Data.Task.Status)
	s.Require().NotNil(updated.Data.Task.CompletedAt)

	rec = s.doJSON(http.MethodPut, "/api/tasks/"+task.ID, token, `{"status": "pending"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("pending", updated.Data.Task.Status)
	s.Require().Nil(updated.Data.Task.CompletedAt)

	rec = s.doJSON(http.MethodDelete, "/api/tasks/"+task.ID, token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodGet, "/api/tasks/"+task.ID, token, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *TasksIntegrationSuite) TestListTasks_FilterAndPaginate() {
	token, _ := s.register("Jane Doe", "jane@example.com")

	for i := 1; i <= 3; i++ {
		s.createTask(token, fmt.Sprintf(`{"title": "Pending %d", "description": "todo"}`, i))
	}
	s.createTask(token, `{"title": "Done already", "description": "old", "status": "completed"}`)

	rec := s.doJSON(http.MethodGet, "/api/tasks?status=pending&limit=2&page=1&sortOrder=asc&sortBy=title", token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(3, got.Total)
	s.Require().Equal(2, got.Count)
	s.Require().NotNil(got.Pagination)
	s.Require().Equal(2, got.Pagination.TotalPages)
	s.Require().True(got.Pagination.HasNextPage)
	s.Require().False(got.Pagination.HasPrevPage)
	s.Require().Equal("Pending 1", got.Data.Tasks[0].Title)
	s.Require().Equal("Pending 2", got.Data.Tasks[1].Title)
}

func (s *TasksIntegrationSuite) TestSearchTasks_MatchesTagsCaseInsensitive() {
	token, _ := s.register("Jane Doe", "jane@example.com")

	s.createTask(token, `{"title": "Buy groceries", "description": "milk and eggs", "tags": ["Errand"]}`)
	s.createTask(token, `{"title": "Write report", "description": "Quarterly numbers"}`)

	rec := s.doJSON(http.MethodGet, "/api/tasks/search?q=ERRAND", token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(1, got.Total)
	s.Require().Equal("Buy groceries", got.Data.Tasks[0].Title)

	rec = s.doJSON(http.MethodGet, "/api/tasks/search", token, "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var gotErr apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &gotErr))
	s.Require().Len(gotErr.ErrDetails.Fields, 1)
	s.Require().Equal("q", gotErr.ErrDetails.Fields[0].Field)
}

func (s *TasksIntegrationSuite) TestTasks_OtherUsersTaskIsForbidden() {
	ownerToken, _ := s.register("Jane Doe", "jane@example.com")
	otherToken, _ := s.register("John Roe", "john@example.com")

	task := s.createTask(ownerToken, `{"title": "Private task", "description": "mine"}`)

	rec := s.doJSON(http.MethodGet, "/api/tasks/"+task.ID, otherToken, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.doJSON(http.MethodDelete, "/api/tasks/"+task.ID, otherToken, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	// A random id that exists nowhere stays a 404, not a 403.
	rec = s.doJSON(http.MethodGet, "/api/tasks/"+uuid.NewString(), otherToken, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *TasksIntegrationSuite) TestOverdueTasks_SoonestFirst() {
	token, userID := s.register("Jane Doe", "jane@example.com")

	// Past due dates cannot come in through the API, so seed them directly.
	now := time.Now().UTC().Truncate(time.Second)
	for i, due := range []time.Time{now.Add(-48 * time.Hour), now.Add(-24 * time.Hour)} {
		_, err := s.DB.Exec(
			"INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, is_archived, created_at, updated_at) VALUES (?, ?, ?, '', 'pending', 'medium', ?, 0, ?, ?)",
			uuid.NewString(), userID, fmt.Sprintf("Late %d", i+1), due, now, now,
		)
		s.Require().NoError(err)
	}
	s.createTask(token, `{"title": "Not due yet", "description": "later", "dueDate": "2030-01-01"}`)

	rec := s.doJSON(http.MethodGet, "/api/tasks/overdue", token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(2, got.Total)
	s.Require().Equal("Late 1", got.Data.Tasks[0].Title)
	s.Require().Equal("Late 2", got.Data.Tasks[1].Title)
}

func (s *TasksIntegrationSuite) TestArchive_ExcludedFromListAndStats() {
	token, _ := s.register("Jane Doe", "jane@example.com")

	keep := s.createTask(token, `{"title": "Keep me", "description": "active"}`)
	archive := s.createTask(token, `{"title": "Archive me", "description": "done", "status": "completed"}`)

	rec := s.doJSON(http.MethodPatch, "/api/tasks/"+archive.ID+"/archive", token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var archived dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &archived))
	s.Require().True(archived.Data.Task.IsArchived)

	rec = s.doJSON(http.MethodGet, "/api/tasks", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var list dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Equal(1, list.Total)
	s.Require().Equal(keep.ID, list.Data.Tasks[0].ID)

	rec = s.doJSON(http.MethodGet, "/api/tasks/stats", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var stats dto.TaskStatsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	s.Require().Equal(1, stats.Data.Stats.Total)
	s.Require().Equal(1, stats.Data.Stats.Pending)
	s.Require().Equal(0, stats.Data.Stats.Completed)

	rec = s.doJSON(http.MethodPatch, "/api/tasks/"+archive.ID+"/unarchive", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodGet, "/api/tasks/stats", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	s.Require().Equal(2, stats.Data.Stats.Total)
	s.Require().Equal(1, stats.Data.Stats.Completed)
}

func (s *TasksIntegrationSuite) TestProfileAndPasswordSelfService() {
	token, _ := s.register("Jane Doe", "jane@example.com")
	s.register("John Roe", "john@example.com")

	// Moving to an address another account holds is rejected.
	rec := s.doJSON(http.MethodPut, "/api/auth/update-profile", token,
		`{"name": "Jane Doe", "email": "john@example.com"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.doJSON(http.MethodPut, "/api/auth/update-profile", token,
		`{"name": "Jane Smith", "email": "jane.smith@example.com"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.doJSON(http.MethodGet, "/api/auth/me", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var me dto.UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &me))
	s.Require().Equal("Jane Smith", me.Data.User.Name)
	s.Require().Equal("jane.smith@example.com", me.Data.User.Email)

	rec = s.doJSON(http.MethodPut, "/api/auth/update-password", token,
		`{"currentPassword": "Wrong456", "newPassword": "Fresh456"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = s.doJSON(http.MethodPut, "/api/auth/update-password", token,
		`{"currentPassword": "Secret123", "newPassword": "Fresh456"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var rotated dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &rotated))
	s.Require().NotEmpty(rotated.Token)

	// Only the new password logs in from here on.
	rec = s.doJSON(http.MethodPost, "/api/auth/login", "",
		`{"email": "jane.smith@example.com", "password": "Secret123"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/auth/login", "",
		`{"email": "jane.smith@example.com", "password": "Fresh456"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *TasksIntegrationSuite) TestAdminFlow_RoleChangeAndDeleteCascade() {
	adminToken, adminID := s.register("Ada Admin", "ada@example.com")
	userToken, userID := s.register("Jane Doe", "jane@example.com")

	// Bootstrap the first admin directly; role changes take effect on the
	// next request because tokens only carry the user id.
	_, err := s.DB.Exec("UPDATE users SET role = 'admin' WHERE id = ?", adminID)
	s.Require().NoError(err)

	// Plain users cannot list accounts.
	rec := s.doJSON(http.MethodGet, "/api/users", userToken, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.doJSON(http.MethodGet, "/api/users", adminToken, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var users dto.UserListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &users))
	s.Require().Equal(2, users.Total)

	// Admins cannot delete themselves.
	rec = s.doJSON(http.MethodDelete, "/api/users/"+adminID, adminToken, "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	s.createTask(userToken, `{"title": "Doomed task", "description": "will cascade"}`)

	rec = s.doJSON(http.MethodDelete, "/api/users/"+userID, adminToken, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var remaining int
	s.Require().NoError(s.DB.Get(&remaining, "SELECT COUNT(*) FROM tasks WHERE user_id = ?", userID))
	s.Require().Equal(0, remaining)

	rec = s.doJSON(http.MethodGet, "/api/auth/me", userToken, "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}
