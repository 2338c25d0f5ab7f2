package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftsync/task-activity-api/internal/database"
	"github.com/craftsync/task-activity-api/internal/middleware"
	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/repository"
	"github.com/craftsync/task-activity-api/internal/services"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	creator  *models.User
	assignee *models.User
	stranger *models.User

	creatorToken  string
	assigneeToken string
	strangerToken string
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.ActivityType{},
		&models.ActivityGroup{},
		&models.Stage{},
		&models.CoreGroup{},
		&models.Task{},
		&models.Attachment{},
		&models.TaskHistory{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	historyRepo := repository.NewHistoryRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	refRepo := repository.NewReferenceRepository(suite.db)

	authService := services.NewAuthService(userRepo, "test-secret", 30)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, historyRepo, userRepo, refRepo, nil)
	historyService := services.NewHistoryService(historyRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(taskService)
	historyHandler := NewHistoryHandler(historyService)

	r := gin.New()
	r.POST("/token", authHandler.Token)
	r.POST("/users", userHandler.CreateUser)
	r.GET("/users", userHandler.ListUsers)
	r.GET("/users/:id", userHandler.GetUser)

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(authService))
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/history", historyHandler.ListAll)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.GET("/:id/history_details", historyHandler.GetDetails)
		tasks.GET("/:id/history", historyHandler.ListForTask)
		tasks.GET("/:id/history/latest", historyHandler.LatestForTask)
	}
	suite.router = r

	suite.Require().NoError(suite.db.Create(&models.ActivityType{Name: "Call"}).Error)

	suite.creator = suite.createUser("creator", "creator@example.com")
	suite.assignee = suite.createUser("assignee", "assignee@example.com")
	suite.stranger = suite.createUser("stranger", "stranger@example.com")

	suite.creatorToken = suite.issueToken(authService, suite.creator)
	suite.assigneeToken = suite.issueToken(authService, suite.assignee)
	suite.strangerToken = suite.issueToken(authService, suite.stranger)
}

func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createUser(username, email string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	suite.Require().NoError(err)

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) issueToken(authService *services.AuthService, user *models.User) string {
	token, err := authService.IssueToken(user)
	suite.Require().NoError(err)
	return token
}

func (suite *TaskHandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func (suite *TaskHandlerTestSuite) createTaskRequest() map[string]interface{} {
	return map[string]interface{}{
		"task_name":        "Follow up with client",
		"activity_type_id": 1,
		"due_date":         time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
		"assigned_to_id":   suite.assignee.ID,
	}
}

func (suite *TaskHandlerTestSuite) createTask() uint64 {
	w := suite.request(http.MethodPost, "/tasks", suite.creatorToken, suite.createTaskRequest())
	suite.Require().Equal(http.StatusCreated, w.Code)

	payload := suite.decode(w)
	values := payload["values"].(map[string]interface{})
	return uint64(values["task_id"].(float64))
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.request(http.MethodPost, "/tasks", suite.creatorToken, suite.createTaskRequest())
	suite.Require().Equal(http.StatusCreated, w.Code)

	payload := suite.decode(w)
	suite.Equal(float64(http.StatusCreated), payload["status_code"])

	values := payload["values"].(map[string]interface{})
	suite.Equal("Follow up with client", values["task_name"])
	suite.Equal("Not Started", values["status"])
	suite.NotZero(values["task_id"])
}

func (suite *TaskHandlerTestSuite) TestCreateTaskRequiresAuth() {
	w := suite.request(http.MethodPost, "/tasks", "", suite.createTaskRequest())
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Bearer", w.Header().Get("WWW-Authenticate"))
}

func (suite *TaskHandlerTestSuite) TestCreateTaskMissingRequiredFields() {
	w := suite.request(http.MethodPost, "/tasks", suite.creatorToken, map[string]interface{}{
		"task_description": "no name or activity type",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTaskPastDueDate() {
	body := suite.createTaskRequest()
	body["due_date"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	w := suite.request(http.MethodPost, "/tasks", suite.creatorToken, body)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("The due date must be a future date.", suite.decode(w)["detail"])
}

func (suite *TaskHandlerTestSuite) TestCreateTaskUnknownActivityType() {
	body := suite.createTaskRequest()
	body["activity_type_id"] = 99

	w := suite.request(http.MethodPost, "/tasks", suite.creatorToken, body)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Activity type with id 99 does not exist.", suite.decode(w)["detail"])
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	id := suite.createTask()

	w := suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	values := suite.decode(w)["values"].(map[string]interface{})
	suite.Equal("Follow up with client", values["task_name"])
}

func (suite *TaskHandlerTestSuite) TestGetTaskNotFound() {
	w := suite.request(http.MethodGet, "/tasks/9999", suite.creatorToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTaskForbiddenForStranger() {
	id := suite.createTask()

	w := suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d", id), suite.strangerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTaskAllowedForAssignee() {
	id := suite.createTask()

	w := suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d", id), suite.assigneeToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask() {
	id := suite.createTask()

	w := suite.request(http.MethodPut, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, map[string]interface{}{
		"status": "In Progress",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	values := suite.decode(w)["values"].(map[string]interface{})
	suite.Equal("In Progress", values["status"])
	suite.Equal("Follow up with client", values["task_name"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskForbiddenForStranger() {
	id := suite.createTask()

	w := suite.request(http.MethodPut, fmt.Sprintf("/tasks/%d", id), suite.strangerToken, map[string]interface{}{
		"status": "In Progress",
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	id := suite.createTask()

	w := suite.request(http.MethodDelete, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.Bytes())

	w = suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks() {
	suite.createTask()
	suite.createTask()

	w := suite.request(http.MethodGet, "/tasks?task_type=created", suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	values := suite.decode(w)["values"].([]interface{})
	suite.Len(values, 2)
}

func (suite *TaskHandlerTestSuite) TestListTasksAssigned() {
	suite.createTask()

	w := suite.request(http.MethodGet, "/tasks?task_type=assigned", suite.assigneeToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(suite.decode(w)["values"].([]interface{}), 1)

	w = suite.request(http.MethodGet, "/tasks?task_type=assigned", suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Empty(suite.decode(w)["values"])
}

func (suite *TaskHandlerTestSuite) TestListTasksBadSortOrder() {
	w := suite.request(http.MethodGet, "/tasks?sort_order=sideways", suite.creatorToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestHistoryListAll() {
	id := suite.createTask()
	suite.request(http.MethodPut, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, map[string]interface{}{
		"status": "In Progress",
	})

	w := suite.request(http.MethodGet, "/tasks/history", suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	values := suite.decode(w)["values"].([]interface{})
	suite.Require().Len(values, 2)

	// The activity field carries the snapshot status; the task name rides
	// along as activity_name.
	first := values[0].(map[string]interface{})
	suite.Equal("Not Started", first["activity"])
	suite.Equal("Follow up with client", first["activity_name"])
	suite.Equal("creator", first["created_by"])

	second := values[1].(map[string]interface{})
	suite.Equal("In Progress", second["activity"])
}

func (suite *TaskHandlerTestSuite) TestHistoryDetails() {
	id := suite.createTask()
	suite.request(http.MethodPut, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, map[string]interface{}{
		"status": "Completed",
	})

	w := suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d/history_details", id), suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	values := suite.decode(w)["values"].(map[string]interface{})
	latest := values["latest_data_value"].(map[string]interface{})
	suite.Equal("Completed", latest["status"])
	suite.Equal("creator", latest["created_by"])
}

func (suite *TaskHandlerTestSuite) TestHistoryDetailsNotFound() {
	w := suite.request(http.MethodGet, "/tasks/424242/history_details", suite.creatorToken, nil)
	suite.Require().Equal(http.StatusNotFound, w.Code)
	suite.Equal("Task history not found", suite.decode(w)["detail"])
}

func (suite *TaskHandlerTestSuite) TestHistoryForTask() {
	id := suite.createTask()
	suite.request(http.MethodPut, fmt.Sprintf("/tasks/%d", id), suite.creatorToken, map[string]interface{}{
		"status": "In Progress",
	})

	w := suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d/history", id), suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var entries []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	suite.Len(entries, 2)

	w = suite.request(http.MethodGet, fmt.Sprintf("/tasks/%d/history/latest", id), suite.creatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	suite.Len(entries, 2)
}

func (suite *TaskHandlerTestSuite) TestMalformedBearerToken() {
	w := suite.request(http.MethodGet, "/tasks", "garbage.token.here", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
