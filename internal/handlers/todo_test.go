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
	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/constants"
	"github.com/nandapratama/todo-share-api/internal/dto"
	"github.com/nandapratama/todo-share-api/internal/models"
	"github.com/nandapratama/todo-share-api/internal/repository"
	"github.com/nandapratama/todo-share-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TodoHandler
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Todo{},
		&models.TodoShare{},
	)
	suite.Require().NoError(err)

	todoRepo := repository.NewTodoRepository(suite.db)
	shareRepo := repository.NewShareRepository(suite.db)
	evaluator := authz.NewEvaluator(shareRepo)
	suite.handler = NewTodoHandler(services.NewTodoService(todoRepo, evaluator))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TodoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TodoHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Fullname:     username + " Test",
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TodoHandlerTestSuite) createTestTodo(title string, ownerID uint64) *models.Todo {
	todo := &models.Todo{
		OwnerID:     ownerID,
		Title:       title,
		Description: "Test Description",
	}
	suite.db.Create(todo)
	return todo
}

func (suite *TodoHandlerTestSuite) createTestShare(todoID, userID uint64, canEdit bool) *models.TodoShare {
	share := &models.TodoShare{
		TodoID:           todoID,
		SharedWithUserID: userID,
		CanEdit:          canEdit,
	}
	suite.db.Create(share)
	return share
}

// Helper function to create authenticated context
func (suite *TodoHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_Success() {
	user := suite.createTestUser("owner")

	requestBody := map[string]interface{}{
		"title":       "Buy milk",
		"description": "Two liters",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/todos", body, user.ID)

	suite.handler.CreateTodo(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TodoDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Buy milk", response.Title)
	assert.Equal(suite.T(), user.ID, response.OwnerID)
	assert.Equal(suite.T(), 0, response.Priority)
	assert.False(suite.T(), response.IsCompleted)
	assert.Nil(suite.T(), response.DueDate)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_MissingTitle() {
	user := suite.createTestUser("owner")

	requestBody := map[string]interface{}{
		"description": "No title here",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/todos", body, user.ID)

	suite.handler.CreateTodo(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestListTodos_PaginationClamp() {
	user := suite.createTestUser("owner")
	for i := 1; i <= 15; i++ {
		suite.createTestTodo(fmt.Sprintf("Todo %d", i), user.ID)
	}

	// Page 1 returns the first 10 of 15
	c, w := suite.createAuthContext("GET", "/api/todos", nil, user.ID)
	c.Request.URL.RawQuery = "page=1&limit=10"

	suite.handler.ListTodos(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Todos, 10)
	assert.Equal(suite.T(), int64(15), response.Pagination.Total)
	assert.Equal(suite.T(), 2, response.Pagination.TotalPages)

	// Page 5 is clamped to the last valid page
	c, w = suite.createAuthContext("GET", "/api/todos", nil, user.ID)
	c.Request.URL.RawQuery = "page=5&limit=10"

	suite.handler.ListTodos(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, response.Pagination.Page)
	assert.Len(suite.T(), response.Todos, 5)
}

func (suite *TodoHandlerTestSuite) TestListTodos_Filters() {
	user := suite.createTestUser("owner")

	done := suite.createTestTodo("Done todo", user.ID)
	done.IsCompleted = true
	done.Priority = 2
	suite.db.Save(done)

	suite.createTestTodo("Open todo", user.ID)

	c, w := suite.createAuthContext("GET", "/api/todos", nil, user.ID)
	c.Request.URL.RawQuery = "is_completed=true"

	suite.handler.ListTodos(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Todos, 1)
	assert.Equal(suite.T(), "Done todo", response.Todos[0].Title)

	c, w = suite.createAuthContext("GET", "/api/todos", nil, user.ID)
	c.Request.URL.RawQuery = "priority=2"

	suite.handler.ListTodos(c)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Todos, 1)
	assert.Equal(suite.T(), 2, response.Todos[0].Priority)
}

func (suite *TodoHandlerTestSuite) TestListTodos_SortOrder() {
	user := suite.createTestUser("owner")

	older := &models.Todo{OwnerID: user.ID, Title: "Older", CreatedAt: time.Now().Add(-time.Hour)}
	suite.db.Create(older)
	newer := &models.Todo{OwnerID: user.ID, Title: "Newer", CreatedAt: time.Now()}
	suite.db.Create(newer)

	// Default order is newest first
	c, w := suite.createAuthContext("GET", "/api/todos", nil, user.ID)

	suite.handler.ListTodos(c)

	var response dto.TodoListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Newer", response.Todos[0].Title)

	c, w = suite.createAuthContext("GET", "/api/todos", nil, user.ID)
	c.Request.URL.RawQuery = "order=oldest"

	suite.handler.ListTodos(c)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Older", response.Todos[0].Title)
}

func (suite *TodoHandlerTestSuite) TestListTodos_ExcludesOthersTodos() {
	owner := suite.createTestUser("owner")
	other := suite.createTestUser("other")
	suite.createTestTodo("Mine", owner.ID)
	todo := suite.createTestTodo("Theirs", other.ID)
	suite.createTestShare(todo.ID, owner.ID, false)

	// Shared todos appear in the shares listing, not the owner list
	c, w := suite.createAuthContext("GET", "/api/todos", nil, owner.ID)

	suite.handler.ListTodos(c)

	var response dto.TodoListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Todos, 1)
	assert.Equal(suite.T(), "Mine", response.Todos[0].Title)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_Owner() {
	user := suite.createTestUser("owner")
	todo := suite.createTestTodo("Test Todo", user.ID)

	c, w := suite.createAuthContext("GET", "/api/todos/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.GetTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), todo.ID, response.ID)
	assert.NotNil(suite.T(), response.Owner)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_SharedRecipient() {
	owner := suite.createTestUser("owner")
	recipient := suite.createTestUser("recipient")
	todo := suite.createTestTodo("Shared Todo", owner.ID)
	suite.createTestShare(todo.ID, recipient.ID, false)

	// A read-only share still grants view
	c, w := suite.createAuthContext("GET", "/api/todos/1", nil, recipient.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.GetTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_Stranger() {
	owner := suite.createTestUser("owner")
	stranger := suite.createTestUser("stranger")
	todo := suite.createTestTodo("Private Todo", owner.ID)

	c, w := suite.createAuthContext("GET", "/api/todos/1", nil, stranger.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.GetTodo(c)

	// Exists but not visible: forbidden, not not-found
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_NotFound() {
	user := suite.createTestUser("owner")

	c, w := suite.createAuthContext("GET", "/api/todos/999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.GetTodo(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_Owner() {
	user := suite.createTestUser("owner")
	todo := suite.createTestTodo("Old Title", user.ID)

	requestBody := map[string]interface{}{
		"title":        "Updated Title",
		"is_completed": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/todos/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.UpdateTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated Title", response.Title)
	assert.True(suite.T(), response.IsCompleted)
	// Untouched fields keep their values
	assert.Equal(suite.T(), "Test Description", response.Description)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_ClearDueDate() {
	user := suite.createTestUser("owner")
	todo := suite.createTestTodo("With Due Date", user.ID)
	dueDate := time.Now().Add(24 * time.Hour)
	todo.DueDate = &dueDate
	suite.db.Save(todo)

	requestBody := map[string]interface{}{
		"clear_due_date": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/todos/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.UpdateTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.DueDate)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_RecipientWithoutEdit() {
	owner := suite.createTestUser("owner")
	recipient := suite.createTestUser("recipient")
	todo := suite.createTestTodo("Shared Todo", owner.ID)
	suite.createTestShare(todo.ID, recipient.ID, false)

	requestBody := map[string]interface{}{
		"title": "Hijacked",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/todos/1", body, recipient.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.UpdateTodo(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var unchanged models.Todo
	suite.db.First(&unchanged, todo.ID)
	assert.Equal(suite.T(), "Shared Todo", unchanged.Title)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_RecipientWithEdit() {
	owner := suite.createTestUser("owner")
	recipient := suite.createTestUser("recipient")
	todo := suite.createTestTodo("Shared Todo", owner.ID)
	suite.createTestShare(todo.ID, recipient.ID, true)

	requestBody := map[string]interface{}{
		"title":       "Edited by recipient",
		"description": "Updated Description",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/todos/1", body, recipient.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.UpdateTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TodoDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Edited by recipient", response.Title)
	assert.Equal(suite.T(), "Updated Description", response.Description)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_EmptyTitle() {
	user := suite.createTestUser("owner")
	todo := suite.createTestTodo("Test Todo", user.ID)

	requestBody := map[string]interface{}{
		"title": "",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/todos/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.UpdateTodo(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo_Owner() {
	user := suite.createTestUser("owner")
	recipient := suite.createTestUser("recipient")
	todo := suite.createTestTodo("Todo to Delete", user.ID)
	suite.createTestShare(todo.ID, recipient.ID, true)

	c, w := suite.createAuthContext("DELETE", "/api/todos/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.DeleteTodo(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Todo{}).Where("id = ?", todo.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	// Shares go with the todo
	suite.db.Model(&models.TodoShare{}).Where("todo_id = ?", todo.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo_EditShareDoesNotGrantDelete() {
	owner := suite.createTestUser("owner")
	recipient := suite.createTestUser("recipient")
	todo := suite.createTestTodo("Todo to Delete", owner.ID)
	suite.createTestShare(todo.ID, recipient.ID, true)

	c, w := suite.createAuthContext("DELETE", "/api/todos/1", nil, recipient.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(todo.ID)}}

	suite.handler.DeleteTodo(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Todo{}).Where("id = ?", todo.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestTodoHandlerTestSuite runs the test suite
func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
