package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/dto"
	apierrors "github.com/nandapratama/todo-share-api/internal/errors"
	"github.com/nandapratama/todo-share-api/internal/middleware"
	"github.com/nandapratama/todo-share-api/internal/services"
	"github.com/nandapratama/todo-share-api/internal/utils"
)

// TodoHandler coordinates todo CRUD HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the current user's todos with pagination, filtering and
// sort order.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTodosInput{OwnerID: userID}

	if v := c.Query("is_completed"); v != "" {
		isCompleted, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_completed")
			return
		}
		input.IsCompleted = &isCompleted
	}
	if v := c.Query("priority"); v != "" {
		priority, err := strconv.Atoi(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		input.Priority = &priority
	}
	input.OrderOldest = c.Query("order") == "oldest"

	params := utils.GetPaginationParams(c)

	todos, total, params, err := h.todoService.ListTodos(input, params)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos, params, total))
}

// GetTodo returns a todo by ID with its owner and shares, if the current
// user may view it.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return
	}

	todo, err := h.todoService.GetTodo(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// CreateTodo creates a new todo owned by the current user.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTodoRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		Priority    int        `json:"priority"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.CreateTodo(services.CreateTodoInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// UpdateTodo applies a partial update to a todo. Owners and edit-permitted
// share recipients may update.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return
	}

	type UpdateTodoRequest struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		DueDate      *time.Time `json:"due_date"`
		ClearDueDate bool       `json:"clear_due_date"`
		Priority     *int       `json:"priority"`
		IsCompleted  *bool      `json:"is_completed"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.UpdateTodo(userID, todoID, services.UpdateTodoInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Priority:     req.Priority,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo deletes a todo. Only the owner may delete.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return
	}

	if err := h.todoService.DeleteTodo(userID, todoID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, authz.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
