package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/models"
	"github.com/nandapratama/todo-share-api/internal/repository"
	"github.com/nandapratama/todo-share-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
)

// TodoService handles todo business logic.
type TodoService struct {
	todoRepo  repository.TodoRepository
	evaluator *authz.Evaluator
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository, evaluator *authz.Evaluator) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		evaluator: evaluator,
	}
}

// CreateTodoInput represents input for creating a todo.
type CreateTodoInput struct {
	OwnerID     uint64
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
}

// CreateTodo creates a new todo owned by the actor.
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	todo := &models.Todo{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// GetTodo returns a todo with its owner and shares, provided the actor may
// view it.
func (s *TodoService) GetTodo(actorID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID, "Owner", "Shares", "Shares.SharedWithUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.evaluator.CanView(actorID, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// ListTodosInput represents filters for listing an owner's todos.
type ListTodosInput struct {
	OwnerID     uint64
	IsCompleted *bool
	Priority    *int
	OrderOldest bool
}

// ListTodos returns the actor's own todos with filtering and pagination.
// A page beyond the end of the result set is clamped to the last valid page.
func (s *TodoService) ListTodos(input ListTodosInput, params utils.PaginationParams) ([]models.Todo, int64, utils.PaginationParams, error) {
	filter := repository.TodoFilter{
		OwnerID:     input.OwnerID,
		IsCompleted: input.IsCompleted,
		Priority:    input.Priority,
		OrderOldest: input.OrderOldest,
	}

	total, err := s.todoRepo.CountByOwner(filter)
	if err != nil {
		return nil, 0, params, fmt.Errorf("failed to count todos: %w", err)
	}

	params = params.Clamp(total)
	filter.Offset = params.Offset
	filter.Limit = params.Limit

	todos, err := s.todoRepo.ListByOwner(filter)
	if err != nil {
		return nil, 0, params, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, total, params, nil
}

// UpdateTodoInput represents a partial update. Each field is applied only
// when present; ClearDueDate removes the due date explicitly.
type UpdateTodoInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *int
	IsCompleted  *bool
}

// UpdateTodo applies a partial update if the actor may edit the todo.
func (s *TodoService) UpdateTodo(actorID, todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.evaluator.CanEdit(actorID, todo); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.ClearDueDate {
		todo.DueDate = nil
	} else if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.IsCompleted != nil {
		todo.IsCompleted = *input.IsCompleted
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "Owner")
}

// DeleteTodo deletes a todo and its shares. Only the owner may delete;
// shares never grant delete.
func (s *TodoService) DeleteTodo(actorID, todoID uint64) error {
	todo, err := s.todoRepo.FindByID(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.evaluator.CanDelete(actorID, todo); err != nil {
		return err
	}

	if err := s.todoRepo.Delete(todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}
