package dto

import (
	"time"

	"github.com/nandapratama/todo-share-api/internal/models"
	"github.com/nandapratama/todo-share-api/internal/utils"
)

// UserDTO represents a user's public fields in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64     `json:"id"`
	OwnerID     uint64     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       *UserDTO   `json:"owner,omitempty"`
	Shares      []ShareDTO `json:"shares,omitempty"`
}

// TodoListResponse represents a paginated list of todos
type TodoListResponse struct {
	Todos      []TodoDTO                `json:"todos"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
		Email:    user.Email,
	}
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	dto := TodoDTO{
		ID:          todo.ID,
		OwnerID:     todo.OwnerID,
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}

	// Include owner if preloaded
	if todo.Owner.ID != 0 {
		owner := ToUserDTO(todo.Owner)
		dto.Owner = &owner
	}

	// Include shares if preloaded
	if len(todo.Shares) > 0 {
		dto.Shares = make([]ShareDTO, len(todo.Shares))
		for i, share := range todo.Shares {
			dto.Shares[i] = ToShareDTO(share)
		}
	}

	return dto
}

// ToTodoListResponse converts a slice of todos to TodoListResponse
func ToTodoListResponse(todos []models.Todo, params utils.PaginationParams, total int64) TodoListResponse {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}

	return TodoListResponse{
		Todos: items,
		Pagination: utils.PaginationResponse{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: utils.TotalPages(total, params.Limit),
		},
	}
}
