package dto

import (
	"time"

	"github.com/nandapratama/todo-share-api/internal/models"
)

// ShareDTO represents a todo share in API responses
type ShareDTO struct {
	ID               uint64    `json:"id"`
	TodoID           uint64    `json:"todo_id"`
	SharedWithUserID uint64    `json:"shared_with_user_id"`
	CanEdit          bool      `json:"can_edit"`
	CreatedAt        time.Time `json:"created_at"`
	Todo             *TodoDTO  `json:"todo,omitempty"`
	SharedWithUser   *UserDTO  `json:"shared_with_user,omitempty"`
}

// ToShareDTO converts a TodoShare model to ShareDTO
func ToShareDTO(share models.TodoShare) ShareDTO {
	dto := ShareDTO{
		ID:               share.ID,
		TodoID:           share.TodoID,
		SharedWithUserID: share.SharedWithUserID,
		CanEdit:          share.CanEdit,
		CreatedAt:        share.CreatedAt,
	}

	// Include todo if preloaded
	if share.Todo.ID != 0 {
		todo := ToTodoDTO(share.Todo)
		dto.Todo = &todo
	}

	// Include recipient if preloaded
	if share.SharedWithUser.ID != 0 {
		user := ToUserDTO(share.SharedWithUser)
		dto.SharedWithUser = &user
	}

	return dto
}

// ToShareDTOs converts a slice of shares to ShareDTOs
func ToShareDTOs(shares []models.TodoShare) []ShareDTO {
	items := make([]ShareDTO, len(shares))
	for i, share := range shares {
		items[i] = ToShareDTO(share)
	}
	return items
}

// ToSharedTodoDTOs converts todos with their shares loaded, for the
// "todos I've shared" listing
func ToSharedTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}
