package repository

import (
	"github.com/nandapratama/todo-share-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (case-insensitive; emails are stored
	// lower-case)
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByIdentifier finds a user by email or username
	FindByIdentifier(identifier string) (*models.User, error)
}

// TodoFilter holds filtering and paging options for listing an owner's todos
type TodoFilter struct {
	OwnerID     uint64
	IsCompleted *bool
	Priority    *int
	OrderOldest bool
	Offset      int
	Limit       int
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Todo, error)

	// CountByOwner counts the owner's todos matching the filter
	CountByOwner(filter TodoFilter) (int64, error)

	// ListByOwner retrieves the owner's todos matching the filter
	ListByOwner(filter TodoFilter) ([]models.Todo, error)

	// Update persists changes to a todo
	Update(todo *models.Todo) error

	// Delete hard deletes a todo along with its shares
	Delete(id uint64) error
}

// ShareRepository defines the interface for todo share data access
type ShareRepository interface {
	// Create creates a new share. Returns ErrDuplicateShare when a share for
	// the same (todo, recipient) pair already exists.
	Create(share *models.TodoShare) error

	// FindByID finds a share by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TodoShare, error)

	// FindByTodoAndUser finds the share for a (todo, recipient) pair
	FindByTodoAndUser(todoID, userID uint64) (*models.TodoShare, error)

	// ListByRecipient lists shares where the user is the recipient, with the
	// todo and its owner loaded
	ListByRecipient(userID uint64) ([]models.TodoShare, error)

	// ListTodosSharedByOwner lists the owner's todos that have at least one
	// share, with all recipients loaded
	ListTodosSharedByOwner(ownerID uint64) ([]models.Todo, error)

	// UpdatePermission sets can_edit on the share for a (todo, recipient)
	// pair. Returns gorm.ErrRecordNotFound when no such share exists.
	UpdatePermission(todoID, userID uint64, canEdit bool) error

	// Delete hard deletes a share by ID
	Delete(id uint64) error
}
