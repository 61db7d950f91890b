package repository

import (
	"errors"

	"github.com/nandapratama/todo-share-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateShare is returned when a (todo, recipient) pair is already
// shared. The composite unique index is the source of truth, so concurrent
// share requests for the same pair resolve to exactly one winner.
var ErrDuplicateShare = errors.New("share repository: todo already shared with this user")

// GormShareRepository is a GORM implementation of ShareRepository
type GormShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &GormShareRepository{db: db}
}

// Create creates a new share
func (r *GormShareRepository) Create(share *models.TodoShare) error {
	if err := r.db.Create(share).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateShare
		}
		return err
	}
	return nil
}

// FindByID finds a share by ID with optional preloading
func (r *GormShareRepository) FindByID(id uint64, preload ...string) (*models.TodoShare, error) {
	var share models.TodoShare
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&share, id).Error; err != nil {
		return nil, err
	}

	return &share, nil
}

// FindByTodoAndUser finds the share for a (todo, recipient) pair
func (r *GormShareRepository) FindByTodoAndUser(todoID, userID uint64) (*models.TodoShare, error) {
	var share models.TodoShare
	if err := r.db.Where("todo_id = ? AND shared_with_user_id = ?", todoID, userID).
		First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// ListByRecipient lists shares where the user is the recipient
func (r *GormShareRepository) ListByRecipient(userID uint64) ([]models.TodoShare, error) {
	var shares []models.TodoShare
	if err := r.db.Preload("Todo").Preload("Todo.Owner").
		Where("shared_with_user_id = ?", userID).
		Order("created_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// ListTodosSharedByOwner lists the owner's todos that have at least one share
func (r *GormShareRepository) ListTodosSharedByOwner(ownerID uint64) ([]models.Todo, error) {
	var todos []models.Todo

	shareSubQuery := r.db.Model(&models.TodoShare{}).
		Select("1").
		Where("todo_shares.todo_id = todos.id")

	if err := r.db.Model(&models.Todo{}).
		Preload("Shares").
		Preload("Shares.SharedWithUser").
		Where("todos.owner_id = ?", ownerID).
		Where("EXISTS (?)", shareSubQuery).
		Order("todos.created_at DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}

	return todos, nil
}

// UpdatePermission sets can_edit on the share for a (todo, recipient) pair.
// Existence is checked with a lookup rather than RowsAffected: MySQL reports
// rows changed, not rows matched, so a no-op update on an existing share
// would otherwise look like a missing one.
func (r *GormShareRepository) UpdatePermission(todoID, userID uint64, canEdit bool) error {
	var share models.TodoShare
	if err := r.db.Where("todo_id = ? AND shared_with_user_id = ?", todoID, userID).
		First(&share).Error; err != nil {
		return err
	}
	return r.db.Model(&share).Update("can_edit", canEdit).Error
}

// Delete hard deletes a share by ID
func (r *GormShareRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TodoShare{}, id).Error
}
