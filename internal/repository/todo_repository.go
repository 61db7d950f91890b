package repository

import (
	"github.com/nandapratama/todo-share-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo by ID with optional preloading
func (r *GormTodoRepository) FindByID(id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *GormTodoRepository) filtered(filter TodoFilter) *gorm.DB {
	query := r.db.Model(&models.Todo{}).Where("todos.owner_id = ?", filter.OwnerID)

	if filter.IsCompleted != nil {
		query = query.Where("todos.is_completed = ?", *filter.IsCompleted)
	}
	if filter.Priority != nil {
		query = query.Where("todos.priority = ?", *filter.Priority)
	}

	return query
}

// CountByOwner counts the owner's todos matching the filter
func (r *GormTodoRepository) CountByOwner(filter TodoFilter) (int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListByOwner retrieves the owner's todos matching the filter
func (r *GormTodoRepository) ListByOwner(filter TodoFilter) ([]models.Todo, error) {
	var todos []models.Todo

	query := r.filtered(filter)
	if filter.OrderOldest {
		query = query.Order("todos.created_at ASC")
	} else {
		query = query.Order("todos.created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	if err := query.Find(&todos).Error; err != nil {
		return nil, err
	}

	return todos, nil
}

// Update persists changes to a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete hard deletes a todo along with its shares
func (r *GormTodoRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&models.TodoShare{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Todo{}, id).Error
	})
}
