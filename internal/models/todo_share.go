package models

import (
	"time"
)

// TodoShare grants a non-owner user access to a todo. The composite unique
// index guarantees at most one share per (todo, recipient) pair.
type TodoShare struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	TodoID           uint64    `gorm:"not null;uniqueIndex:idx_todo_shared_user" json:"todo_id"`
	SharedWithUserID uint64    `gorm:"not null;uniqueIndex:idx_todo_shared_user" json:"shared_with_user_id"`
	CanEdit          bool      `gorm:"not null;default:false" json:"can_edit"`
	CreatedAt        time.Time `json:"created_at"`

	// Relations
	Todo           Todo `gorm:"foreignKey:TodoID" json:"todo,omitempty"`
	SharedWithUser User `gorm:"foreignKey:SharedWithUserID" json:"shared_with_user,omitempty"`
}
