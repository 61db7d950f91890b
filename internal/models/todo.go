package models

import (
	"time"
)

type Todo struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	OwnerID     uint64     `gorm:"not null" json:"owner_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `gorm:"not null;default:0" json:"priority"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Owner  User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Shares []TodoShare `gorm:"foreignKey:TodoID" json:"shares,omitempty"`
}
