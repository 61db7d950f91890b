package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Fullname     string    `gorm:"type:varchar(255);not null" json:"fullname"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Todos  []Todo      `gorm:"foreignKey:OwnerID" json:"-"`
	Shares []TodoShare `gorm:"foreignKey:SharedWithUserID" json:"-"`
}
