package models

import (
	"time"
)

// User is an instructor or student. Credentials live with the identity provider that issues tokens.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"default:''"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR
	CreatedAt time.Time `json:"created_at"`
}
