package model

import "time"

// Roles assignable to users.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account on the admin surface.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string     `json:"-" gorm:"size:64;not null"` // Never expose in JSON
	Email        string     `json:"email" gorm:"size:255"`
	FullName     string     `json:"full_name" gorm:"size:255"`
	Role         string     `json:"role" gorm:"size:20;default:'user'"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}
