// File: /models/user.go
package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Role      Role      `json:"role" gorm:"not null;size:20;default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Groups []Group `json:"groups,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
