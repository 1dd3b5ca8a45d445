// File: /models/group.go
package models

import (
	"time"
)

// Group binds one user to one vehicle. Every expense record points at a group.
type Group struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_groups_user_vehicle"`
	VehicleID string    `json:"vehicle_id" gorm:"not null;size:191;uniqueIndex:uk_groups_user_vehicle;index"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `json:"user" gorm:"foreignKey:UserID"`
	Vehicle Vehicle `json:"vehicle" gorm:"foreignKey:VehicleID"`
}

// TableName avoids GROUPS, which is reserved in MySQL 8.
func (Group) TableName() string {
	return "vehicle_groups"
}
