// File: /models/vehicle.go
package models

import (
	"time"
)

type Vehicle struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:191"`
	Name               string    `json:"name" gorm:"not null;size:255"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:50"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Groups []Group `json:"groups,omitempty" gorm:"foreignKey:VehicleID"`
}
