// Package models contains data models for the CRM auth service.
package models

import "time"

// UserType represents a permission group (Admin, User, etc.).
type UserType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:30;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for the UserType model.
func (UserType) TableName() string {
	return "user_types"
}
