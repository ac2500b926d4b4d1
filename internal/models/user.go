// Package models contains data models for the CRM auth service.
package models

import "time"

// User represents an account in the system.
type User struct {
	ID                int64      `json:"id" gorm:"primaryKey"`
	Username          string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash      string     `json:"-" gorm:"size:255;not null"`
	UserTypeID        *int64     `json:"user_type_id" gorm:"column:user_type_id"`
	ProPicture        *string    `json:"pro_picture,omitempty" gorm:"size:200"`
	PasswordUpdatedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	UserType *UserType `json:"user_type,omitempty" gorm:"foreignKey:UserTypeID"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
