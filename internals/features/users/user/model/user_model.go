package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the users table
type UserModel struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserName     string    `json:"user_name" gorm:"column:user_name;type:varchar(50);not null" validate:"required,min=3,max=50"`
	UserEmail    string    `json:"user_email" gorm:"column:user_email;type:varchar(255);unique;not null" validate:"required,email"`
	UserPassword string    `json:"-" gorm:"column:user_password;not null"`
	UserIsActive bool      `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time  `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time  `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
	UserDeletedAt *time.Time `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at"`
}

func (UserModel) TableName() string {
	return "users"
}
