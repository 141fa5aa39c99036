// file: internals/features/users/user/model/user_role_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRoleModel struct {
	UserRoleID     uuid.UUID  `json:"user_role_id" gorm:"column:user_role_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserRoleUserID uuid.UUID  `json:"user_role_user_id" gorm:"column:user_role_user_id;type:uuid;not null"`
	UserRoleRole   string     `json:"user_role_role" gorm:"column:user_role_role;type:varchar(20);not null" validate:"required,oneof=admin moderator user"`
	UserRoleAssignedAt *time.Time `json:"user_role_assigned_at,omitempty" gorm:"column:user_role_assigned_at;autoCreateTime"`
	UserRoleAssignedBy *uuid.UUID `json:"user_role_assigned_by,omitempty" gorm:"column:user_role_assigned_by;type:uuid"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

// ModeratorClassModel scopes a moderator to one class code.
type ModeratorClassModel struct {
	ModeratorClassID     uuid.UUID `json:"moderator_class_id" gorm:"column:moderator_class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ModeratorClassUserID uuid.UUID `json:"moderator_class_user_id" gorm:"column:moderator_class_user_id;type:uuid;not null"`
	ModeratorClassCode   string    `json:"moderator_class_code" gorm:"column:moderator_class_code;type:varchar(20);not null"`

	ModeratorClassCreatedAt time.Time `json:"moderator_class_created_at" gorm:"column:moderator_class_created_at;autoCreateTime"`
}

func (ModeratorClassModel) TableName() string { return "moderator_classes" }
