// file: internals/features/admissions/classes/model/class_model.go
package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/bytedance/sonic"
)

// AgeRange bounds are inclusive on both ends.
type AgeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// ValidationRules is stored as jsonb in class_validation_rules.
type ValidationRules struct {
	AgeRange             *AgeRange `json:"age_range,omitempty"`
	AllowedStates        []string  `json:"allowed_states,omitempty"`
	MinimumQualification string    `json:"minimum_qualification,omitempty"`
}

func (r ValidationRules) Value() (driver.Value, error) {
	return sonic.Marshal(r)
}

func (r *ValidationRules) Scan(src any) error {
	if src == nil {
		*r = ValidationRules{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return sonic.Unmarshal(v, r)
	case string:
		return sonic.Unmarshal([]byte(v), r)
	default:
		return errors.New("unsupported type for ValidationRules")
	}
}

// ClassModel represents the classes table
type ClassModel struct {
	ClassCode        string  `json:"class_code" gorm:"column:class_code;type:varchar(20);primaryKey"`
	ClassName        string  `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`
	ClassDescription *string `json:"class_description,omitempty" gorm:"column:class_description;type:text"`

	// Text blueprint applicants paste, parse and fill in.
	ClassTemplate *string `json:"class_template,omitempty" gorm:"column:class_template;type:text"`

	ClassValidationRules ValidationRules `json:"class_validation_rules" gorm:"column:class_validation_rules;type:jsonb;not null;default:'{}'"`

	ClassIsActive bool `json:"class_is_active" gorm:"column:class_is_active;not null;default:true"`

	ClassCreatedAt time.Time  `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt *time.Time `json:"class_updated_at,omitempty" gorm:"column:class_updated_at"`
	ClassDeletedAt *time.Time `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}
