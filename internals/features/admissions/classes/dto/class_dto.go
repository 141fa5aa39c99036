// dto/class_dto.go
package dto

import (
	"time"

	"qcm_backend/internals/features/admissions/classes/model"
)

/* ========== REQUEST DTOs ========== */

type CreateClassRequest struct {
	ClassCode        string  `json:"class_code"        form:"class_code"        validate:"required,min=2,max=20"`
	ClassName        string  `json:"class_name"        form:"class_name"        validate:"required,min=2,max=120"`
	ClassDescription *string `json:"class_description" form:"class_description"`
	ClassTemplate    *string `json:"class_template"    form:"class_template"`

	ClassValidationRules *model.ValidationRules `json:"class_validation_rules" form:"class_validation_rules"`
	ClassIsActive        *bool                  `json:"class_is_active"        form:"class_is_active"`
}

type UpdateClassRequest struct {
	ClassName        *string `json:"class_name"        form:"class_name"        validate:"omitempty,min=2,max=120"`
	ClassDescription *string `json:"class_description" form:"class_description"`
	ClassTemplate    *string `json:"class_template"    form:"class_template"`

	ClassValidationRules *model.ValidationRules `json:"class_validation_rules" form:"class_validation_rules"`
	ClassIsActive        *bool                  `json:"class_is_active"        form:"class_is_active"`
}

/* ========== RESPONSE DTO ========== */

type ClassResponse struct {
	ClassCode        string  `json:"class_code"`
	ClassName        string  `json:"class_name"`
	ClassDescription *string `json:"class_description,omitempty"`
	ClassTemplate    *string `json:"class_template,omitempty"`

	ClassValidationRules model.ValidationRules `json:"class_validation_rules"`
	ClassIsActive        bool                  `json:"class_is_active"`

	ClassCreatedAt time.Time  `json:"class_created_at"`
	ClassUpdatedAt *time.Time `json:"class_updated_at,omitempty"`
}

type ListClassQuery struct {
	ActiveOnly *bool   `query:"active"`
	Search     *string `query:"search"`
	Limit      int     `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset     int     `query:"offset" validate:"omitempty,min=0"`
	Sort       *string `query:"sort"`
}

/* ========== HELPER: MODEL <-> DTO ========== */

func NewClassResponse(m *model.ClassModel) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ClassCode:            m.ClassCode,
		ClassName:            m.ClassName,
		ClassDescription:     m.ClassDescription,
		ClassTemplate:        m.ClassTemplate,
		ClassValidationRules: m.ClassValidationRules,
		ClassIsActive:        m.ClassIsActive,
		ClassCreatedAt:       m.ClassCreatedAt,
		ClassUpdatedAt:       m.ClassUpdatedAt,
	}
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	m := &model.ClassModel{
		ClassCode:        r.ClassCode,
		ClassName:        r.ClassName,
		ClassDescription: r.ClassDescription,
		ClassTemplate:    r.ClassTemplate,
		ClassIsActive:    true,
		ClassCreatedAt:   time.Now(),
	}
	if r.ClassValidationRules != nil {
		m.ClassValidationRules = *r.ClassValidationRules
	}
	if r.ClassIsActive != nil {
		m.ClassIsActive = *r.ClassIsActive
	}
	return m
}

func (r *UpdateClassRequest) ApplyToModel(m *model.ClassModel) {
	if r.ClassName != nil {
		m.ClassName = *r.ClassName
	}
	if r.ClassDescription != nil {
		m.ClassDescription = r.ClassDescription
	}
	if r.ClassTemplate != nil {
		m.ClassTemplate = r.ClassTemplate
	}
	if r.ClassValidationRules != nil {
		m.ClassValidationRules = *r.ClassValidationRules
	}
	if r.ClassIsActive != nil {
		m.ClassIsActive = *r.ClassIsActive
	}
	now := time.Now()
	m.ClassUpdatedAt = &now
}
