// dto/application_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"

	"qcm_backend/internals/features/admissions/applications/model"
)

/* ========== REQUEST DTOs ========== */

type CreateApplicationRequest struct {
	ApplicationClassCode string `json:"application_class_code" validate:"required,min=2,max=20"`

	ApplicationStudentDetails   model.StudentDetails   `json:"application_student_details"`
	ApplicationOtherDetails     model.OtherDetails     `json:"application_other_details"`
	ApplicationHometownDetails  model.HometownDetails  `json:"application_hometown_details"`
	ApplicationCurrentResidence model.CurrentResidence `json:"application_current_residence"`
	ApplicationReferredBy       model.ReferredBy       `json:"application_referred_by"`

	ApplicationRemarks         *string `json:"application_remarks"`
	ApplicationCallResponse    *string `json:"application_call_response"`
	ApplicationStudentNature   *string `json:"application_student_nature"`
	ApplicationStudentCategory *string `json:"application_student_category"`
	ApplicationFollowUpBy      *string `json:"application_follow_up_by"`
	ApplicationNaqeeb          *string `json:"application_naqeeb"`
	ApplicationNaqeebResponse  *string `json:"application_naqeeb_response"`

	ApplicationValidationWarnings datatypes.JSON `json:"application_validation_warnings"`
}

type UpdateApplicationRequest struct {
	ApplicationStudentDetails   *model.StudentDetails   `json:"application_student_details"`
	ApplicationOtherDetails     *model.OtherDetails     `json:"application_other_details"`
	ApplicationHometownDetails  *model.HometownDetails  `json:"application_hometown_details"`
	ApplicationCurrentResidence *model.CurrentResidence `json:"application_current_residence"`
	ApplicationReferredBy       *model.ReferredBy       `json:"application_referred_by"`

	ApplicationRemarks         *string `json:"application_remarks"`
	ApplicationCallResponse    *string `json:"application_call_response"`
	ApplicationStudentNature   *string `json:"application_student_nature"`
	ApplicationStudentCategory *string `json:"application_student_category"`
	ApplicationFollowUpBy      *string `json:"application_follow_up_by"`
	ApplicationNaqeeb          *string `json:"application_naqeeb"`
	ApplicationNaqeebResponse  *string `json:"application_naqeeb_response"`
}

type UpdateStatusRequest struct {
	ApplicationStatus string `json:"application_status" validate:"required,oneof=pending approved rejected"`
}

type ListApplicationQuery struct {
	ClassCode *string `query:"class_code"`
	Status    *string `query:"status"`
	Search    *string `query:"search"`
	Limit     int     `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset    int     `query:"offset" validate:"omitempty,min=0"`
	Sort      *string `query:"sort"`
}

/* ========== RESPONSE DTO ========== */

type ApplicationResponse struct {
	ApplicationID        string `json:"application_id"`
	ApplicationClassCode string `json:"application_class_code"`
	ApplicationStatus    string `json:"application_status"`

	ApplicationStudentDetails   model.StudentDetails   `json:"application_student_details"`
	ApplicationOtherDetails     model.OtherDetails     `json:"application_other_details"`
	ApplicationHometownDetails  model.HometownDetails  `json:"application_hometown_details"`
	ApplicationCurrentResidence model.CurrentResidence `json:"application_current_residence"`
	ApplicationReferredBy       model.ReferredBy       `json:"application_referred_by"`

	ApplicationRemarks         *string `json:"application_remarks,omitempty"`
	ApplicationCallResponse    *string `json:"application_call_response,omitempty"`
	ApplicationStudentNature   *string `json:"application_student_nature,omitempty"`
	ApplicationStudentCategory *string `json:"application_student_category,omitempty"`
	ApplicationFollowUpBy      *string `json:"application_follow_up_by,omitempty"`
	ApplicationNaqeeb          *string `json:"application_naqeeb,omitempty"`
	ApplicationNaqeebResponse  *string `json:"application_naqeeb_response,omitempty"`

	ApplicationValidationWarnings datatypes.JSON `json:"application_validation_warnings"`

	ApplicationCreatedAt time.Time `json:"application_created_at"`
	ApplicationUpdatedAt time.Time `json:"application_updated_at"`
}

/* ========== HELPER: MODEL <-> DTO ========== */

func NewApplicationResponse(m *model.ApplicationModel) *ApplicationResponse {
	if m == nil {
		return nil
	}
	return &ApplicationResponse{
		ApplicationID:                 m.ApplicationID,
		ApplicationClassCode:          m.ApplicationClassCode,
		ApplicationStatus:             m.ApplicationStatus,
		ApplicationStudentDetails:     m.ApplicationStudentDetails,
		ApplicationOtherDetails:       m.ApplicationOtherDetails,
		ApplicationHometownDetails:    m.ApplicationHometownDetails,
		ApplicationCurrentResidence:   m.ApplicationCurrentResidence,
		ApplicationReferredBy:         m.ApplicationReferredBy,
		ApplicationRemarks:            m.ApplicationRemarks,
		ApplicationCallResponse:       m.ApplicationCallResponse,
		ApplicationStudentNature:      m.ApplicationStudentNature,
		ApplicationStudentCategory:    m.ApplicationStudentCategory,
		ApplicationFollowUpBy:         m.ApplicationFollowUpBy,
		ApplicationNaqeeb:             m.ApplicationNaqeeb,
		ApplicationNaqeebResponse:     m.ApplicationNaqeebResponse,
		ApplicationValidationWarnings: m.ApplicationValidationWarnings,
		ApplicationCreatedAt:          m.ApplicationCreatedAt,
		ApplicationUpdatedAt:          m.ApplicationUpdatedAt,
	}
}

func (r *CreateApplicationRequest) ToModel() *model.ApplicationModel {
	m := &model.ApplicationModel{
		ApplicationClassCode:        r.ApplicationClassCode,
		ApplicationStatus:           model.StatusPending,
		ApplicationStudentDetails:   r.ApplicationStudentDetails,
		ApplicationOtherDetails:     r.ApplicationOtherDetails,
		ApplicationHometownDetails:  r.ApplicationHometownDetails,
		ApplicationCurrentResidence: r.ApplicationCurrentResidence,
		ApplicationReferredBy:       r.ApplicationReferredBy,
		ApplicationRemarks:          r.ApplicationRemarks,
		ApplicationCallResponse:     r.ApplicationCallResponse,
		ApplicationStudentNature:    r.ApplicationStudentNature,
		ApplicationStudentCategory:  r.ApplicationStudentCategory,
		ApplicationFollowUpBy:       r.ApplicationFollowUpBy,
		ApplicationNaqeeb:           r.ApplicationNaqeeb,
		ApplicationNaqeebResponse:   r.ApplicationNaqeebResponse,
	}
	if len(r.ApplicationValidationWarnings) > 0 {
		m.ApplicationValidationWarnings = r.ApplicationValidationWarnings
	} else {
		m.ApplicationValidationWarnings = datatypes.JSON([]byte("[]"))
	}
	return m
}

func (r *UpdateApplicationRequest) ApplyToModel(m *model.ApplicationModel) {
	if r.ApplicationStudentDetails != nil {
		m.ApplicationStudentDetails = *r.ApplicationStudentDetails
	}
	if r.ApplicationOtherDetails != nil {
		m.ApplicationOtherDetails = *r.ApplicationOtherDetails
	}
	if r.ApplicationHometownDetails != nil {
		m.ApplicationHometownDetails = *r.ApplicationHometownDetails
	}
	if r.ApplicationCurrentResidence != nil {
		m.ApplicationCurrentResidence = *r.ApplicationCurrentResidence
	}
	if r.ApplicationReferredBy != nil {
		m.ApplicationReferredBy = *r.ApplicationReferredBy
	}
	if r.ApplicationRemarks != nil {
		m.ApplicationRemarks = r.ApplicationRemarks
	}
	if r.ApplicationCallResponse != nil {
		m.ApplicationCallResponse = r.ApplicationCallResponse
	}
	if r.ApplicationStudentNature != nil {
		m.ApplicationStudentNature = r.ApplicationStudentNature
	}
	if r.ApplicationStudentCategory != nil {
		m.ApplicationStudentCategory = r.ApplicationStudentCategory
	}
	if r.ApplicationFollowUpBy != nil {
		m.ApplicationFollowUpBy = r.ApplicationFollowUpBy
	}
	if r.ApplicationNaqeeb != nil {
		m.ApplicationNaqeeb = r.ApplicationNaqeeb
	}
	if r.ApplicationNaqeebResponse != nil {
		m.ApplicationNaqeebResponse = r.ApplicationNaqeebResponse
	}
}
