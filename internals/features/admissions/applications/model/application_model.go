// file: internals/features/admissions/applications/model/application_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Application statuses. Transitions are unconstrained: any status may be
// set from any other by an admin or moderator.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplicationModel represents the applications table. The primary key is a
// human-readable id derived from the class code plus a sequence number,
// e.g. QTR-B04-012.
type ApplicationModel struct {
	ApplicationID        string `json:"application_id" gorm:"column:application_id;type:varchar(40);primaryKey"`
	ApplicationClassCode string `json:"application_class_code" gorm:"column:application_class_code;type:varchar(20);not null;index"`
	ApplicationStatus    string `json:"application_status" gorm:"column:application_status;type:varchar(20);not null;default:'pending'"`

	ApplicationStudentDetails   StudentDetails   `json:"application_student_details" gorm:"column:application_student_details;type:jsonb;not null;default:'{}'"`
	ApplicationOtherDetails     OtherDetails     `json:"application_other_details" gorm:"column:application_other_details;type:jsonb;not null;default:'{}'"`
	ApplicationHometownDetails  HometownDetails  `json:"application_hometown_details" gorm:"column:application_hometown_details;type:jsonb;not null;default:'{}'"`
	ApplicationCurrentResidence CurrentResidence `json:"application_current_residence" gorm:"column:application_current_residence;type:jsonb;not null;default:'{}'"`
	ApplicationReferredBy       ReferredBy       `json:"application_referred_by" gorm:"column:application_referred_by;type:jsonb;not null;default:'{}'"`

	ApplicationRemarks         *string `json:"application_remarks,omitempty" gorm:"column:application_remarks;type:text"`
	ApplicationCallResponse    *string `json:"application_call_response,omitempty" gorm:"column:application_call_response;type:text"`
	ApplicationStudentNature   *string `json:"application_student_nature,omitempty" gorm:"column:application_student_nature;type:text"`
	ApplicationStudentCategory *string `json:"application_student_category,omitempty" gorm:"column:application_student_category;type:text"`
	ApplicationFollowUpBy      *string `json:"application_follow_up_by,omitempty" gorm:"column:application_follow_up_by;type:text"`
	ApplicationNaqeeb          *string `json:"application_naqeeb,omitempty" gorm:"column:application_naqeeb;type:text"`
	ApplicationNaqeebResponse  *string `json:"application_naqeeb_response,omitempty" gorm:"column:application_naqeeb_response;type:text"`

	// Advisory warnings captured at submission time; never block anything.
	ApplicationValidationWarnings datatypes.JSON `json:"application_validation_warnings" gorm:"column:application_validation_warnings;type:jsonb;not null;default:'[]'"`

	ApplicationCreatedAt time.Time `json:"application_created_at" gorm:"column:application_created_at;not null;autoCreateTime"`
	ApplicationUpdatedAt time.Time `json:"application_updated_at" gorm:"column:application_updated_at;not null;autoUpdateTime"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}
