// dto/intake_dto.go
package dto

import (
	"time"

	"qcm_backend/internals/features/admissions/intake/parser"
	"qcm_backend/internals/features/admissions/intake/service"
	"qcm_backend/internals/features/admissions/intake/validation"
)

/* ========== REQUEST DTOs ========== */

type ParseIntakeRequest struct {
	Text      string `json:"text" validate:"required,min=1"`
	ClassCode string `json:"class_code,omitempty"`
}

type ValidateIntakeRequest struct {
	ClassCode string         `json:"class_code" validate:"required,min=2,max=20"`
	Parsed    *parser.Parsed `json:"parsed" validate:"required"`
}

type DuplicateLookupRequest struct {
	FullName string `json:"full_name,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`
}

type SubmitItemRequest struct {
	// optional corrections made during review, replaces the parsed payload
	Parsed *parser.Parsed `json:"parsed,omitempty"`

	Remarks         *string `json:"remarks,omitempty"`
	CallResponse    *string `json:"call_response,omitempty"`
	StudentNature   *string `json:"student_nature,omitempty"`
	StudentCategory *string `json:"student_category,omitempty"`
	FollowUpBy      *string `json:"follow_up_by,omitempty"`
	Naqeeb          *string `json:"naqeeb,omitempty"`
	NaqeebResponse  *string `json:"naqeeb_response,omitempty"`
}

/* ========== RESPONSE DTOs ========== */

type IntakeSessionResponse struct {
	SessionID    string                      `json:"session_id"`
	ClassCode    string                      `json:"class_code,omitempty"`
	Items        []*parser.ParsedApplication `json:"items"`
	PendingCount int                         `json:"pending_count"`
	CreatedAt    time.Time                   `json:"created_at"`
}

func NewIntakeSessionResponse(s *service.IntakeSession) *IntakeSessionResponse {
	if s == nil {
		return nil
	}
	return &IntakeSessionResponse{
		SessionID:    s.SessionID,
		ClassCode:    s.ClassCode,
		Items:        s.Items,
		PendingCount: s.PendingCount(),
		CreatedAt:    s.CreatedAt,
	}
}

type ValidateIntakeResponse struct {
	Result             validation.Result `json:"result"`
	DuplicateCount     int64             `json:"duplicate_count"`
	DuplicateCheckNote string            `json:"duplicate_check_note,omitempty"`
}

type SubmitItemResponse struct {
	ApplicationID string `json:"application_id"`
	SessionID     string `json:"session_id"`
	TempID        string `json:"temp_id"`
	Status        string `json:"status"`
	// next pending item in the session, empty when review is done
	NextTempID   string `json:"next_temp_id,omitempty"`
	PendingCount int    `json:"pending_count"`
}
