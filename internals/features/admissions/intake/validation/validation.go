// file: internals/features/admissions/intake/validation/validation.go
//
// Scores a parsed application against required fields and class rules.
// Warnings are advisory: callers decide whether to block, and in practice
// submission always proceeds with the warnings attached to the record.
package validation

import (
	"fmt"
	"strings"

	classModel "qcm_backend/internals/features/admissions/classes/model"
	"qcm_backend/internals/features/admissions/intake/parser"
)

type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Valid    bool      `json:"valid"`
	Warnings []Warning `json:"warnings"`
}

func NewResult(warnings []Warning) Result {
	if warnings == nil {
		warnings = []Warning{}
	}
	return Result{Valid: len(warnings) == 0, Warnings: warnings}
}

// Validate checks required fields and, when rules are given, the
// class-specific admission rules. Pure function; the duplicate warning is
// appended separately by the intake service.
func Validate(p *parser.Parsed, rules *classModel.ValidationRules) []Warning {
	var warnings []Warning

	if strings.TrimSpace(p.StudentDetails.FullName) == "" {
		warnings = append(warnings, Warning{Field: "fullName", Message: "Full name is missing"})
	}
	if strings.TrimSpace(p.StudentDetails.Mobile) == "" {
		warnings = append(warnings, Warning{Field: "mobile", Message: "Mobile number is missing"})
	}
	if strings.TrimSpace(p.OtherDetails.Email) == "" {
		warnings = append(warnings, Warning{Field: "email", Message: "Email is missing"})
	}

	if rules == nil {
		return warnings
	}

	// Age range, inclusive on both ends.
	if ar := rules.AgeRange; ar != nil && p.OtherDetails.Age > 0 {
		age := p.OtherDetails.Age
		if ar.Min != nil && age < *ar.Min {
			warnings = append(warnings, Warning{
				Field:   "age",
				Message: fmt.Sprintf("Age %d is below the minimum of %d", age, *ar.Min),
			})
		}
		if ar.Max != nil && age > *ar.Max {
			warnings = append(warnings, Warning{
				Field:   "age",
				Message: fmt.Sprintf("Age %d is above the maximum of %d", age, *ar.Max),
			})
		}
	}

	// Allowed states use lowercase substring containment, not exact match.
	// "Telangana Road" passes for allowed state "Telangana".
	if state := strings.TrimSpace(p.CurrentResidence.State); state != "" && len(rules.AllowedStates) > 0 {
		lowState := strings.ToLower(state)
		allowed := false
		for _, s := range rules.AllowedStates {
			if strings.Contains(lowState, strings.ToLower(s)) {
				allowed = true
				break
			}
		}
		if !allowed {
			warnings = append(warnings, Warning{
				Field:   "state",
				Message: fmt.Sprintf("State %q is not in the allowed states for this class", state),
			})
		}
	}

	// Minimum qualification also uses lowercase substring containment.
	// Known edge: "Undergraduate" contains "graduate" and therefore passes a
	// "Graduate" requirement.
	if req := strings.TrimSpace(rules.MinimumQualification); req != "" {
		qual := strings.TrimSpace(p.OtherDetails.Qualification)
		if !strings.Contains(strings.ToLower(qual), strings.ToLower(req)) {
			warnings = append(warnings, Warning{
				Field:   "qualification",
				Message: fmt.Sprintf("Qualification %q does not meet the minimum of %q", qual, req),
			})
		}
	}

	return warnings
}
