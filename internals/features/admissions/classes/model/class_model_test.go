package model

import "testing"

func TestValidationRulesScan(t *testing.T) {
	var r ValidationRules
	raw := `{"age_range":{"min":25,"max":45},"allowed_states":["Telangana"],"minimum_qualification":"Graduate"}`
	if err := r.Scan([]byte(raw)); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if r.AgeRange == nil || r.AgeRange.Min == nil || *r.AgeRange.Min != 25 {
		t.Errorf("AgeRange.Min = %+v", r.AgeRange)
	}
	if r.AgeRange.Max == nil || *r.AgeRange.Max != 45 {
		t.Errorf("AgeRange.Max = %+v", r.AgeRange)
	}
	if len(r.AllowedStates) != 1 || r.AllowedStates[0] != "Telangana" {
		t.Errorf("AllowedStates = %v", r.AllowedStates)
	}
	if r.MinimumQualification != "Graduate" {
		t.Errorf("MinimumQualification = %q", r.MinimumQualification)
	}

	// empty rules stay empty
	var empty ValidationRules
	if err := empty.Scan([]byte(`{}`)); err != nil {
		t.Fatalf("scan empty: %v", err)
	}
	if empty.AgeRange != nil || empty.AllowedStates != nil || empty.MinimumQualification != "" {
		t.Errorf("empty rules = %+v", empty)
	}
}
