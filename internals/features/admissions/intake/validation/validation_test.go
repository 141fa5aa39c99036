package validation

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	classModel "qcm_backend/internals/features/admissions/classes/model"
	"qcm_backend/internals/features/admissions/intake/parser"
)

func intPtr(v int) *int { return &v }

func completeParsed() *parser.Parsed {
	p := &parser.Parsed{}
	p.StudentDetails.FullName = "Ali Khan"
	p.StudentDetails.Mobile = "55123456"
	p.OtherDetails.Email = "ali@example.com"
	return p
}

func fieldSet(warnings []Warning) map[string]bool {
	out := map[string]bool{}
	for _, w := range warnings {
		out[w.Field] = true
	}
	return out
}

func TestValidateRequiredFields(t *testing.T) {
	p := &parser.Parsed{}
	fields := fieldSet(Validate(p, nil))

	for _, f := range []string{"fullName", "mobile", "email"} {
		if !fields[f] {
			t.Errorf("missing warning for required field %q", f)
		}
	}

	if got := Validate(completeParsed(), nil); len(got) != 0 {
		t.Errorf("complete application should have no warnings, got %v", got)
	}
}

func TestValidateAgeRangeInclusive(t *testing.T) {
	rules := &classModel.ValidationRules{
		AgeRange: &classModel.AgeRange{Min: intPtr(25), Max: intPtr(45)},
	}

	cases := []struct {
		age  int
		warn bool
	}{
		{24, true},
		{25, false},
		{45, false},
		{46, true},
		{0, false}, // unknown age is not judged
	}
	for _, c := range cases {
		p := completeParsed()
		p.OtherDetails.Age = c.age
		got := fieldSet(Validate(p, rules))["age"]
		if got != c.warn {
			t.Errorf("age=%d: warned=%v, want %v", c.age, got, c.warn)
		}
	}
}

func TestValidateAllowedStatesContainment(t *testing.T) {
	rules := &classModel.ValidationRules{
		AllowedStates: []string{"Telangana", "Andhra Pradesh"},
	}

	cases := []struct {
		state string
		warn  bool
	}{
		{"Telangana", false},
		{"telangana", false},
		{"Telangana Road", false}, // substring containment passes
		{"Kerala", true},
		{"", false}, // blank state is not judged
	}
	for _, c := range cases {
		p := completeParsed()
		p.CurrentResidence.State = c.state
		got := fieldSet(Validate(p, rules))["state"]
		if got != c.warn {
			t.Errorf("state=%q: warned=%v, want %v", c.state, got, c.warn)
		}
	}
}

func TestValidateMinimumQualificationContainment(t *testing.T) {
	rules := &classModel.ValidationRules{MinimumQualification: "Graduate"}

	cases := []struct {
		qual string
		warn bool
	}{
		{"Graduate", false},
		{"Post Graduate", false},
		{"Undergraduate", false}, // contains "graduate", known edge
		{"Intermediate", true},
		{"", true},
	}
	for _, c := range cases {
		p := completeParsed()
		p.OtherDetails.Qualification = c.qual
		got := fieldSet(Validate(p, rules))["qualification"]
		if got != c.warn {
			t.Errorf("qualification=%q: warned=%v, want %v", c.qual, got, c.warn)
		}
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult(nil)
	if !r.Valid || r.Warnings == nil || len(r.Warnings) != 0 {
		t.Errorf("NewResult(nil) = %+v, want valid with empty slice", r)
	}

	r = NewResult([]Warning{{Field: "age", Message: "too young"}})
	if r.Valid || len(r.Warnings) != 1 {
		t.Errorf("NewResult with warnings = %+v", r)
	}
}

// classTemplate mirrors the admission form stored on a class, with the
// year of birth left as a placeholder so the candidate's age stays inside
// the rule bounds regardless of the current year.
const classTemplate = `*QURAN CLASS ADMISSION (QTR-B04)*
===============================
STUDENT DETAILS
Full Name: ali khan
Mobile No +974: 55123456
Whatsapp Number: 55123456

BACK HOME DETAILS
Area: Mehdipatnam
Town / City: Hyderabad
District: Hyderabad
State: Telangana

CURRENT RESIDENCE
Area: Al Sadd
City: Doha
Zone: 38
State: Doha

OTHER DETAILS
Email ID: ali@example.com
Year of Birth: %d
Qualification: Post Graduate
Occupation: Engineer

REFERRED BY
Name: omar farooq
Mobile +974: 66445533
Student ID: QTR-B03-012
Batch: B03`

func TestTemplateRoundTrip(t *testing.T) {
	rules := &classModel.ValidationRules{
		AgeRange:             &classModel.AgeRange{Min: intPtr(18), Max: intPtr(60)},
		MinimumQualification: "Graduate",
	}

	// a filled-in template must survive parse and validate with no warnings
	text := fmt.Sprintf(classTemplate, time.Now().Year()-30)
	p, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.StudentDetails.FullName != "Ali Khan" {
		t.Errorf("fullName = %q, want Ali Khan", p.StudentDetails.FullName)
	}
	if p.StudentDetails.Mobile != "55123456" {
		t.Errorf("mobile = %q, want 55123456", p.StudentDetails.Mobile)
	}
	if p.OtherDetails.Email != "ali@example.com" {
		t.Errorf("email = %q, want ali@example.com", p.OtherDetails.Email)
	}
	if got := Validate(p, rules); len(got) != 0 {
		t.Errorf("filled template should validate clean, got %v", got)
	}

	// the blank template itself parses without error; the empty fields
	// come back as advisory missing-field warnings, nothing more
	blank, err := parser.Parse(regexp.MustCompile(`: .*`).ReplaceAllString(classTemplate, ":"))
	if err != nil {
		t.Fatalf("Parse blank template: %v", err)
	}
	fields := fieldSet(Validate(blank, rules))
	for _, f := range []string{"fullName", "mobile", "email"} {
		if !fields[f] {
			t.Errorf("blank template should warn about %q", f)
		}
	}
}
