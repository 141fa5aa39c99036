package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const sampleApplication = `
*QURAN CLASS ADMISSION (QTR-B04)*
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
Area: Al Wakrah
City: Doha
Zone: 56
State: Al Wakrah

OTHER DETAILS
Email ID: ali.khan@example.com
Year of Birth: 1998
Qualification: Post Graduate
Occupation: Engineer

REFERRED BY
Name: omar farooq
Mobile +974: 66445533
Student ID: QTR-B02-014
Batch: 2023
`

func TestParseSampleApplication(t *testing.T) {
	p, err := Parse(sampleApplication)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if p.ClassCode != "QTR-B04" {
		t.Errorf("ClassCode = %q, want QTR-B04", p.ClassCode)
	}
	if p.StudentDetails.FullName != "Ali Khan" {
		t.Errorf("FullName = %q, want Ali Khan", p.StudentDetails.FullName)
	}
	if p.StudentDetails.Mobile != "55123456" {
		t.Errorf("Mobile = %q, want 55123456", p.StudentDetails.Mobile)
	}
	if p.StudentDetails.Whatsapp != "55123456" {
		t.Errorf("Whatsapp = %q, want 55123456", p.StudentDetails.Whatsapp)
	}

	if p.HometownDetails.Area != "Mehdipatnam" {
		t.Errorf("Hometown.Area = %q", p.HometownDetails.Area)
	}
	if p.HometownDetails.City != "Hyderabad" {
		t.Errorf("Hometown.City = %q", p.HometownDetails.City)
	}
	if p.HometownDetails.District != "Hyderabad" {
		t.Errorf("Hometown.District = %q", p.HometownDetails.District)
	}
	if p.HometownDetails.State != "Telangana" {
		t.Errorf("Hometown.State = %q", p.HometownDetails.State)
	}

	if p.CurrentResidence.Area != "Al Wakrah" {
		t.Errorf("Residence.Area = %q", p.CurrentResidence.Area)
	}
	if p.CurrentResidence.City != "Doha" {
		t.Errorf("Residence.City = %q", p.CurrentResidence.City)
	}
	if p.CurrentResidence.State != "Al Wakrah" {
		t.Errorf("Residence.State = %q", p.CurrentResidence.State)
	}
	if got := p.CurrentResidence.Extra["zone"]; got != "56" {
		t.Errorf("Residence zone = %q, want 56", got)
	}

	if p.OtherDetails.Email != "ali.khan@example.com" {
		t.Errorf("Email = %q", p.OtherDetails.Email)
	}
	wantAge := time.Now().Year() - 1998
	if p.OtherDetails.Age != wantAge {
		t.Errorf("Age = %d, want %d", p.OtherDetails.Age, wantAge)
	}
	if p.OtherDetails.Qualification != "Post Graduate" {
		t.Errorf("Qualification = %q", p.OtherDetails.Qualification)
	}
	if p.OtherDetails.Profession != "Engineer" {
		t.Errorf("Profession = %q", p.OtherDetails.Profession)
	}

	if p.ReferredBy.FullName != "Omar Farooq" {
		t.Errorf("ReferredBy.FullName = %q", p.ReferredBy.FullName)
	}
	if p.ReferredBy.Mobile != "66445533" {
		t.Errorf("ReferredBy.Mobile = %q", p.ReferredBy.Mobile)
	}
	if p.ReferredBy.StudentID != "QTR-B02-014" {
		t.Errorf("ReferredBy.StudentID = %q", p.ReferredBy.StudentID)
	}
	if p.ReferredBy.Batch != "2023" {
		t.Errorf("ReferredBy.Batch = %q", p.ReferredBy.Batch)
	}
}

func TestParseWithoutSectionHeaders(t *testing.T) {
	// no headers: everything lands in the default student section, and the
	// keyword rules still route fields to the right place
	text := strings.Join([]string{
		"Full Name: sara ahmed",
		"Mobile +974: 33221100",
		"Email: sara@example.com",
		"Qualification: Graduate",
	}, "\n")

	p, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.StudentDetails.FullName != "Sara Ahmed" {
		t.Errorf("FullName = %q", p.StudentDetails.FullName)
	}
	if p.StudentDetails.Mobile != "33221100" {
		t.Errorf("Mobile = %q", p.StudentDetails.Mobile)
	}
	if p.OtherDetails.Email != "sara@example.com" {
		t.Errorf("Email = %q", p.OtherDetails.Email)
	}
	if p.OtherDetails.Qualification != "Graduate" {
		t.Errorf("Qualification = %q", p.OtherDetails.Qualification)
	}
}

func TestParseUnknownLabelGoesToExtra(t *testing.T) {
	text := strings.Join([]string{
		"STUDENT DETAILS",
		"Blood Group: O+",
		"OTHER DETAILS",
		"Preferred Timing: Evening",
	}, "\n")

	p, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := p.StudentDetails.Extra["bloodGroup"]; got != "O+" {
		t.Errorf("student extra bloodGroup = %q, want O+", got)
	}
	if got := p.OtherDetails.Extra["preferredTiming"]; got != "Evening" {
		t.Errorf("other extra preferredTiming = %q, want Evening", got)
	}
}

func TestParseSkipsDecorationAndEmptyValues(t *testing.T) {
	text := strings.Join([]string{
		"*** ~~~ ***",
		"-----",
		"Full Name:",
		"Mobile +974: 55110099",
	}, "\n")

	p, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.StudentDetails.FullName != "" {
		t.Errorf("empty value should not assign, got %q", p.StudentDetails.FullName)
	}
	if p.StudentDetails.Mobile != "55110099" {
		t.Errorf("Mobile = %q", p.StudentDetails.Mobile)
	}
}

func TestParsePlainMobileWithoutCountryCode(t *testing.T) {
	// a bare "Mobile" label has no country-code marker, so it misses the
	// mobile rule and reaches the student section through the fallback,
	// where "mobile" is still a known field
	p, err := Parse("Mobile: 55123456")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.StudentDetails.Mobile != "55123456" {
		t.Errorf("Mobile = %q, want 55123456", p.StudentDetails.Mobile)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ali khan", "Ali Khan"},
		{"ALI  KHAN", "Ali Khan"},
		{"mOhAmMeD", "Mohammed"},
		{"", ""},
		{"  abdul   rahman  ", "Abdul Rahman"},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Errorf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCamelKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Father Name", "fatherName"},
		{"Town / City", "townCity"},
		{"blood group", "bloodGroup"},
		{"Zone", "zone"},
		{"***", ""},
	}
	for _, c := range cases {
		if got := CamelKey(c.in); got != c.want {
			t.Errorf("CamelKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleCaseProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("TitleCase is idempotent", prop.ForAll(
		func(s string) bool {
			once := TitleCase(s)
			return TitleCase(once) == once
		},
		gen.AlphaString(),
	))

	properties.Property("CamelKey output never holds separators", prop.ForAll(
		func(s string) bool {
			out := CamelKey(s)
			return !strings.ContainsAny(out, " /-_.")
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestParseNeverPanics(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Parse returns a value or an error for any input", prop.ForAll(
		func(s string) bool {
			p, err := Parse(s)
			return (p != nil) != (err != nil)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
