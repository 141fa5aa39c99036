package parser

import (
	"strings"
	"testing"
)

func block(name, mobile string) string {
	return strings.Join([]string{
		"STUDENT DETAILS",
		"Full Name: " + name,
		"Mobile +974: " + mobile,
		"OTHER DETAILS",
		"Email: " + strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com",
	}, "\n")
}

func TestSplitTwoApplicationsOnEqualsDivider(t *testing.T) {
	text := block("ali khan", "55123456") + "\n==========\n" + block("omar farooq", "66445533")

	apps := SplitApplications(text)
	if len(apps) != 2 {
		t.Fatalf("got %d applications, want 2", len(apps))
	}

	if apps[0].Parsed.StudentDetails.FullName != "Ali Khan" {
		t.Errorf("first name = %q", apps[0].Parsed.StudentDetails.FullName)
	}
	if apps[1].Parsed.StudentDetails.FullName != "Omar Farooq" {
		t.Errorf("second name = %q", apps[1].Parsed.StudentDetails.FullName)
	}

	for _, a := range apps {
		if a.Status != ReviewPending {
			t.Errorf("status = %q, want %q", a.Status, ReviewPending)
		}
		if a.TempID == "" {
			t.Error("temp id is empty")
		}
	}
	if apps[0].TempID == apps[1].TempID {
		t.Error("temp ids must be unique")
	}
}

func TestSplitOnNumberedHeadings(t *testing.T) {
	text := "Application 1:\n" + block("ali khan", "55123456") +
		"\nApplication 2:\n" + block("sara ahmed", "33221100")

	apps := SplitApplications(text)
	if len(apps) != 2 {
		t.Fatalf("got %d applications, want 2", len(apps))
	}
}

func TestSplitDropsShortNoiseFragments(t *testing.T) {
	text := block("ali khan", "55123456") + "\n----------\nok bye\n----------\n" + block("omar farooq", "66445533")

	apps := SplitApplications(text)
	if len(apps) != 2 {
		t.Fatalf("got %d applications, want 2 (noise fragment must be dropped)", len(apps))
	}
}

func TestSplitSingleApplicationParsesWholeText(t *testing.T) {
	// a lone application with a trailing divider still parses as one item
	text := block("ali khan", "55123456") + "\n=========="

	apps := SplitApplications(text)
	if len(apps) != 1 {
		t.Fatalf("got %d applications, want 1", len(apps))
	}
	if apps[0].Parsed.StudentDetails.FullName != "Ali Khan" {
		t.Errorf("name = %q", apps[0].Parsed.StudentDetails.FullName)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if apps := SplitApplications("   \n \n"); len(apps) != 0 {
		t.Fatalf("got %d applications, want 0", len(apps))
	}
}
