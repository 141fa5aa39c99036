package model

import (
	"testing"

	"github.com/bytedance/sonic"
)

func TestStudentDetailsSetAndFlatten(t *testing.T) {
	var s StudentDetails
	s.Set("fullName", "Ali Khan")
	s.Set("mobile", "55123456")
	s.Set("bloodGroup", "O+")

	if s.FullName != "Ali Khan" || s.Mobile != "55123456" {
		t.Fatalf("known fields not set: %+v", s)
	}
	if s.Extra["bloodGroup"] != "O+" {
		t.Fatalf("extra not kept: %+v", s.Extra)
	}

	// knowns and extras flatten into one object
	data, err := sonic.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]any
	if err := sonic.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal flat: %v", err)
	}
	if flat["fullName"] != "Ali Khan" || flat["bloodGroup"] != "O+" {
		t.Errorf("flattened object = %v", flat)
	}
	if _, nested := flat["Extra"]; nested {
		t.Error("Extra leaked as a nested object")
	}
}

func TestStudentDetailsUnmarshalSplitsExtras(t *testing.T) {
	var s StudentDetails
	raw := `{"fullName":"Ali Khan","mobile":"55123456","fatherName":"Omar Khan"}`
	if err := sonic.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.FullName != "Ali Khan" || s.Mobile != "55123456" {
		t.Errorf("known fields = %+v", s)
	}
	if s.Extra["fatherName"] != "Omar Khan" {
		t.Errorf("extras = %v", s.Extra)
	}
}

func TestOtherDetailsAgeHandling(t *testing.T) {
	var o OtherDetails
	o.Set("age", "26")
	if o.Age != 26 {
		t.Errorf("Age = %d, want 26", o.Age)
	}

	// non-numeric age is not thrown away
	var o2 OtherDetails
	o2.Set("age", "mid twenties")
	if o2.Age != 0 || o2.Extra["age"] != "mid twenties" {
		t.Errorf("non-numeric age: %+v", o2)
	}

	var o3 OtherDetails
	if err := sonic.Unmarshal([]byte(`{"age":31,"email":"a@b.c"}`), &o3); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o3.Age != 31 || o3.Email != "a@b.c" {
		t.Errorf("decoded: %+v", o3)
	}
}

func TestSectionScanFromDatabase(t *testing.T) {
	var r CurrentResidence
	if err := r.Scan([]byte(`{"area":"Al Wakrah","zone":"56"}`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if r.Area != "Al Wakrah" || r.Extra["zone"] != "56" {
		t.Errorf("scanned: %+v", r)
	}

	var empty CurrentResidence
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
}

func TestApplicationStatusValues(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved, StatusRejected} {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "archived", "PENDING"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true", s)
		}
	}
}
