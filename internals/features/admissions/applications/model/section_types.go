// file: internals/features/admissions/applications/model/section_types.go
//
// Each pasted application is broken into five sections. A section is a struct
// of known fields plus an open Extra map for labels the parser did not
// recognize; the whole section flattens to a single JSON object both in the
// API payload and in its jsonb column.
package model

import (
	"database/sql/driver"
	"errors"
	"strconv"

	"github.com/bytedance/sonic"
)

func sectionValue(v any) (driver.Value, error) {
	return sonic.Marshal(v)
}

func sectionScan(src, dst any) error {
	if src == nil {
		return nil
	}
	switch b := src.(type) {
	case []byte:
		return sonic.Unmarshal(b, dst)
	case string:
		return sonic.Unmarshal([]byte(b), dst)
	default:
		return errors.New("unsupported source type for section scan")
	}
}

// flatten merges known fields (already collected into m) with extras.
func flatten(m map[string]any, extra map[string]string) ([]byte, error) {
	for k, v := range extra {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
	return sonic.Marshal(m)
}

// pull removes a known string key from the raw object.
func pull(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	s, _ := v.(string)
	return s
}

// leftovers converts whatever remains in the raw object into the Extra map.
func leftovers(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	extra := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			extra[k] = t
		case float64:
			extra[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			extra[k] = strconv.FormatBool(t)
		}
	}
	return extra
}

/* ================= StudentDetails ================= */

type StudentDetails struct {
	FullName string            `json:"fullName,omitempty"`
	Mobile   string            `json:"mobile,omitempty"`
	Whatsapp string            `json:"whatsapp,omitempty"`
	Extra    map[string]string `json:"-"`
}

func (s *StudentDetails) Set(key, value string) {
	switch key {
	case "fullName":
		s.FullName = value
	case "mobile":
		s.Mobile = value
	case "whatsapp":
		s.Whatsapp = value
	default:
		if s.Extra == nil {
			s.Extra = map[string]string{}
		}
		s.Extra[key] = value
	}
}

func (s StudentDetails) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if s.FullName != "" {
		m["fullName"] = s.FullName
	}
	if s.Mobile != "" {
		m["mobile"] = s.Mobile
	}
	if s.Whatsapp != "" {
		m["whatsapp"] = s.Whatsapp
	}
	return flatten(m, s.Extra)
}

func (s *StudentDetails) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.FullName = pull(raw, "fullName")
	s.Mobile = pull(raw, "mobile")
	s.Whatsapp = pull(raw, "whatsapp")
	s.Extra = leftovers(raw)
	return nil
}

func (s StudentDetails) Value() (driver.Value, error) { return sectionValue(s) }
func (s *StudentDetails) Scan(src any) error          { return sectionScan(src, s) }

/* ================= HometownDetails ================= */

type HometownDetails struct {
	Area     string            `json:"area,omitempty"`
	City     string            `json:"city,omitempty"`
	District string            `json:"district,omitempty"`
	State    string            `json:"state,omitempty"`
	Extra    map[string]string `json:"-"`
}

func (h *HometownDetails) Set(key, value string) {
	switch key {
	case "area":
		h.Area = value
	case "city":
		h.City = value
	case "district":
		h.District = value
	case "state":
		h.State = value
	default:
		if h.Extra == nil {
			h.Extra = map[string]string{}
		}
		h.Extra[key] = value
	}
}

func (h HometownDetails) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if h.Area != "" {
		m["area"] = h.Area
	}
	if h.City != "" {
		m["city"] = h.City
	}
	if h.District != "" {
		m["district"] = h.District
	}
	if h.State != "" {
		m["state"] = h.State
	}
	return flatten(m, h.Extra)
}

func (h *HometownDetails) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.Area = pull(raw, "area")
	h.City = pull(raw, "city")
	h.District = pull(raw, "district")
	h.State = pull(raw, "state")
	h.Extra = leftovers(raw)
	return nil
}

func (h HometownDetails) Value() (driver.Value, error) { return sectionValue(h) }
func (h *HometownDetails) Scan(src any) error          { return sectionScan(src, h) }

/* ================= CurrentResidence ================= */

type CurrentResidence struct {
	Area   string            `json:"area,omitempty"`
	Mandal string            `json:"mandal,omitempty"`
	City   string            `json:"city,omitempty"`
	State  string            `json:"state,omitempty"`
	Extra  map[string]string `json:"-"`
}

func (r *CurrentResidence) Set(key, value string) {
	switch key {
	case "area":
		r.Area = value
	case "mandal":
		r.Mandal = value
	case "city":
		r.City = value
	case "state":
		r.State = value
	default:
		if r.Extra == nil {
			r.Extra = map[string]string{}
		}
		r.Extra[key] = value
	}
}

func (r CurrentResidence) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if r.Area != "" {
		m["area"] = r.Area
	}
	if r.Mandal != "" {
		m["mandal"] = r.Mandal
	}
	if r.City != "" {
		m["city"] = r.City
	}
	if r.State != "" {
		m["state"] = r.State
	}
	return flatten(m, r.Extra)
}

func (r *CurrentResidence) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Area = pull(raw, "area")
	r.Mandal = pull(raw, "mandal")
	r.City = pull(raw, "city")
	r.State = pull(raw, "state")
	r.Extra = leftovers(raw)
	return nil
}

func (r CurrentResidence) Value() (driver.Value, error) { return sectionValue(r) }
func (r *CurrentResidence) Scan(src any) error          { return sectionScan(src, r) }

/* ================= OtherDetails ================= */

type OtherDetails struct {
	Email         string            `json:"email,omitempty"`
	Age           int               `json:"age,omitempty"`
	Qualification string            `json:"qualification,omitempty"`
	Profession    string            `json:"profession,omitempty"`
	Extra         map[string]string `json:"-"`
}

func (o *OtherDetails) Set(key, value string) {
	switch key {
	case "email":
		o.Email = value
	case "age":
		if n, err := strconv.Atoi(value); err == nil {
			o.Age = n
		} else {
			if o.Extra == nil {
				o.Extra = map[string]string{}
			}
			o.Extra[key] = value
		}
	case "qualification":
		o.Qualification = value
	case "profession":
		o.Profession = value
	default:
		if o.Extra == nil {
			o.Extra = map[string]string{}
		}
		o.Extra[key] = value
	}
}

func (o OtherDetails) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if o.Email != "" {
		m["email"] = o.Email
	}
	if o.Age != 0 {
		m["age"] = o.Age
	}
	if o.Qualification != "" {
		m["qualification"] = o.Qualification
	}
	if o.Profession != "" {
		m["profession"] = o.Profession
	}
	return flatten(m, o.Extra)
}

func (o *OtherDetails) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["age"].(float64); ok {
		o.Age = int(v)
		delete(raw, "age")
	}
	o.Email = pull(raw, "email")
	o.Qualification = pull(raw, "qualification")
	o.Profession = pull(raw, "profession")
	o.Extra = leftovers(raw)
	return nil
}

func (o OtherDetails) Value() (driver.Value, error) { return sectionValue(o) }
func (o *OtherDetails) Scan(src any) error          { return sectionScan(src, o) }

/* ================= ReferredBy ================= */

type ReferredBy struct {
	FullName  string            `json:"fullName,omitempty"`
	Mobile    string            `json:"mobile,omitempty"`
	StudentID string            `json:"studentId,omitempty"`
	Batch     string            `json:"batch,omitempty"`
	Extra     map[string]string `json:"-"`
}

func (r *ReferredBy) Set(key, value string) {
	switch key {
	case "fullName":
		r.FullName = value
	case "mobile":
		r.Mobile = value
	case "studentId":
		r.StudentID = value
	case "batch":
		r.Batch = value
	default:
		if r.Extra == nil {
			r.Extra = map[string]string{}
		}
		r.Extra[key] = value
	}
}

func (r ReferredBy) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if r.FullName != "" {
		m["fullName"] = r.FullName
	}
	if r.Mobile != "" {
		m["mobile"] = r.Mobile
	}
	if r.StudentID != "" {
		m["studentId"] = r.StudentID
	}
	if r.Batch != "" {
		m["batch"] = r.Batch
	}
	return flatten(m, r.Extra)
}

func (r *ReferredBy) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.FullName = pull(raw, "fullName")
	r.Mobile = pull(raw, "mobile")
	r.StudentID = pull(raw, "studentId")
	r.Batch = pull(raw, "batch")
	r.Extra = leftovers(raw)
	return nil
}

func (r ReferredBy) Value() (driver.Value, error) { return sectionValue(r) }
func (r *ReferredBy) Scan(src any) error          { return sectionScan(src, r) }
