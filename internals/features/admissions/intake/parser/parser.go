// file: internals/features/admissions/intake/parser/parser.go
//
// Converts one pasted application block into typed section objects. The text
// is semi-structured: section headers, "Key: Value" lines, dividers and
// decoration, with plenty of variation in labels. Parsing is a single pass
// over lines with one mutable section cursor; field extraction is an ordered
// table of heuristic key matchers with first-match-wins semantics.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	appModel "qcm_backend/internals/features/admissions/applications/model"
)

// Parsed is the transient result of parsing one application block.
type Parsed struct {
	ClassCode        string                    `json:"classCode,omitempty"`
	StudentDetails   appModel.StudentDetails   `json:"studentDetails"`
	OtherDetails     appModel.OtherDetails     `json:"otherDetails"`
	HometownDetails  appModel.HometownDetails  `json:"hometownDetails"`
	CurrentResidence appModel.CurrentResidence `json:"currentResidence"`
	ReferredBy       appModel.ReferredBy       `json:"referredBy"`
}

/* ================= Section cursor ================= */

type section int

const (
	sectionStudent section = iota
	sectionHometown
	sectionResidence
	sectionOther
	sectionReferred
)

// sectionKeywords maps header keywords (matched against the uppercased line)
// to the cursor value they activate. One cursor, no nesting.
var sectionKeywords = []struct {
	keyword string
	section section
}{
	{"STUDENT DETAILS", sectionStudent},
	{"BACK HOME DETAILS", sectionHometown},
	{"CURRENT RESIDENCE", sectionResidence},
	{"OTHER DETAILS", sectionOther},
	{"REFERRED BY", sectionReferred},
}

var classCodeRe = regexp.MustCompile(`\(([A-Za-z]{2,4}-[A-Za-z0-9]{2,6})\)`)

/* ================= Key matcher table ================= */

// keyRule is one heuristic: a predicate on the lowercased key and an
// assignment. Rules are evaluated top to bottom and the first match wins;
// the order below is significant (e.g. "city" under different labels) and
// must not be reshuffled.
type keyRule struct {
	name  string
	match func(key string) bool
	apply func(p *Parsed, cur section, value string)
}

func has(sub string) func(string) bool {
	return func(key string) bool { return strings.Contains(key, sub) }
}

func hasAny(subs ...string) func(string) bool {
	return func(key string) bool {
		for _, sub := range subs {
			if strings.Contains(key, sub) {
				return true
			}
		}
		return false
	}
}

var keyRules = []keyRule{
	{
		name:  "full name",
		match: has("name"),
		apply: func(p *Parsed, cur section, value string) {
			name := TitleCase(value)
			if cur == sectionReferred {
				p.ReferredBy.FullName = name
			} else {
				p.StudentDetails.FullName = name
			}
		},
	},
	{
		name: "mobile",
		// the templates label the student mobile with the country code;
		// plain "Mobile" labels fall through to the section map
		match: func(key string) bool {
			return strings.Contains(key, "mobile") && strings.Contains(key, "+974")
		},
		apply: func(p *Parsed, cur section, value string) {
			if cur == sectionReferred {
				p.ReferredBy.Mobile = value
			} else {
				p.StudentDetails.Mobile = value
			}
		},
	},
	{
		name:  "whatsapp",
		match: has("whatsapp"),
		apply: func(p *Parsed, _ section, value string) {
			p.StudentDetails.Whatsapp = value
		},
	},
	{
		name:  "email",
		match: hasAny("email", "e-mail"),
		apply: func(p *Parsed, _ section, value string) {
			p.OtherDetails.Email = value
		},
	},
	{
		name:  "birth year",
		match: has("birth"),
		apply: func(p *Parsed, _ section, value string) {
			if year := extractYear(value); year > 0 {
				p.OtherDetails.Age = time.Now().Year() - year
			}
		},
	},
	{
		name:  "qualification",
		match: has("qualification"),
		apply: func(p *Parsed, _ section, value string) {
			p.OtherDetails.Qualification = value
		},
	},
	{
		name:  "profession",
		match: hasAny("profession", "occupation"),
		apply: func(p *Parsed, _ section, value string) {
			p.OtherDetails.Profession = value
		},
	},
	{
		name:  "batch",
		match: has("batch"),
		apply: func(p *Parsed, _ section, value string) {
			p.ReferredBy.Batch = value
		},
	},
	{
		name:  "student id",
		match: hasAny("student id", "student no"),
		apply: func(p *Parsed, _ section, value string) {
			p.ReferredBy.StudentID = value
		},
	},
	{
		name:  "town/city",
		match: hasAny("town", "city"),
		apply: func(p *Parsed, cur section, value string) {
			if cur == sectionResidence {
				p.CurrentResidence.City = value
			} else {
				p.HometownDetails.City = value
			}
		},
	},
	{
		name:  "district",
		match: has("district"),
		apply: func(p *Parsed, _ section, value string) {
			p.HometownDetails.District = value
		},
	},
	{
		name:  "state",
		match: has("state"),
		apply: func(p *Parsed, cur section, value string) {
			if cur == sectionResidence {
				p.CurrentResidence.State = value
			} else {
				p.HometownDetails.State = value
			}
		},
	},
	{
		name:  "country",
		match: has("country"),
		apply: func(p *Parsed, cur section, value string) {
			if cur == sectionResidence {
				p.CurrentResidence.Set("country", value)
			} else {
				p.HometownDetails.Set("country", value)
			}
		},
	},
	{
		name:  "zone",
		match: has("zone"),
		apply: func(p *Parsed, _ section, value string) {
			p.CurrentResidence.Set("zone", value)
		},
	},
	{
		name:  "area",
		match: has("area"),
		apply: func(p *Parsed, cur section, value string) {
			if cur == sectionResidence {
				p.CurrentResidence.Area = value
			} else {
				p.HometownDetails.Area = value
			}
		},
	},
}

/* ================= Parse ================= */

// Parse converts one pasted block into a Parsed value. It never panics: any
// internal failure is returned as an error and the caller treats a nil
// result as "could not parse".
func Parse(text string) (p *Parsed, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("parse failed: %v", r)
		}
	}()

	p = &Parsed{}
	cur := sectionStudent

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isDecorative(line) {
			continue
		}

		// class code in parentheses, e.g. (QTR-B04)
		if m := classCodeRe.FindStringSubmatch(line); m != nil {
			p.ClassCode = strings.ToUpper(m[1])
			continue
		}

		// section header switches the cursor
		if s, ok := matchSection(line); ok {
			cur = s
			continue
		}

		// key: value
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}

		applyKey(p, cur, key, value)
	}

	return p, nil
}

func applyKey(p *Parsed, cur section, key, value string) {
	lower := strings.ToLower(key)
	for _, rule := range keyRules {
		if rule.match(lower) {
			rule.apply(p, cur, value)
			return
		}
	}
	// unrecognized label: keep it under the current section with a
	// normalized camelCase key
	setOnSection(p, cur, CamelKey(key), value)
}

func setOnSection(p *Parsed, cur section, key, value string) {
	switch cur {
	case sectionStudent:
		p.StudentDetails.Set(key, value)
	case sectionHometown:
		p.HometownDetails.Set(key, value)
	case sectionResidence:
		p.CurrentResidence.Set(key, value)
	case sectionOther:
		p.OtherDetails.Set(key, value)
	case sectionReferred:
		p.ReferredBy.Set(key, value)
	}
}

func matchSection(line string) (section, bool) {
	upper := strings.ToUpper(line)
	for _, sk := range sectionKeywords {
		if strings.Contains(upper, sk.keyword) {
			return sk.section, true
		}
	}
	return 0, false
}

// isDecorative reports whether the line is a divider (runs of - or =) or pure
// decoration: no letters and no digits.
func isDecorative(line string) bool {
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var yearRe = regexp.MustCompile(`\d{4}`)

func extractYear(value string) int {
	m := yearRe.FindString(value)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

/* ================= String normalizers ================= */

// TitleCase uppercases the first letter of each word and lowercases the
// rest: "ali  khan" -> "Ali Khan".
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// CamelKey normalizes a raw label into a camelCase map key:
// "Father Name" -> "fatherName", "e-mail id" -> "eMailId".
func CamelKey(label string) string {
	var words []string
	var cur strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(unicode.ToLower(r))
		} else if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	if len(words) == 0 {
		return ""
	}
	out := words[0]
	for _, w := range words[1:] {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		out += string(r)
	}
	return out
}
