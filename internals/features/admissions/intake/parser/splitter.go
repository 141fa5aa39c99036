// file: internals/features/admissions/intake/parser/splitter.go
package parser

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Review status of one parsed application inside a batch. Only lives for the
// duration of an intake session; never persisted.
const (
	ReviewPending    = "pending"
	ReviewSubmitting = "submitting"
	ReviewCancelled  = "cancelled"
	ReviewSubmitted  = "submitted"
)

// ParsedApplication wraps one parse result with a temporary id and a review
// status for the batch flow.
type ParsedApplication struct {
	TempID string  `json:"tempId"`
	Status string  `json:"status"`
	Parsed *Parsed `json:"parsed"`
}

// Separator heuristics, applied cumulatively in this order: each pattern is
// applied to every fragment the previous pattern produced.
var separators = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*={5,}[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*-{5,}[ \t]*$`),
	regexp.MustCompile(`(?mi)^[ \t]*application[ \t]*#?\d+[ \t]*:?[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]*$`),
}

// Fragments shorter than this are noise (stray headers, footers, dividers
// that survived a split).
const minFragmentLen = 50

// SplitApplications segments one paste that may hold several concatenated
// applications and parses each candidate. Fragments that fail to parse are
// silently dropped. The result is computed eagerly.
func SplitApplications(text string) []ParsedApplication {
	fragments := []string{text}
	for _, sep := range separators {
		var next []string
		for _, frag := range fragments {
			next = append(next, sep.Split(frag, -1)...)
		}
		fragments = next
	}

	var kept []string
	for _, frag := range fragments {
		if len(strings.TrimSpace(frag)) >= minFragmentLen {
			kept = append(kept, frag)
		}
	}

	// a single surviving fragment means the paste was one application;
	// parse the original text so nothing clipped by a separator is lost
	if len(kept) == 1 {
		p, err := Parse(text)
		if err != nil || p == nil {
			return []ParsedApplication{}
		}
		return []ParsedApplication{wrap(p)}
	}

	out := make([]ParsedApplication, 0, len(kept))
	for _, frag := range kept {
		p, err := Parse(frag)
		if err != nil || p == nil {
			continue
		}
		out = append(out, wrap(p))
	}
	return out
}

func wrap(p *Parsed) ParsedApplication {
	return ParsedApplication{
		TempID: uuid.NewString(),
		Status: ReviewPending,
		Parsed: p,
	}
}
