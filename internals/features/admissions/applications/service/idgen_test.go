package service

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatApplicationID(t *testing.T) {
	cases := []struct {
		classCode string
		seq       int
		want      string
	}{
		{"QTR-B04", 1, "QTR-B04-001"},
		{"qtr-b04", 12, "QTR-B04-012"},
		{"QTR-B04", 999, "QTR-B04-999"},
		{"QTR-B04", 1000, "QTR-B04-1000"}, // padding grows past three digits
	}
	for _, c := range cases {
		if got := FormatApplicationID(c.classCode, c.seq); got != c.want {
			t.Errorf("FormatApplicationID(%q, %d) = %q, want %q", c.classCode, c.seq, got, c.want)
		}
	}
}

func TestSequenceFromID(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"QTR-B04-012", 12},
		{"QTR-B04-001", 1},
		{"QTR-B04-", 0},
		{"QTR-B04-xyz", 0},
		{"nodash", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := SequenceFromID(c.id); got != c.want {
			t.Errorf("SequenceFromID(%q) = %d, want %d", c.id, got, c.want)
		}
	}
}

func TestIDRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("sequence survives the format round trip", prop.ForAll(
		func(seq int) bool {
			return SequenceFromID(FormatApplicationID("QTR-B04", seq)) == seq
		},
		gen.IntRange(1, 99999),
	))

	properties.TestingRun(t)
}
