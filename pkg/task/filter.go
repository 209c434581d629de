package task

import (
	"errors"
	"strings"
)

// DateMatch selects how a filter compares its date against a task start date
type DateMatch int

const (
	MatchPrefix DateMatch = iota
	MatchExact
)

var ErrUnknownMatch = errors.New("unknown date match mode")

func ParseDateMatch(s string) (DateMatch, error) {
	switch strings.ToLower(s) {
	case "", "prefix":
		return MatchPrefix, nil
	case "exact":
		return MatchExact, nil
	}
	return MatchPrefix, ErrUnknownMatch
}

func (m DateMatch) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "prefix"
}

// Filter is a client-side predicate over a loaded collection
type Filter struct {
	Text  string
	Date  string
	Match DateMatch
}

// Matches is a case-insensitive substring test on the label, and when
// a date is set, a prefix or exact test on the start date.
func (f Filter) Matches(t Task) bool {
	if !strings.Contains(strings.ToLower(t.Label), strings.ToLower(f.Text)) {
		return false
	}
	if f.Date == "" {
		return true
	}
	if f.Match == MatchExact {
		return t.StartDate == f.Date
	}
	return strings.HasPrefix(t.StartDate, f.Date)
}

// Apply returns the matching tasks in their original order.
// The input slice is left untouched.
func (f Filter) Apply(ts []Task) []Task {
	out := []Task{}
	for _, t := range ts {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
