package date

import "time"

// Canonical is the timestamp layout start dates are submitted in.
// It is what browsers produce with Date.toISOString.
const Canonical = "2006-01-02T15:04:05.000Z07:00"

// Format renders t in the canonical layout, always in UTC
func Format(t time.Time) string {
	return t.UTC().Format(Canonical)
}

// Normalize parses user input relative to now and formats it canonically
func Normalize(s string, now time.Time) (string, error) {
	t, err := Parse(s, now)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
