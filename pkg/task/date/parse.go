package date

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// Parse turns what a user typed into a date field into an instant.
// Relative inputs ("tomorrow", "in 3 days", "fri", "21st") are resolved
// against now and land on the start of that day in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrParsing
	}
	// timestamps are case sensitive ('T', 'Z'), try them before lowering
	if t, err := parseTimestamp(s, now.Location()); err == nil {
		return t, nil
	}
	s = strings.ToLower(s)
	today := StartOfDay(now)
	switch s {
	case "now":
		return now, nil
	case "today", "tod":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	}
	if t, err := parseAnyTimeFormat(s, absoluteFormats, now.Location()); err == nil {
		return t, nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wkd), nil
	}
	if days, err := parseDayOffset(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	if day, err := parseDayOfMonth(s); err == nil {
		return nextDayOfMonth(today, day), nil
	}
	return time.Time{}, ErrParsing
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return parseAnyTimeFormat(s, timestampFormats, loc)
}

func parseAnyTimeFormat(s string, formats []string, loc *time.Location) (time.Time, error) {
	for _, fmt := range formats {
		t, err := time.ParseInLocation(fmt, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

// what datetime-local and date inputs send, without a zone
var timestampFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var absoluteFormats = []string{
	"_2/01/06",
	"_2/01/2006",
	"_2 Jan 2006",
	"_2 January 2006",
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseDayOffset reads "in 3 days", "+1", "2w", "1 day ago" as a number of days
func parseDayOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if len(s) >= 1 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	{
		rest, n1, err := parseInt(s)
		if err != nil {
			return 0, err
		}
		n = n1
		s = strings.TrimSpace(rest)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := len(s)
		for i, c := range s {
			if c == ' ' {
				endOfWord = i
				break
			}
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] {
				multiplier = m.value
				s = s[endOfWord:]
				break
			}
		}
		if multiplier == 0 {
			return 0, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
		s = strings.TrimSpace(s)
		switch s {
		case "":
		case "ago":
			negative = true
		default:
			return 0, errors.New("unexpected trailing input")
		}
	}

	if negative {
		n *= -1
	}
	return n * multiplier, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		fmt := strings.ToLower(i.String())
		if s == fmt || s == fmt[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

// nextWeekday is strictly after today, so "mon" on a monday is next week
func nextWeekday(today time.Time, w time.Weekday) time.Time {
	days := int(w - today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

func parseDayOfMonth(s string) (int, error) {
	s, n, err := parseInt(s)
	if err != nil {
		return 0, errors.New("failed")
	}
	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10

	var valid bool
	switch {
	case n < 1 || n > 31:
	case lastDigit == 1 && !forceTh:
		valid = s == "st"
	case lastDigit == 2 && !forceTh:
		valid = s == "nd"
	case lastDigit == 3 && !forceTh:
		valid = s == "rd"
	default:
		valid = s == "th"
	}
	if !valid {
		return 0, errors.New("invalid postfix")
	}
	return n, nil
}

// nextDayOfMonth is the next date strictly after today that falls on day.
// Months too short for day are skipped.
func nextDayOfMonth(today time.Time, day int) time.Time {
	y, m, _ := today.Date()
	for i := 0; i < 13; i++ {
		candidate := time.Date(y, m+time.Month(i), day, 0, 0, 0, 0, today.Location())
		if candidate.Day() != day {
			continue
		}
		if candidate.After(today) {
			return candidate
		}
	}
	return today
}

func parseInt(s string) (string, int, error) {
	n := 0
	i := 0
	for i < len(s) {
		n1, err := strconv.Atoi(s[:i+1])
		if err != nil {
			break
		}
		n = n1
		i++
	}
	// first one can not fail
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	return s[i:], n, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
