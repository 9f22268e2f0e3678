// Package builtin contains the value-level conversions used by the person
// transformer.
package builtin

import (
	"errors"
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order after the ISO date fast path. Slash
// and short dash dates are listed month-first; Dates derives the day-first
// variants from them.
var DefaultDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/01/02",
	"01-02-06",
	"2 January 2006",
	"January 2, 2006",
}

// ErrUnrecognizedDate is returned when no layout matches a date value.
var ErrUnrecognizedDate = errors.New("no date layout matched")

// Dates parses date strings against a list of layouts. Values without a zone
// are taken as UTC.
//
// Layouts that start with a numeric month and day ("1/2/2006", "01-02-06")
// are also tried with the two exchanged. DayFirst selects which order is
// tried first; the other order remains a fallback.
type Dates struct {
	Layouts  []string
	DayFirst bool

	swapped []string
}

// NewDates returns a Dates using layouts, or DefaultDateLayouts when empty.
func NewDates(layouts []string) Dates {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	cp := make([]string, len(layouts))
	copy(cp, layouts)

	var swapped []string
	for _, l := range cp {
		if s, ok := swapDayMonth(l); ok {
			swapped = append(swapped, s)
		}
	}
	return Dates{Layouts: cp, swapped: swapped}
}

// ForColumn returns a copy of d whose DayFirst is decided by the first value
// in column that can only be read one way ("25/12/1990" is day-first,
// "12/25/1990" month-first). A column with no such value stays month-first.
func (d Dates) ForColumn(column []string) Dates {
	d.DayFirst = DetectDayFirst(column)
	return d
}

// Parse converts s to a UTC time. Surrounding whitespace is ignored.
func (d Dates) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, ok := parseISODate(s); ok {
		return t, nil
	}
	first, second := d.Layouts, d.swapped
	if d.DayFirst {
		first, second = d.swapped, d.Layouts
	}
	for _, layouts := range [2][]string{first, second} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return time.Time{}, ErrUnrecognizedDate
}

// DetectDayFirst scans values for the first date of the form "A/B/..." or
// "A-B-..." where exactly one of A and B exceeds 12, and reports whether A is
// the day. It returns false when every value is ambiguous.
func DetectDayFirst(values []string) bool {
	for _, v := range values {
		a, b, ok := leadingPair(strings.TrimSpace(v))
		if !ok {
			continue
		}
		switch {
		case a > 12 && b <= 12:
			return true
		case b > 12 && a <= 12:
			return false
		}
	}
	return false
}

// leadingPair reads two 1-2 digit numbers separated and followed by the same
// '/' or '-' separator.
func leadingPair(s string) (a, b int, ok bool) {
	a, n := leadingNum(s)
	if n == 0 || n >= len(s) || (s[n] != '/' && s[n] != '-') {
		return 0, 0, false
	}
	sep := s[n]
	s = s[n+1:]
	b, n = leadingNum(s)
	if n == 0 || n >= len(s) || s[n] != sep {
		return 0, 0, false
	}
	return a, b, true
}

func leadingNum(s string) (v, n int) {
	for n < len(s) && n < 3 && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		n++
	}
	if n == 3 {
		return 0, 0
	}
	return v, n
}

// swapDayMonth exchanges a leading numeric month and day in layout.
func swapDayMonth(layout string) (string, bool) {
	for _, p := range [...][2]string{
		{"1/2/", "2/1/"},
		{"01/02/", "02/01/"},
		{"2/1/", "1/2/"},
		{"02/01/", "01/02/"},
		{"01-02-", "02-01-"},
		{"02-01-", "01-02-"},
	} {
		if strings.HasPrefix(layout, p[0]) {
			return p[1] + layout[len(p[0]):], true
		}
	}
	return "", false
}

// parseISODate is an allocation-free parser for "2006-01-02". It rejects
// impossible calendar dates such as 2021-02-30.
func parseISODate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	y3, y2, y1, y0 := s[0]-'0', s[1]-'0', s[2]-'0', s[3]-'0'
	m1, m0 := s[5]-'0', s[6]-'0'
	d1, d0 := s[8]-'0', s[9]-'0'
	if y3 > 9 || y2 > 9 || y1 > 9 || y0 > 9 || m1 > 9 || m0 > 9 || d1 > 9 || d0 > 9 {
		return time.Time{}, false
	}
	year := int(y3)*1000 + int(y2)*100 + int(y1)*10 + int(y0)
	mon := int(m1)*10 + int(m0)
	day := int(d1)*10 + int(d0)
	if mon < 1 || mon > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
