package domain

import (
	"fmt"
	"strings"
)

// Clock is a naive time of day ("HH:mm") stored as minutes since midnight.
// Orders and shifts carry no date component; comparisons are same-day only.
type Clock int

// ParseClock parses an "HH:mm" string into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:mm", s)
	}
	h, err := atoi2(parts[0])
	if err != nil || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := atoi2(parts[1])
	if err != nil || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock(h*60 + m), nil
}

// MustClock parses an "HH:mm" string or panics. For tests and literals.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func atoi2(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a digit: %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// String renders the clock back to "HH:mm".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Shift is a partner's working window, inclusive on both ends.
// Overnight shifts are not supported: a shift with End < Start never
// covers anything after midnight.
type Shift struct {
	Start Clock
	End   Clock
}

// Covers reports whether t falls within the shift, inclusive.
func (s Shift) Covers(t Clock) bool {
	return t >= s.Start && t <= s.End
}

// EqualArea compares delivery areas case-insensitively.
func EqualArea(a, b string) bool {
	return strings.EqualFold(a, b)
}
