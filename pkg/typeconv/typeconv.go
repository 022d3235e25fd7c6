// Package typeconv holds the parsing helpers used when converting
// raw file fields into typed values.
package typeconv

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses an application date string. The file format is a
// plain calendar date, but a few common timestamp variants are
// accepted as well.
func ParseDate(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", val)
}

// ParseInt converts a raw field to an int, tolerating surrounding
// whitespace.
func ParseInt(val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", val)
	}
	return n, nil
}

// ParseScore converts a raw score field and enforces the declared
// 0-10 range.
func ParseScore(val string) (int, error) {
	n, err := ParseInt(val)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 10 {
		return 0, fmt.Errorf("score %d out of range 0-10", n)
	}
	return n, nil
}
