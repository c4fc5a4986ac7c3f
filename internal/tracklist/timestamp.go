package tracklist

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp reports a timestamp token that cannot be converted.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// TimestampError carries the token that failed conversion.
type TimestampError struct {
	Token  string
	Reason string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %s", e.Token, e.Reason)
}

func (e *TimestampError) Is(target error) bool {
	return target == ErrMalformedTimestamp
}

var presencePattern = regexp.MustCompile(`\p{Nd}{2}:\p{Nd}{2}`)

// HasTimestamp reports whether text contains a two-digit "NN:NN" fragment
// anywhere, including inside a longer "HH:MM:SS" token. Any Unicode decimal
// digit counts. Single-digit forms
// such as "1:30" on their own do not count.
func HasTimestamp(text string) bool {
	return presencePattern.MatchString(text)
}

// Seconds converts a colon-delimited token to whole seconds. Two components
// are read as minutes:seconds and three as hours:minutes:seconds. Components
// are not range checked, so "0:75" is 75 seconds.
func Seconds(token string) (int, error) {
	parts := strings.Split(strings.TrimSpace(token), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, &TimestampError{Token: token, Reason: fmt.Sprintf("expected 2 or 3 components, got %d", len(parts))}
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		if part == "" || strings.Trim(part, "0123456789") != "" {
			return 0, &TimestampError{Token: token, Reason: fmt.Sprintf("component %q is not a non-negative integer", part)}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, &TimestampError{Token: token, Reason: err.Error()}
		}
		values[i] = n
	}
	var h, m, s int
	if len(values) == 2 {
		m, s = values[0], values[1]
	} else {
		h, m, s = values[0], values[1], values[2]
	}
	return h*3600 + m*60 + s, nil
}

// FormatSeconds renders whole seconds as "m:ss" or "h:mm:ss".
func FormatSeconds(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}
