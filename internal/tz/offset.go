package tz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itsjavi/tzshift/internal/errs"
)

// ParseOffset converts a signed "HH:MM" text into minutes east of UTC.
// A missing sign means positive; extra fields after the minutes are ignored.
func ParseOffset(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, errs.New(errs.InvalidFormat, "empty offset")
	}

	sign, rest := Split(s)
	parts := strings.Split(rest, ":")
	if len(parts) < 2 {
		return 0, errs.New(errs.InvalidFormat, "invalid offset format: %q", text)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errs.Wrap(errs.InvalidFormat, err, "invalid offset hours in %q", text)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errs.Wrap(errs.InvalidFormat, err, "invalid offset minutes in %q", text)
	}

	total := hours*60 + minutes
	if sign == "-" {
		total = -total
	}
	return total, nil
}

// FormatOffset renders minutes as "+HH:MM" / "-HH:MM".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// Split separates the sign character from the magnitude. Unsigned text is
// treated as positive.
func Split(text string) (sign string, rest string) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return s[:1], s[1:]
	}
	return "+", s
}

// Invert flips the sign of an offset text and keeps its magnitude as written.
// "+02:00" becomes "-02:00": the shift that brings local camera time to UTC.
func Invert(text string) string {
	sign, rest := Split(text)
	if sign == "+" {
		return "-" + rest
	}
	return "+" + rest
}
