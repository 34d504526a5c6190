// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a dollar amount with comma grouping and two decimals.
// e.g., 1234567.5 -> "$1,234,567.50", -42 -> "-$42.00"
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoney(-amount)
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteByte('$')
	remainder := len(intPart) % 3
	if remainder > 0 {
		b.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)
	return b.String()
}

// FormatRate formats a 0-1 rate as a percentage string.
// e.g., 0.255 -> "25.5%"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// FormatPercent formats an already-scaled percentage value.
// e.g., 112.5 -> "112.5%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate renders a date as YYYY-MM-DD, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatBracketRange renders a bracket's bounds, with "+" for the unbounded
// top bracket.
// e.g., (55867, 111733) -> "$55,867 - $111,733"; (246752, +Inf) -> "$246,752+"
func FormatBracketRange(min, max float64) string {
	lower := "$" + groupInt(min)
	if max != max || max > 1e15 { // NaN or effectively unbounded
		return lower + "+"
	}
	return lower + " - $" + groupInt(max)
}

func groupInt(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
