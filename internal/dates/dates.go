// Package dates reconciles the date picker's year-first strings with the
// day-month-year form invoices are stored in.
package dates

import (
	"strings"
	"time"
)

// Layout is the stored invoice date layout (DD-MM-YYYY).
const Layout = "02-01-2006"

// Normalize converts "YYYY-MM-DD" to "DD-MM-YYYY". Anything else, including
// malformed input, is returned unchanged. Empty input yields "".
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	parts := strings.Split(input, "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return input
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// Format renders t in the stored layout.
func Format(t time.Time) string { return t.Format(Layout) }
