package types

import "time"

// Wire formats for calendar values. Expense dates travel as "2006-01-02",
// budget months as "2006-01".
const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
)

// ParseDate parses a calendar date in wire format, normalized to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// IsValidMonth reports whether s is a well-formed "YYYY-MM" month.
func IsValidMonth(s string) bool {
	if len(s) != len(MonthFormat) {
		return false
	}
	_, err := time.Parse(MonthFormat, s)
	return err == nil
}
