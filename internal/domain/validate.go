package domain

import (
	"fmt"
	"time"
)

// ValidateTime checks that a medication time is in 24-hour HH:MM format.
func ValidateTime(value string) error {
	if _, err := time.Parse(TimeLayout, value); err != nil {
		return fmt.Errorf("invalid time %q: must be HH:MM (24-hour)", value)
	}
	return nil
}

// ParseDays converts weekday names into a set of ISO weekday numbers,
// preserving the caller's order and rejecting unknown names, duplicates and
// empty sets.
func ParseDays(names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one weekday is required")
	}

	days := make([]int, 0, len(names))
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		day, ok := WeekdayNumber(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q: use %s through %s", name, WeekdayNames[Monday], WeekdayNames[Sunday])
		}
		if seen[day] {
			return nil, fmt.Errorf("duplicate weekday %q", name)
		}
		seen[day] = true
		days = append(days, day)
	}
	return days, nil
}
