package timefmt

import (
	"fmt"
	"time"
)

// Relative renders how long ago t occurred relative to reference, for the
// project listing. A zero reference means time.Now().
func Relative(t, reference time.Time) string {
	if reference.IsZero() {
		reference = time.Now()
	}
	if t.IsZero() {
		return "never"
	}
	diff := reference.Sub(t)
	if diff < 0 {
		return "just now"
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	}
	if t.Year() == reference.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 2006")
}

func plural(n int, unit string) string {
	if n <= 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
