package usage

import (
	"fmt"
	"strings"
	"time"

	"github.com/revanthlol/focusd/internal/dateutil"
)

// FormatDuration renders seconds as "Xh Ym Zs", dropping leading zero units.
// Hours are not capped at 24. Negative input renders as "0s".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatDurationShort renders seconds as "Xh Ym" or "Ym".
func FormatDurationShort(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock renders seconds as "Xh MMm SSs", the fixed-width form used in
// CLI reports.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %02dm %02ds", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Range resolves the inclusive date range for a view around ref.
// The current week ends today; past weeks end on Sunday.
func Range(view View, ref, now time.Time) (start, end time.Time) {
	ref = dateutil.TruncateToDay(ref)
	today := dateutil.TruncateToDay(now)
	if view != ViewWeek {
		return ref, ref
	}
	monday, sunday := dateutil.WeekRange(ref)
	if sunday.After(today) {
		sunday = today
	}
	return monday, sunday
}

// Shift moves ref one day (today view) or one week (week view) in dir,
// which is negative for back and positive for forward. It never moves past
// today.
func Shift(view View, ref time.Time, dir int, now time.Time) time.Time {
	ref = dateutil.TruncateToDay(ref)
	today := dateutil.TruncateToDay(now)
	step := 1
	if view == ViewWeek {
		step = 7
	}
	switch {
	case dir < 0:
		ref = ref.AddDate(0, 0, -step)
	case dir > 0:
		ref = ref.AddDate(0, 0, step)
	}
	if ref.After(today) {
		return today
	}
	return ref
}

// PeriodLabel describes the range shown by a view, e.g. "Today",
// "Mon Jan 06" or "Jan 06 - Jan 12".
func PeriodLabel(view View, start, end, now time.Time) string {
	if view == ViewWeek {
		if dateutil.SameDay(end, now) && start.Equal(mondayOf(now)) {
			return "This Week"
		}
		return start.Format("Jan 02") + " - " + end.Format("Jan 02")
	}
	if dateutil.SameDay(start, now) {
		return "Today"
	}
	return start.Format("Mon Jan 02")
}

func mondayOf(t time.Time) time.Time {
	monday, _ := dateutil.WeekRange(t)
	return monday
}

// Summary renders a dashboard as plain text.
func Summary(d *Dashboard, view View, start, end, now time.Time) string {
	var b strings.Builder
	if view == ViewWeek {
		fmt.Fprintf(&b, "focusd: %s (%s to %s)\n", PeriodLabel(view, start, end, now),
			start.Format(dateutil.Layout), end.Format(dateutil.Layout))
	} else {
		fmt.Fprintf(&b, "focusd: %s (%s)\n", PeriodLabel(view, start, end, now), start.Format(dateutil.Layout))
	}
	fmt.Fprintf(&b, "Total: %s\n", FormatDuration(d.TotalSeconds))

	if len(d.Apps) == 0 {
		b.WriteString("No data found.\n")
		return b.String()
	}

	width := 0
	for _, e := range d.Apps {
		if n := len([]rune(e.Label)); n > width {
			width = n
		}
	}
	for _, e := range d.Apps {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, e.Label, FormatDuration(e.Seconds))
	}

	if view == ViewWeek && len(d.Chart) > 0 {
		b.WriteString("Daily:\n")
		for _, e := range d.Chart {
			fmt.Fprintf(&b, "  %s  %s\n", e.Label, FormatDurationShort(e.Seconds))
		}
	}
	return b.String()
}
