package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/usage"
)

const (
	reportNameWidth = 15
	reportBarWidth  = 20
)

func (a *App) reportCmd(view usage.View) *cobra.Command {
	var date string

	short := "Show today's focused time per application"
	if view == usage.ViewWeek {
		short = "Show this week's focused time per application"
	}

	cmd := &cobra.Command{
		Use:   string(view),
		Short: short,
		Long: short + `.

The --date flag accepts YYYY-MM-DD, "today", "yesterday", a weekday name
("monday") or a "last-" prefixed weekday ("last-friday", "last-week").

Example:
  focusd ` + string(view) + ` --date yesterday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			ref := now
			if date != "" {
				parsed, err := dateutil.ParsePastDate(date, now)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				ref = parsed
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			d, err := svc.Fetch(cmd.Context(), usage.Request{View: view, Date: ref})
			if err != nil {
				return err
			}

			start, end := usage.Range(view, ref, now)
			printReport(a.out, usage.PeriodLabel(view, start, end, now), d)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to report on (default today)")
	return cmd
}

// printReport prints a title with the total followed by one bar row per
// application. Rows with a blank name are skipped.
func printReport(w io.Writer, title string, d *usage.Dashboard) {
	total := d.TotalSeconds
	fmt.Fprintf(w, "\n%s — %dh %dm\n\n", formatHeader(title), total/3600, (total%3600)/60)

	if len(d.Apps) == 0 {
		fmt.Fprintln(w, "No data found.")
		return
	}

	peak := usage.MaxSeconds(d.Apps)
	for _, e := range d.Apps {
		if strings.TrimSpace(e.Label) == "" {
			continue
		}
		filled := reportFill(e.Seconds, peak)
		fmt.Fprintf(w, "%s %s%s %s\n",
			padName(e.Label, reportNameWidth),
			colorBar.Sprint(strings.Repeat("█", filled)),
			colorMuted.Sprint(strings.Repeat("░", reportBarWidth-filled)),
			usage.FormatClock(e.Seconds))
	}
	fmt.Fprintln(w)
}

// reportFill is the number of filled cells, rounded down.
func reportFill(seconds, peak int64) int {
	if peak <= 0 || seconds <= 0 {
		return 0
	}
	filled := int(seconds * reportBarWidth / peak)
	if filled > reportBarWidth {
		return reportBarWidth
	}
	return filled
}

// padName pads name to width cells, or cuts it with an ellipsis.
func padName(name string, width int) string {
	w := ansi.StringWidth(name)
	if w > width {
		return ansi.Truncate(name, width, "…")
	}
	return name + strings.Repeat(" ", width-w)
}
