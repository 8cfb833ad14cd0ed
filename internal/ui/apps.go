package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/revanthlol/focusd/internal/usage"
)

func (a *App) appsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List tracked applications",
		Long: `List every application focusd has seen, with its alias, the last window
title and the total focused time.

Aliases come from the [alias] table of the config file:

  [alias]
  "org.mozilla.firefox" = "Firefox"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			apps, err := svc.Apps(cmd.Context())
			if err != nil {
				return err
			}
			printApps(a.out, apps, termWidth())
			return nil
		},
	}
}

// printApps prints one line per app, fitting titles to width.
func printApps(w io.Writer, apps []usage.AppInfo, width int) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications tracked yet.")
		return
	}

	idW := len("APP")
	nameW := len("NAME")
	for _, app := range apps {
		idW = max(idW, len([]rune(app.AppID)))
		nameW = max(nameW, len([]rune(app.DisplayName)))
	}
	idW = min(idW, 30)
	nameW = min(nameW, 20)

	fmt.Fprintln(w, formatHeader(fmt.Sprintf("%s  %s  %-11s  %s",
		padName("APP", idW), padName("NAME", nameW), "TOTAL", "LAST TITLE")))

	titleW := width - idW - nameW - 11 - 6
	for _, app := range apps {
		name := app.DisplayName
		if name == app.AppID {
			name = "-"
		}
		title := ""
		if titleW > 0 {
			title = ansi.Truncate(app.LastTitle, titleW, "…")
		}
		fmt.Fprintf(w, "%s  %s  %-11s  %s\n",
			padName(app.AppID, idW),
			padName(name, nameW),
			usage.FormatClock(app.Seconds),
			formatMuted(title))
	}
}
