package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revanthlol/focusd/internal/config"
	"github.com/revanthlol/focusd/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  focusd config`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := a.cfgPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(bufio.NewReader(a.in), a.out, path)
		},
	}
}

func runConfigInteractive(reader *bufio.Reader, w io.Writer, configPath string) error {
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	printConfig(w, cfg)

	if !promptYesNo(reader, w, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Interval = promptInt(reader, w, "Sample interval (seconds)", cfg.Interval)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, w, cfg.UI.Theme)
	cfg.UI.RefreshMS = promptInt(reader, w, "Dashboard refresh (ms)", cfg.UI.RefreshMS)
	cfg.UI.Quote = promptValue(reader, w, "Quote", cfg.UI.Quote)
	cfg.Server.Addr = promptValue(reader, w, "Server address", cfg.Server.Addr)
	cfg.Log.Level = promptValue(reader, w, "Log level", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintf(w, "interval           = %d\n", cfg.Interval)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  refresh_ms       = %d\n", cfg.UI.RefreshMS)
	fmt.Fprintf(w, "  quote            = %q\n", cfg.UI.Quote)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr             = %s\n", cfg.Server.Addr)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file             = %s\n", cfg.Log.File)
	}
	if len(cfg.Alias) > 0 {
		fmt.Fprintln(w, "\n[alias]")
		ids := make([]string, 0, len(cfg.Alias))
		for id := range cfg.Alias {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "  %q = %q\n", id, cfg.Alias[id])
		}
	}
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
