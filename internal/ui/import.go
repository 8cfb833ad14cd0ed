package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/revanthlol/focusd/internal/usage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func (a *App) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print all recorded usage",
		Long: `Print every (date, app, seconds) row in the database, newest first.

Example:
  focusd export > backup.json
  focusd export --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			rows, err := a.repo.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("exporting usage: %w", err)
			}
			return writeExport(a.out, rows, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")
	return cmd
}

// writeExport writes rows as indented JSON or YAML.
func writeExport(w io.Writer, rows []usage.ExportEntry, format string) error {
	if rows == nil {
		rows = []usage.ExportEntry{}
	}
	switch strings.ToLower(format) {
	case formatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge an export file into the database",
		Long: `Add the rows of a file written by "focusd export" to the current database.
Seconds are added to any existing totals for the same app and day. The
import is all-or-nothing: one invalid row rejects the whole file.

Files ending in .yaml or .yml are read as YAML, anything else as JSON.

Example:
  focusd import backup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			count, err := importFile(cmd.Context(), a.repo, path)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %d rows from %s\n", count, path)
			return nil
		},
	}

	return cmd
}

func importFile(ctx context.Context, dest usage.Repository, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("import file does not exist: %s", path)
		}
		return 0, fmt.Errorf("checking import file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("import path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	rows, err := decodeExport(data, filepath.Ext(path))
	if err != nil {
		return 0, err
	}

	if err := dest.Import(ctx, rows); err != nil {
		return 0, fmt.Errorf("importing usage: %w", err)
	}
	return len(rows), nil
}

func decodeExport(data []byte, ext string) ([]usage.ExportEntry, error) {
	var rows []usage.ExportEntry
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&rows); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	}
	return rows, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
