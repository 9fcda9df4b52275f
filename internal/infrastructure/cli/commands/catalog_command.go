package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/app"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/cli/helpers"
)

// NewListCommand creates the catalog listing command
func NewListCommand(container *app.Container) *cobra.Command {
	var (
		limit int
		query string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved samples, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Catalog == nil {
				return errors.New(ErrCatalogUnavailable)
			}
			entries, err := container.Catalog.Entries(limit, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, MsgNoSamplesRecorded)
				return nil
			}
			renderEntries(out, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultListLimit, "Maximum entries to show")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show samples whose name or package contains this text")
	return cmd
}

func renderEntries(out io.Writer, entries []domain.CatalogEntry) {
	fmt.Fprintf(out, "%s  %s  %5s  %s  %s\n",
		helpers.Pad("NAME", nameColumnWidth),
		helpers.Pad("SAVED", ageColumnWidth),
		"NODES",
		helpers.Pad("PACKAGE", packageColumnWidth),
		"PATH")
	for _, e := range entries {
		pkg := e.Package
		if pkg == "" {
			pkg = "-"
		}
		fmt.Fprintf(out, "%s  %s  %5d  %s  %s\n",
			helpers.Pad(e.Name, nameColumnWidth),
			helpers.Pad(helpers.Age(e.CreatedAt), ageColumnWidth),
			e.NodeCount,
			helpers.Pad(pkg, packageColumnWidth),
			e.Path)
	}
}

// NewLastCommand creates the command printing the most recent sample path
func NewLastCommand(container *app.Container) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Print the path of the most recently saved sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := container.Session.LastSaved()
			if path == "" {
				fmt.Fprintln(out, MsgNoSamplesRecorded)
				return nil
			}
			fmt.Fprintln(out, path)
			if copyToClipboard {
				copyPath(out, container, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the path to the clipboard")
	return cmd
}

// NewShowCommand creates the command printing a saved sample
func NewShowCommand(container *app.Container) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved sample's metadata and locator code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveSampleDir(container, args[0])
			if err != nil {
				return err
			}
			return showSample(cmd.OutOrStdout(), dir, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print code.txt without syntax highlighting")
	return cmd
}

// resolveSampleDir finds a sample by catalog name, falling back to a
// directory of that name under the output root.
func resolveSampleDir(container *app.Container, name string) (string, error) {
	if container.Catalog != nil {
		entry, err := container.Catalog.Lookup(name)
		switch {
		case err == nil:
			return entry.Path, nil
		case !errors.Is(err, domain.ErrNotFound):
			return "", err
		}
	}
	dir := filepath.Join(container.Session.OutputRoot, name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("sample %q: %w", name, domain.ErrNotFound)
	}
	return dir, nil
}

func showSample(out io.Writer, dir string, plain bool) error {
	raw, err := os.ReadFile(filepath.Join(dir, domain.FileMeta))
	if err != nil {
		return fmt.Errorf("read %s: %w", domain.FileMeta, err)
	}
	var meta domain.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return fmt.Errorf("parse %s: %w", domain.FileMeta, err)
	}

	fmt.Fprintf(out, "Path:     %s\n", dir)
	fmt.Fprintf(out, "Taken:    %s (%s)\n", meta.Time.Format(domain.TimestampFormat), helpers.Age(meta.Time))
	fmt.Fprintf(out, "Mode:     %s %s\n", meta.Mode, meta.Rect)
	if meta.Package != "" {
		fmt.Fprintf(out, "App:      %s %s\n", meta.Package, meta.Activity)
	}
	fmt.Fprintf(out, "Device:   %s %s %dx%d\n", meta.Device.Brand, meta.Device.Model, meta.Device.Width, meta.Device.Height)
	for _, w := range warningLines(meta.Warnings) {
		fmt.Fprintf(out, "Warning:  %s\n", w)
	}
	fmt.Fprintf(out, "Files:    %s\n", artifactSizes(dir))
	fmt.Fprintln(out)

	code, err := os.ReadFile(filepath.Join(dir, domain.FileCode))
	if err != nil {
		return fmt.Errorf("read %s: %w", domain.FileCode, err)
	}
	if plain {
		_, err = out.Write(code)
		return err
	}
	if err := quick.Highlight(out, string(code), "javascript", "terminal256", "monokai"); err != nil {
		_, err = out.Write(code)
		return err
	}
	return nil
}

func artifactSizes(dir string) string {
	var s string
	for _, name := range []string{domain.FileScreen, domain.FileCrop, domain.FileNodes, domain.FileCode, domain.FileTreeFlat} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += name + " " + helpers.Size(info.Size())
	}
	if s == "" {
		return "-"
	}
	return s
}

