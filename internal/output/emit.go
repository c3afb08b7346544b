// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/linkctl/internal/config"
	"github.com/staranto/linkctl/internal/links"
)

// Formats lists the accepted --output values.
var Formats = []string{"html", "text", "json", "yaml"}

// Options tweak text output.
type Options struct {
	Color  bool
	Titles bool
}

// Emit writes records to w in the named format.
func Emit(w io.Writer, records []links.Record, format string, opts Options) error {
	if records == nil {
		records = []links.Record{}
	}

	switch format {
	case "html", "":
		return RenderHTML(w, records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		out, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "text":
		TableWriter(records, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// IsTerminal reports whether w is an interactive terminal, which is when
// colored text is turned on by default.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TableWriter renders the records as a name/url table honoring color,
// titles and padding options.
func TableWriter(records []links.Record, opts Options, w io.Writer) {
	if len(records) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, r.URL})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		t = t.Headers("name", "url").BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
