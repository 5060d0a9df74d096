package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"raspview/internal/structs"
)

// TextRenderer prints the table to a terminal, highlighting blocked calls in
// red and calls made from eval'd code in yellow.
// Colours are only emitted when w is a terminal.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (r *TextRenderer) Render(w io.Writer, p *structs.Page) error {
	re := lipgloss.NewRenderer(w)

	styleHeader := re.NewStyle().Bold(true).Underline(true)
	styleNotice := re.NewStyle().Faint(true)
	styleBlocked := re.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleEval := re.NewStyle().Foreground(lipgloss.Color("220"))                // yellow
	styleRow := re.NewStyle()

	if !p.Exists {
		_, err := fmt.Fprintln(w, styleNotice.Render(structs.NoLogsNotice))
		return err
	}

	rows := p.Rows()
	widths := make([]int, len(structs.Columns))
	for i, c := range structs.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row.Cells() {
			if n := lipgloss.Width(cleanCell(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if _, err := fmt.Fprintln(w, formatLine(structs.Columns, widths, styleHeader)); err != nil {
		return err
	}
	for _, row := range rows {
		style := styleRow
		switch {
		case row.WasBlocked == structs.Yes:
			style = styleBlocked
		case row.IsEval == structs.Yes:
			style = styleEval
		}
		if _, err := fmt.Fprintln(w, formatLine(row.Cells(), widths, style)); err != nil {
			return err
		}
	}

	if p.Skipped > 0 {
		_, err := fmt.Fprintln(w, styleNotice.Render(fmt.Sprintf("%d line(s) could not be decoded", p.Skipped)))
		return err
	}
	return nil
}

func formatLine(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		cell = cleanCell(cell)
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return style.Render(strings.TrimRight(strings.Join(parts, "  "), " "))
}

// cleanCell keeps one entry on one terminal line and drops control
// characters that a hostile log line could use to rewrite the terminal.
func cleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\r', r == '\t':
			return ' '
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, s)
}
