package display

import (
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/teranos/zappy/api"
	"github.com/teranos/zappy/errors"
)

const (
	// DefaultTableWidth bounds the rendered request table, separators included
	DefaultTableWidth = 120

	// CreatedAtLayout renders timestamps as "January 05, 2024, 10:00:00"
	CreatedAtLayout = "January 02, 2006, 15:04:05"

	columnSeparator = " | "
)

// RequestLogHeaders are the request table columns, in order
var RequestLogHeaders = []string{"IP", "User Agent", "User ID", "Referer", "Created At"}

// RequestTable renders request log entries as a text table no wider than MaxWidth.
// Columns keep their natural width when everything fits; otherwise the widest
// columns shrink first and their cells wrap onto continuation lines.
type RequestTable struct {
	MaxWidth int
	// Color keeps pterm's header and separator styling. Off by default so
	// redirected output stays plain text.
	Color bool
	// Location is assumed for timestamps that carry no zone. Output is always UTC.
	Location *time.Location
}

// NewRequestTable creates a renderer bounded to maxWidth columns (0 = DefaultTableWidth)
func NewRequestTable(maxWidth int) *RequestTable {
	if maxWidth <= 0 {
		maxWidth = DefaultTableWidth
	}
	return &RequestTable{MaxWidth: maxWidth, Location: time.Local}
}

// FormatCreatedAt parses a service timestamp in any format dateparse understands and
// reformats it in UTC with CreatedAtLayout
func FormatCreatedAt(raw string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(raw), loc)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse date %q", raw)
	}
	return t.UTC().Format(CreatedAtLayout), nil
}

// Rows converts entries to table cells in input order.
// One unparseable CreatedAt fails the whole conversion.
func (t *RequestTable) Rows(entries []api.RequestLogEntry) ([][]string, error) {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		createdAt, err := FormatCreatedAt(entry.CreatedAt, t.Location)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d", i+1)
		}
		rows = append(rows, []string{entry.IP, entry.UserAgent, entry.UserID, entry.Referer, createdAt})
	}
	return rows, nil
}

// Render returns the table for entries, or an error if any timestamp is unparseable
func (t *RequestTable) Render(entries []api.RequestLogEntry) (string, error) {
	rows, err := t.Rows(entries)
	if err != nil {
		return "", err
	}

	widths := fitColumns(naturalWidths(RequestLogHeaders, rows), t.MaxWidth-tableOverhead(len(RequestLogHeaders)))

	data := pterm.TableData{}
	data = append(data, wrapRow(RequestLogHeaders, widths)...)
	headerLines := len(data)
	for _, row := range rows {
		data = append(data, wrapRow(row, widths)...)
	}

	out, err := pterm.DefaultTable.
		WithHasHeader(headerLines == 1).
		WithSeparator(columnSeparator).
		WithData(data).
		Srender()
	if err != nil {
		return "", errors.Wrap(err, "failed to render table")
	}
	if !t.Color {
		out = pterm.RemoveColorFromString(out)
	}
	return strings.TrimRight(out, "\n"), nil
}

// RenderRequestLog writes the request table for entries to w, colored only when w is a terminal.
// Nothing is written if rendering fails.
func RenderRequestLog(w io.Writer, entries []api.RequestLogEntry, maxWidth int) error {
	table := NewRequestTable(maxWidth)
	table.Color = IsTerminal(w)
	out, err := table.Render(entries)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// tableOverhead is the width taken by separators between n columns
func tableOverhead(n int) int {
	if n <= 1 {
		return 0
	}
	return (n - 1) * runewidth.StringWidth(columnSeparator)
}

// naturalWidths returns the widest line per column over headers and rows
func naturalWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i, cell := range cells {
			for _, line := range strings.Split(cell, "\n") {
				if w := runewidth.StringWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

// fitColumns shrinks the widest column one cell at a time until the total fits budget.
// No column goes below 1.
func fitColumns(natural []int, budget int) []int {
	widths := append([]int(nil), natural...)
	total := 0
	for _, w := range widths {
		total += w
	}

	for total > budget {
		widest := -1
		for i, w := range widths {
			if w > 1 && (widest == -1 || w > widths[widest]) {
				widest = i
			}
		}
		if widest == -1 {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

// wrapRow hard-wraps each cell to its column width and spreads the result over
// as many physical rows as the tallest cell needs
func wrapRow(cells []string, widths []int) [][]string {
	wrapped := make([][]string, len(cells))
	height := 1
	for i, cell := range cells {
		wrapped[i] = strings.Split(runewidth.Wrap(cell, widths[i]), "\n")
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}

	lines := make([][]string, height)
	for l := range lines {
		lines[l] = make([]string, len(cells))
		for i := range cells {
			if l < len(wrapped[i]) {
				lines[l][i] = wrapped[i][l]
			}
		}
	}
	return lines
}
