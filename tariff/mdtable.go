package tariff

import (
	"log/slog"
	"regexp"
	"strings"
)

// separatorCellRe matches one cell of a markdown header separator line:
// dashes with optional alignment colons ("---", ":---", "---:", ":-:").
var separatorCellRe = regexp.MustCompile(`^:?-+:?$`)

// ParseTable parses one pipe-delimited markdown table block into ordered
// column-keyed records.
//
// Line 0 is the header. The separator is the first subsequent line whose
// cells are all dash/colon runs; if none is found, line 1 is assumed to be
// the separator. Every line after it is data. Short rows are right-padded
// with empty cells to the header length, long rows truncated, so every
// record carries exactly one value per header label. Fewer than two usable
// lines, or an empty header, yields nil.
//
// Duplicate header labels collide last-write-wins; callers wanting
// deterministic results must ensure unique headers.
func ParseTable(text string) []Row {
	return parseTable(text, slog.Default())
}

func parseTable(text string, logger *slog.Logger) []Row {
	lines := tableLines(text)
	if len(lines) < 2 {
		return nil
	}

	header := splitCells(lines[0])
	if len(header) == 0 {
		return nil
	}

	sep := 1
	for i := 1; i < len(lines); i++ {
		if isSeparatorLine(lines[i]) {
			sep = i
			break
		}
	}

	warned := false
	var rows []Row
	for _, line := range lines[sep+1:] {
		if isSeparatorLine(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) < len(header) {
			cells = append(cells, make([]string, len(header)-len(cells))...)
		} else if len(cells) > len(header) {
			cells = cells[:len(header)]
		}

		rec := make(Row, len(header))
		for i, label := range header {
			if _, dup := rec[label]; dup && !warned {
				logger.Warn("duplicate table header label, last value wins", "label", label)
				warned = true
			}
			rec[label] = cells[i]
		}
		rows = append(rows, rec)
	}
	return rows
}

// tableLines returns the trimmed lines of text that start with a pipe.
func tableLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "|") {
			out = append(out, line)
		}
	}
	return out
}

// splitCells splits a table line on pipes, dropping the empty fragments a
// leading/trailing pipe produces and trimming each cell. Interior empty
// cells are preserved: they are how merged cells appear in OCR output.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.HasPrefix(line, "|") {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.HasSuffix(line, "|") {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorLine(line string) bool {
	cells := splitCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

// firstTableBlock returns the first run of consecutive pipe-prefixed lines
// in text, or "" when text contains no table.
func firstTableBlock(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "|") {
			lines = append(lines, t)
			continue
		}
		if len(lines) > 0 {
			break
		}
	}
	return strings.Join(lines, "\n")
}
