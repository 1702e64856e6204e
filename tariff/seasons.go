package tariff

import (
	"regexp"
	"strings"
)

var (
	// seasonHeaderRe recognizes the season header vocabulary seen across
	// vendor tariff sheets, e.g.
	//
	//	Peak Season Date - (15-APR TO 9-MAY)(1-JUN TO 14-JUN)
	//	Mid Season Date - (15-MAR TO 14-APR)
	//	Off Season Date : (6-JAN TO 14-MAR)
	//	Black Out Date : (10-MAY TO 31-MAY)
	seasonHeaderRe = regexp.MustCompile(`(?i)(?:[A-Za-z ]+Season Date|Black Out Date|Off Season Date)[^\n]*`)

	// parenGroupRe captures each parenthesized date-range group on a header
	// line. Ranges are kept raw; formats vary too much to parse calendars.
	parenGroupRe = regexp.MustCompile(`\(([^)]+)\)`)
)

// SplitSeasonBlocks scans OCR text for season/date header lines and
// partitions it into season-scoped blocks. Each header owns the text up to
// the next header (or end of input); the block's table is the first run of
// consecutive pipe-prefixed lines in that scope. Headers with no following
// table contribute nothing.
func SplitSeasonBlocks(text string) []SeasonBlock {
	locs := seasonHeaderRe.FindAllStringIndex(text, -1)
	var blocks []SeasonBlock
	for i, loc := range locs {
		header := strings.TrimSpace(text[loc[0]:loc[1]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		table := firstTableBlock(text[loc[1]:end])
		if table == "" {
			continue
		}

		blocks = append(blocks, SeasonBlock{
			Season:     seasonLabel(header),
			DateRanges: dateRanges(header),
			Table:      table,
		})
	}
	return blocks
}

// seasonLabel trims the header at the first '-' or ':' separator; what
// remains is the season name ("Off Season Date", "Black Out Date", ...).
func seasonLabel(header string) string {
	if i := strings.IndexAny(header, "-:"); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}

func dateRanges(header string) []string {
	var out []string
	for _, m := range parenGroupRe.FindAllStringSubmatch(header, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// dateRangeSepRe splits a raw date range into start and end tokens. Source
// sheets are inconsistent: en-dash, "TO", and spaced hyphens all occur.
var dateRangeSepRe = regexp.MustCompile(`–|(?i:\s+to\s+)|\s-\s`)

// splitDateRange returns the start and end tokens of a raw range. A range
// with no recognizable separator is repeated in both fields.
func splitDateRange(rng string) (start, end string) {
	rng = strings.TrimSpace(rng)
	if loc := dateRangeSepRe.FindStringIndex(rng); loc != nil {
		return strings.TrimSpace(rng[:loc[0]]), strings.TrimSpace(rng[loc[1]:])
	}
	return rng, rng
}
