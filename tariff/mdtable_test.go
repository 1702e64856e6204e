package tariff

import (
	"testing"
)

func TestParseTable(t *testing.T) {
	text := `| Room | Plan | Price |
| --- | --- | --- |
| Deluxe | CP | 100 |
| Suite | MAP | 200 |`

	rows := ParseTable(text)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Room"] != "Deluxe" || rows[0]["Plan"] != "CP" || rows[0]["Price"] != "100" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1]["Room"] != "Suite" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
}

func TestParseTable_NoSeparator(t *testing.T) {
	// Without a dash separator, line 1 is assumed to be the separator and
	// is discarded.
	text := `| A | B |
| skipped | skipped |
| 1 | 2 |`

	rows := ParseTable(text)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["A"] != "1" || rows[0]["B"] != "2" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestParseTable_AlignmentSeparator(t *testing.T) {
	text := `| A | B |
| :--- | ---: |
| 1 | 2 |`

	rows := ParseTable(text)
	if len(rows) != 1 || rows[0]["A"] != "1" {
		t.Fatalf("alignment separator not recognized: %v", rows)
	}
}

func TestParseTable_PadAndTruncate(t *testing.T) {
	// Every record must carry exactly one value per header label: short
	// rows are padded, long rows truncated.
	text := `| A | B | C |
| --- | --- | --- |
| 1 |
| 1 | 2 | 3 | 4 | 5 |`

	rows := ParseTable(text)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if len(r) != 3 {
			t.Errorf("row %d: expected 3 fields, got %d: %v", i, len(r), r)
		}
	}
	if rows[0]["B"] != "" || rows[0]["C"] != "" {
		t.Errorf("short row not padded: %v", rows[0])
	}
	if rows[1]["C"] != "3" {
		t.Errorf("long row not truncated: %v", rows[1])
	}
}

func TestParseTable_InteriorEmptyCellsPreserved(t *testing.T) {
	// Blank interior cells encode merged cells and must keep their column.
	text := `| Room | Occ | Plan |
| --- | --- | --- |
|  | Double | MAP |`

	rows := ParseTable(text)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Room"] != "" || rows[0]["Occ"] != "Double" {
		t.Errorf("cell positions shifted: %v", rows[0])
	}
}

func TestParseTable_TooFewLines(t *testing.T) {
	for _, text := range []string{"", "| only header |", "no pipes at all\nstill none"} {
		if rows := ParseTable(text); rows != nil {
			t.Errorf("ParseTable(%q): expected nil, got %v", text, rows)
		}
	}
}

func TestParseTable_NonTableLinesIgnored(t *testing.T) {
	text := `Some heading

| A | B |
| --- | --- |
| 1 | 2 |

Trailing prose.`

	rows := ParseTable(text)
	if len(rows) != 1 || rows[0]["A"] != "1" {
		t.Fatalf("surrounding prose broke the parse: %v", rows)
	}
}

func TestParseTable_DuplicateHeaderLastWins(t *testing.T) {
	text := `| A | A |
| --- | --- |
| first | second |`

	rows := ParseTable(text)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["A"] != "second" {
		t.Errorf("expected last value to win, got %q", rows[0]["A"])
	}
}

func TestFirstTableBlock(t *testing.T) {
	text := `intro text
| A | B |
| --- | --- |
| 1 | 2 |

| C |
| --- |`

	block := firstTableBlock(text)
	lines := tableLines(block)
	if len(lines) != 3 {
		t.Fatalf("expected first 3-line table, got %q", block)
	}
	if firstTableBlock("no tables here") != "" {
		t.Error("expected empty block for table-free text")
	}
}
