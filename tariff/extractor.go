package tariff

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Extractor runs the extraction strategy chain over OCR output.
type Extractor struct {
	logger     *slog.Logger
	ocr        OCRProvider
	recorder   Recorder
	strategies []strategy
}

// New creates an Extractor. When a narrative collaborator is configured it
// takes the place of the generic first-table fallback; the generic parse is
// only worth trying when no language model is available to do better.
func New(cfg Config) *Extractor {
	cfg.defaults()
	e := &Extractor{
		logger:   cfg.Logger,
		ocr:      cfg.OCR,
		recorder: cfg.Recorder,
	}
	e.strategies = []strategy{strictGrid{}, seasonGrids{}}
	if cfg.Narrative != nil {
		e.strategies = append(e.strategies, &narrativeTable{ext: cfg.Narrative})
	} else {
		e.strategies = append(e.strategies, genericTable{})
	}
	return e
}

// A strategy attempts to pull tariff rows out of OCR markdown. Returning
// zero rows, with or without an error, hands over to the next strategy.
type strategy interface {
	name() string
	attempt(ctx context.Context, e *Extractor, text string, doc Document) ([]Row, error)
}

// Extract runs OCR on doc and tries each strategy in order. Data-quality
// failures never surface as errors: a document that yields nothing returns
// an empty slice, and collaborator failures are logged and degraded to
// "stage produced no rows".
func (e *Extractor) Extract(ctx context.Context, doc Document) []Row {
	name := doc.BaseName()
	if e.ocr == nil {
		e.logger.Error("no OCR provider configured", "document", name)
		return nil
	}

	text, err := e.ocr.ExtractText(ctx, doc)
	if err != nil {
		e.logger.Error("ocr failed", "document", name, "error", err)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		e.logger.Info("ocr returned no usable text", "document", name)
		return nil
	}
	if e.recorder != nil {
		e.recorder.RecordOCRText(name, text)
	}

	return e.ExtractFromText(ctx, text, doc)
}

// ExtractFromText runs the strategy chain on already-OCRed markdown.
func (e *Extractor) ExtractFromText(ctx context.Context, text string, doc Document) []Row {
	name := doc.BaseName()
	start := time.Now()

	for _, s := range e.strategies {
		rows, err := s.attempt(ctx, e, text, doc)
		if err != nil {
			e.logger.Warn("extraction stage failed, trying next",
				"stage", s.name(), "document", name, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		e.logger.Info("tariff rows extracted",
			"stage", s.name(), "document", name, "rows", len(rows))
		if e.recorder != nil {
			e.recorder.RecordRun(name, s.name(), len(rows), time.Since(start))
		}
		return rows
	}

	e.logger.Info("no tariff rows extracted", "document", name)
	if e.recorder != nil {
		e.recorder.RecordRun(name, "none", 0, time.Since(start))
	}
	return nil
}

// --- strict grid ---

var (
	// strictGridRe is the signature of the vendor's canonical multi-season
	// grid: a "Room Category" header followed eventually by a MAP data row
	// with two numeric price columns.
	strictGridRe = regexp.MustCompile(`\|\s*Room Category\s*\|[\s\S]+?\|\s*MAP\s*\|\s*\d+\s*\|\s*\d+\s*\|`)

	// seasonColHeaderRe matches a season column header cell, e.g.
	// "Season A (1-JAN-31-MAR)". The date range is optional.
	seasonColHeaderRe = regexp.MustCompile(`^([A-Za-z][A-Za-z\- ]*)(?:\s*\(([^)]*)\))?`)
)

type strictGrid struct{}

func (strictGrid) name() string { return "strict_grid" }

// attempt parses the canonical grid: fixed room/occupancy/plan columns,
// one price column per season at index >= 3. Blank room and occupancy
// cells inherit the value above them (the merged-cell convention), and one
// output row is emitted per data row per season column.
func (strictGrid) attempt(_ context.Context, e *Extractor, text string, doc Document) ([]Row, error) {
	block := strictGridRe.FindString(text)
	if block == "" {
		return nil, nil
	}
	lines := tableLines(block)
	if len(lines) < 2 {
		return nil, nil
	}
	header := splitCells(lines[0])

	type seasonCol struct {
		idx              int
		name, start, end string
	}
	var cols []seasonCol
	for i, cell := range header {
		if i < 3 {
			continue
		}
		m := seasonColHeaderRe.FindStringSubmatch(cell)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			continue
		}
		start, end := splitDateRange(m[2])
		cols = append(cols, seasonCol{idx: i, name: strings.TrimSpace(m[1]), start: start, end: end})
	}
	if len(cols) == 0 {
		return nil, nil
	}

	dataStart := 1
	if dataStart < len(lines) && isSeparatorLine(lines[dataStart]) {
		dataStart = 2
	}

	hotel := doc.BaseName()
	var lastRoom, lastOcc string
	var rows []Row
	for _, line := range lines[dataStart:] {
		if isSeparatorLine(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) < 3 || cells[2] == "" {
			continue
		}
		if cells[0] != "" {
			lastRoom = cells[0]
		}
		if cells[1] != "" {
			lastOcc = cells[1]
		}
		plan := NormalizeMealPlan(cells[2])

		for _, sc := range cols {
			if sc.idx >= len(cells) {
				continue
			}
			rows = append(rows, Row{
				KeyHotel:        hotel,
				KeyRoomCategory: lastRoom,
				KeyOccupancy:    lastOcc,
				KeyMealPlan:     plan,
				KeySeason:       sc.name,
				KeyStartDate:    sc.start,
				KeyEndDate:      sc.end,
				KeyPrice:        cells[sc.idx],
			})
		}
	}
	return rows, nil
}

// --- season blocks ---

type seasonGrids struct{}

func (seasonGrids) name() string { return "season_blocks" }

func (seasonGrids) attempt(_ context.Context, e *Extractor, text string, doc Document) ([]Row, error) {
	hotel := doc.BaseName()
	var rows []Row
	for _, b := range SplitSeasonBlocks(text) {
		recs := parseTable(b.Table, e.logger)
		if len(recs) == 0 {
			continue
		}
		var start, end string
		if len(b.DateRanges) > 0 {
			start, end = splitDateRange(b.DateRanges[0])
		}
		for _, r := range recs {
			r[KeyHotel] = hotel
			r[KeySeason] = b.Season
			if start != "" {
				r[KeyStartDate] = start
				r[KeyEndDate] = end
			}
			normalizePlanKeys(r)
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// --- generic table ---

type genericTable struct{}

func (genericTable) name() string { return "generic_table" }

func (genericTable) attempt(_ context.Context, e *Extractor, text string, doc Document) ([]Row, error) {
	block := firstTableBlock(text)
	if block == "" {
		return nil, nil
	}
	recs := parseTable(block, e.logger)
	hotel := doc.BaseName()
	for _, r := range recs {
		r[KeyHotel] = hotel
		normalizePlanKeys(r)
	}
	return recs, nil
}

// --- narrative ---

// narrativeInstructions is the contract sent to the narrative collaborator.
// The fixed column order is what the row key vocabulary expects back.
const narrativeInstructions = "You are an expert at extracting hotel tariff tables from text. " +
	"Given the following text extracted from a hotel tariff PDF, output a markdown table with columns: " +
	"| Room Category | Plan | Start Date | End Date | Room Price | Adult Price | Child Price | Season |. " +
	"If there are multiple plans or date ranges, include all rows. " +
	"If possible, infer the season name (e.g. peakSeason, offSeason) from the text. " +
	"Merge extra bed and child-with-bed surcharges into the Adult Price and Child Price of the base row " +
	"instead of emitting separate rows. " +
	"Exclude rack prices and published rates. " +
	"Output only the markdown table, nothing else."

type narrativeTable struct {
	ext NarrativeExtractor
}

func (*narrativeTable) name() string { return "narrative" }

func (n *narrativeTable) attempt(ctx context.Context, e *Extractor, text string, doc Document) ([]Row, error) {
	md, err := n.ext.ExtractTable(ctx, text, narrativeInstructions)
	if err != nil {
		return nil, fmt.Errorf("narrative extraction: %w", err)
	}
	md = cleanNarrativeTable(md)
	if md == "" {
		return nil, nil
	}
	if e.recorder != nil {
		e.recorder.RecordNarrativeTable(doc.BaseName(), md)
	}

	recs := parseTable(firstTableBlock(md), e.logger)
	hotel := doc.BaseName()
	for _, r := range recs {
		r[KeyHotel] = hotel
		normalizePlanKeys(r)
	}
	return recs, nil
}

// normalizePlanKeys runs the meal-plan normalizer over whichever plan key a
// parsed record carries.
func normalizePlanKeys(r Row) {
	for _, k := range []string{KeyMealPlan, KeyPlan} {
		if v, ok := r[k]; ok {
			r[k] = NormalizeMealPlan(v)
		}
	}
}
