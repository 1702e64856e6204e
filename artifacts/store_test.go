package artifacts

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/tariffpipe/tariff"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(dir, "out"), filepath.Join(dir, "runs.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordFiles(t *testing.T) {
	s := testStore(t)

	s.RecordOCRText("hotel", "# Page one")
	s.RecordNarrativeTable("hotel", "| A |\n| --- |\n| 1 |")

	data, err := os.ReadFile(filepath.Join(s.dir, "hotel_ocr.txt"))
	require.NoError(t, err)
	require.Equal(t, "# Page one", string(data))

	data, err = os.ReadFile(filepath.Join(s.dir, "hotel_llm_table.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "| A |")

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM artifact_files`).Scan(&count))
	require.Equal(t, 2, count)
}

func TestStore_RunJournal(t *testing.T) {
	s := testStore(t)

	s.RecordRun("hotel_a", "strict_grid", 12, 1500*time.Millisecond)
	s.RecordRun("hotel_b", "none", 0, 90*time.Millisecond)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byDoc := map[string]Run{}
	for _, r := range runs {
		require.NotEmpty(t, r.RunID)
		require.NotEmpty(t, r.CreatedAt)
		byDoc[r.Document] = r
	}
	require.Equal(t, "strict_grid", byDoc["hotel_a"].Strategy)
	require.Equal(t, 12, byDoc["hotel_a"].RowCount)
	require.Equal(t, int64(1500), byDoc["hotel_a"].DurationMS)
	require.Equal(t, 0, byDoc["hotel_b"].RowCount)
}

func TestStore_ListRunsLimit(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 5; i++ {
		s.RecordRun("doc", "generic_table", i, time.Millisecond)
	}
	runs, err := s.ListRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestWriteCSV(t *testing.T) {
	rows := []tariff.Row{
		{
			tariff.KeyHotel:        "grand_azure",
			tariff.KeyRoomCategory: "Deluxe",
			tariff.KeyOccupancy:    "Single",
			tariff.KeyMealPlan:     "CP",
			tariff.KeySeason:       "Season A",
			tariff.KeyStartDate:    "15-APR",
			tariff.KeyEndDate:      "9-MAY",
			tariff.KeyPrice:        "4000",
		},
		// Narrative rows carry "Plan" instead of "Meal Plan"; both land in
		// the same CSV column.
		{
			tariff.KeyHotel:     "grand_azure",
			tariff.KeyPlan:      "MAP",
			tariff.KeyRoomPrice: "7000",
		},
	}

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "Meal Plan")
	require.Contains(t, lines[1], "Deluxe")
	require.Contains(t, lines[1], "CP")
	require.Contains(t, lines[2], "MAP")
	require.Contains(t, lines[2], "7000")
}
