package tariff

// Row is one flat output record. The key vocabulary is fixed (the Key*
// constants below) but which keys are present depends on the strategy that
// produced the row; callers must treat a missing key as absent, not as an
// empty value.
type Row map[string]string

// Canonical row keys. The narrative contract uses Plan where the strict
// grid uses Meal Plan, and Price where the narrative path splits into
// Room/Adult/Child prices; both spellings are part of the vocabulary.
const (
	KeyHotel        = "Hotel"
	KeyRoomCategory = "Room Category"
	KeyOccupancy    = "Occupancy"
	KeyMealPlan     = "Meal Plan"
	KeyPlan         = "Plan"
	KeySeason       = "Season"
	KeyStartDate    = "Start Date"
	KeyEndDate      = "End Date"
	KeyPrice        = "Price"
	KeyRoomPrice    = "Room Price"
	KeyAdultPrice   = "Adult Price"
	KeyChildPrice   = "Child Price"
)

// SeasonBlock is one season-scoped segment of OCR text: the season label,
// its raw parenthesized date ranges, and the first table found in the
// segment. Blocks are transient; they are consumed into rows immediately.
type SeasonBlock struct {
	Season     string
	DateRanges []string
	Table      string
}
