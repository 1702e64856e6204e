package artifacts

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/hazyhaar/tariffpipe/tariff"
)

// csvRow is the flat CSV projection of a tariff row. The strict-grid and
// narrative paths use different plan column names; Plan folds into Meal
// Plan here so the CSV always has one plan column.
type csvRow struct {
	Hotel        string `csv:"Hotel"`
	RoomCategory string `csv:"Room Category"`
	Occupancy    string `csv:"Occupancy"`
	MealPlan     string `csv:"Meal Plan"`
	Season       string `csv:"Season"`
	StartDate    string `csv:"Start Date"`
	EndDate      string `csv:"End Date"`
	Price        string `csv:"Price"`
	RoomPrice    string `csv:"Room Price"`
	AdultPrice   string `csv:"Adult Price"`
	ChildPrice   string `csv:"Child Price"`
}

// WriteCSV writes rows to path as CSV with the canonical column set.
func WriteCSV(path string, rows []tariff.Row) error {
	recs := make([]csvRow, 0, len(rows))
	for _, r := range rows {
		plan := r[tariff.KeyMealPlan]
		if plan == "" {
			plan = r[tariff.KeyPlan]
		}
		recs = append(recs, csvRow{
			Hotel:        r[tariff.KeyHotel],
			RoomCategory: r[tariff.KeyRoomCategory],
			Occupancy:    r[tariff.KeyOccupancy],
			MealPlan:     plan,
			Season:       r[tariff.KeySeason],
			StartDate:    r[tariff.KeyStartDate],
			EndDate:      r[tariff.KeyEndDate],
			Price:        r[tariff.KeyPrice],
			RoomPrice:    r[tariff.KeyRoomPrice],
			AdultPrice:   r[tariff.KeyAdultPrice],
			ChildPrice:   r[tariff.KeyChildPrice],
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&recs, f); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
