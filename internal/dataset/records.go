package dataset

import "market-report/internal/database"

// BrandRecord is one row of the ranked brand list. Sales is in thousands.
type BrandRecord struct {
	Restaurant      string  `json:"Restaurant"`
	SegmentCategory string  `json:"Segment_Category"`
	Sales           float64 `json:"Sales"`
	Units           int64   `json:"Units"`
	YOYSales        string  `json:"YOY_Sales"`
}

// IndependentRecord is one independent restaurant. State holds the
// normalized code once the record has passed through the loader.
type IndependentRecord struct {
	Restaurant string  `json:"Restaurant"`
	State      string  `json:"State"`
	Sales      float64 `json:"Sales"`
}

type PopulationRecord struct {
	State      string `json:"state"`
	StateCode  string `json:"state_code"`
	Census2020 int64  `json:"2020_census"`
}

func (r BrandRecord) Tuple() database.Tuple {
	return database.Tuple{r.Restaurant, r.SegmentCategory, r.Sales, r.Units, r.YOYSales}
}

func (r IndependentRecord) Tuple() database.Tuple {
	return database.Tuple{r.Restaurant, r.State, r.Sales}
}

func (r PopulationRecord) Tuple() database.Tuple {
	return database.Tuple{r.State, r.StateCode, r.Census2020}
}

func tuplesOf[T interface{ Tuple() database.Tuple }](records []T) []database.Tuple {
	out := make([]database.Tuple, len(records))
	for i, r := range records {
		out[i] = r.Tuple()
	}
	return out
}

func ParseBrands(t *Table) ([]BrandRecord, error) {
	cols, err := t.Require(ColRestaurant, ColSegmentCategory, ColSales, ColUnits, ColYOYSales)
	if err != nil {
		return nil, err
	}

	out := make([]BrandRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		sales, err := t.Float(i, cols[2])
		if err != nil {
			return nil, err
		}
		units, err := t.Int(i, cols[3])
		if err != nil {
			return nil, err
		}
		out = append(out, BrandRecord{
			Restaurant:      row[cols[0]],
			SegmentCategory: row[cols[1]],
			Sales:           sales,
			Units:           units,
			YOYSales:        row[cols[4]],
		})
	}
	return out, nil
}

// ParseIndependents decodes the independent restaurant table, normalizing
// every State value.
func ParseIndependents(t *Table) ([]IndependentRecord, error) {
	cols, err := t.Require(ColRestaurant, ColState, ColSales)
	if err != nil {
		return nil, err
	}

	out := make([]IndependentRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		sales, err := t.Float(i, cols[2])
		if err != nil {
			return nil, err
		}
		out = append(out, IndependentRecord{
			Restaurant: row[cols[0]],
			State:      NormalizeState(row[cols[1]]),
			Sales:      sales,
		})
	}
	return out, nil
}

func ParsePopulation(t *Table) ([]PopulationRecord, error) {
	cols, err := t.Require(ColPopState, ColPopStateCode, ColPopCensus)
	if err != nil {
		return nil, err
	}

	out := make([]PopulationRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		census, err := t.Int(i, cols[2])
		if err != nil {
			return nil, err
		}
		out = append(out, PopulationRecord{
			State:      row[cols[0]],
			StateCode:  row[cols[1]],
			Census2020: census,
		})
	}
	return out, nil
}
