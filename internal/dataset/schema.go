package dataset

import "market-report/internal/database"

const (
	BrandsRelation       = "top250"
	IndependentsRelation = "ind100"
	PopulationRelation   = "state_population"
)

// Source column names, used verbatim as relation column names.
const (
	ColRestaurant      = "Restaurant"
	ColSegmentCategory = "Segment_Category"
	ColSales           = "Sales"
	ColUnits           = "Units"
	ColYOYSales        = "YOY_Sales"
	ColState           = "State"
	ColPopState        = "state"
	ColPopStateCode    = "state_code"
	ColPopCensus       = "2020_census"
)

func GetBrandSchema() database.Relation {
	return database.Relation{
		Name: BrandsRelation,
		Columns: []database.Column{
			{Name: ColRestaurant, Type: database.Text},
			{Name: ColSegmentCategory, Type: database.Text},
			{Name: ColSales, Type: database.Real},
			{Name: ColUnits, Type: database.Integer},
			{Name: ColYOYSales, Type: database.Text},
		},
	}
}

func GetIndependentSchema() database.Relation {
	return database.Relation{
		Name: IndependentsRelation,
		Columns: []database.Column{
			{Name: ColRestaurant, Type: database.Text},
			{Name: ColState, Type: database.Text},
			{Name: ColSales, Type: database.Real},
		},
	}
}

func GetPopulationSchema() database.Relation {
	return database.Relation{
		Name: PopulationRelation,
		Columns: []database.Column{
			{Name: ColPopState, Type: database.Text},
			{Name: ColPopStateCode, Type: database.Text},
			{Name: ColPopCensus, Type: database.Integer},
		},
	}
}

func RelationNames() []string {
	return []string{BrandsRelation, IndependentsRelation, PopulationRelation}
}

/*
Document structure when stored in MongoDB (one collection per relation):

top250:           { Restaurant: <string>, Segment_Category: <string>, Sales: <double>, Units: <long>, YOY_Sales: <string> }
ind100:           { Restaurant: <string>, State: <string>, Sales: <double> }
state_population: { state: <string>, state_code: <string>, 2020_census: <long> }

*/
