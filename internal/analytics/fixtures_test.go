package analytics

import (
	"io"
	"log/slog"

	"market-report/internal/dataset"
)

func quietSkips() *SkipTally {
	return NewSkipTally(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testBrands() []dataset.BrandRecord {
	return []dataset.BrandRecord{
		{Restaurant: "Texas Roadhouse", SegmentCategory: "Steak", Sales: 3461, Units: 611, YOYSales: "12.1%"},
		{Restaurant: "LongHorn Steakhouse", SegmentCategory: "Steak", Sales: 2400, Units: 560, YOYSales: "11%"},
		{Restaurant: "Outback Steakhouse", SegmentCategory: "Steak", Sales: 2100, Units: 580, YOYSales: "-2.3%"},
		{Restaurant: "Chick-fil-A", SegmentCategory: "Chicken", Sales: 11320, Units: 2470, YOYSales: "13.0%"},
		{Restaurant: "Popeyes", SegmentCategory: "Chicken", Sales: 4275, Units: 2754, YOYSales: "8.2%"},
		{Restaurant: "KFC", SegmentCategory: "Chicken", Sales: 4547, Units: 3943, YOYSales: "-1.2%"},
		{Restaurant: "Wingstop", SegmentCategory: "Chicken", Sales: 1500, Units: 1700, YOYSales: "25%"},
		{Restaurant: "Five Guys", SegmentCategory: "Burger", Sales: 1900, Units: 1400, YOYSales: "15%"},
		{Restaurant: "Pizza Hut", SegmentCategory: "Pizza", Sales: 5380, Units: 6561, YOYSales: "-3.0%"},
		{Restaurant: "Red Lobster", SegmentCategory: "Seafood", Sales: 2456, Units: 669, YOYSales: "-1.8%"},
		{Restaurant: "Ghost Kitchen", SegmentCategory: "Pizza", Sales: 100, Units: 0, YOYSales: "5%"},
		{Restaurant: "Mystery Burger", SegmentCategory: "Burger", Sales: 300, Units: 100, YOYSales: "n/a"},
	}
}

func testIndependents() []dataset.IndependentRecord {
	return []dataset.IndependentRecord{
		{Restaurant: "Carmine's (Times Square)", State: "NY", Sales: 39080335},
		{Restaurant: "The Boathouse Orlando", State: "FL", Sales: 35218364},
		{Restaurant: "Old Ebbitt Grill", State: "DC", Sales: 29104017},
		{Restaurant: "LAVO Italian Restaurant & Nightclub", State: "NY", Sales: 26916180},
		{Restaurant: "Bryant Park Grill & Cafe", State: "NY", Sales: 26900000},
		{Restaurant: "Gibsons Bar & Steakhouse", State: "IL", Sales: 25100000},
	}
}

func testPopulation() []dataset.PopulationRecord {
	return []dataset.PopulationRecord{
		{State: "California", StateCode: "CA", Census2020: 39538223},
		{State: "Texas", StateCode: "TX", Census2020: 29145505},
		{State: "Florida", StateCode: "FL", Census2020: 21538187},
		{State: "New York", StateCode: "NY", Census2020: 20201249},
		{State: "Illinois", StateCode: "IL", Census2020: 12812508},
	}
}
