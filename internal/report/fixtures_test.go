package report

import (
	"io"
	"log/slog"

	"market-report/internal/analytics"
	"market-report/internal/dataset"
)

func testReports() *analytics.Reports {
	skips := analytics.NewSkipTally(slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := analytics.ParseGrowth("n/a")
	skips.Add(analytics.ReportClassification, "Mystery Burger", err)

	return &analytics.Reports{
		Classification: []analytics.ClassifiedBrand{
			{
				BrandRecord:  dataset.BrandRecord{Restaurant: "Chick-fil-A", SegmentCategory: "Chicken", Sales: 11320, Units: 2470, YOYSales: "13.0%"},
				AUVThousands: 4583.0,
				YOYGrowth:    13,
				MarketStatus: analytics.HighGrowthDisruptor,
			},
			{
				BrandRecord:  dataset.BrandRecord{Restaurant: "KFC", SegmentCategory: "Chicken", Sales: 4547, Units: 3943, YOYSales: "-1.2%"},
				AUVThousands: 1153.25,
				YOYGrowth:    -1.2,
				MarketStatus: analytics.AtRiskLaggard,
			},
		},
		Efficiency: []analytics.StateEfficiency{
			{StateName: "New York", Population: 20201249, TotalSales: 92896515, DollarsPerPerson: 4.6},
		},
		Summary: []analytics.SegmentSummary{
			{SegmentCategory: "Steak", MarketStatus: analytics.HighGrowthDisruptor, BrandCount: 2},
			{SegmentCategory: "Steak", MarketStatus: analytics.AtRiskLaggard, BrandCount: 1},
		},
		Skipped: skips,
	}
}
