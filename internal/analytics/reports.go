package analytics

import (
	"log/slog"

	"market-report/internal/dataset"
)

// Reports is the output of one analysis pass over a snapshot.
type Reports struct {
	Classification []ClassifiedBrand `json:"classification"`
	Efficiency     []StateEfficiency `json:"efficiency"`
	Summary        []SegmentSummary  `json:"summary"`
	Skipped        *SkipTally        `json:"-"`
}

func Build(snap *dataset.Snapshot, logger *slog.Logger) *Reports {
	skips := NewSkipTally(logger)
	return &Reports{
		Classification: ClassifyBrands(snap.Brands, skips),
		Efficiency:     StateEfficiencies(snap.Independents, snap.Population, skips),
		Summary:        ExecutiveSummary(snap.Brands, skips),
		Skipped:        skips,
	}
}
