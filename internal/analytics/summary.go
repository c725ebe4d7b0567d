package analytics

import (
	"sort"

	"market-report/internal/dataset"
)

type SegmentSummary struct {
	SegmentCategory string       `json:"Segment_Category"`
	MarketStatus    MarketStatus `json:"Market_Status"`
	BrandCount      int          `json:"Brand_Count"`
}

// ExecutiveSummary counts brands per segment and summary status. Units play
// no part here, so a brand with zero units is still counted.
func ExecutiveSummary(brands []dataset.BrandRecord, skips *SkipTally) []SegmentSummary {
	type key struct {
		segment string
		status  MarketStatus
	}
	counts := make(map[key]int)
	for _, b := range brands {
		if !IsQualifyingSegment(b.SegmentCategory) {
			continue
		}
		growth, err := ParseGrowth(b.YOYSales)
		if err != nil {
			skips.Add(ReportSummary, b.Restaurant, err)
			continue
		}
		counts[key{b.SegmentCategory, ClassifySummaryStatus(growth)}]++
	}

	out := make([]SegmentSummary, 0, len(counts))
	for k, n := range counts {
		out = append(out, SegmentSummary{SegmentCategory: k.segment, MarketStatus: k.status, BrandCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SegmentCategory != out[j].SegmentCategory {
			return out[i].SegmentCategory < out[j].SegmentCategory
		}
		if out[i].BrandCount != out[j].BrandCount {
			return out[i].BrandCount > out[j].BrandCount
		}
		return out[i].MarketStatus < out[j].MarketStatus
	})
	return out
}
