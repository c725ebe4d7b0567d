package analytics

import (
	"sort"

	"market-report/internal/dataset"
)

type ClassifiedBrand struct {
	dataset.BrandRecord
	AUVThousands float64      `json:"AUV_Thousands"`
	YOYGrowth    float64      `json:"YOY_Growth"`
	MarketStatus MarketStatus `json:"Market_Status"`
}

// ClassifyBrand derives AUV, growth and market status for one brand. A zero
// Units count is checked before the growth string is parsed.
func ClassifyBrand(b dataset.BrandRecord) (ClassifiedBrand, error) {
	auv, err := AUV(b.Sales, b.Units)
	if err != nil {
		return ClassifiedBrand{}, err
	}
	growth, err := ParseGrowth(b.YOYSales)
	if err != nil {
		return ClassifiedBrand{}, err
	}
	return ClassifiedBrand{
		BrandRecord:  b,
		AUVThousands: auv,
		YOYGrowth:    growth,
		MarketStatus: ClassifyMarketStatus(b.SegmentCategory, auv, growth),
	}, nil
}

// ClassifyBrands classifies the brands of the qualifying segments, ordered by
// segment and then by growth, highest first. Rows that fail to classify are
// recorded in skips and left out.
func ClassifyBrands(brands []dataset.BrandRecord, skips *SkipTally) []ClassifiedBrand {
	out := make([]ClassifiedBrand, 0, len(brands))
	for _, b := range brands {
		if !IsQualifyingSegment(b.SegmentCategory) {
			continue
		}
		c, err := ClassifyBrand(b)
		if err != nil {
			skips.Add(ReportClassification, b.Restaurant, err)
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SegmentCategory != out[j].SegmentCategory {
			return out[i].SegmentCategory < out[j].SegmentCategory
		}
		if out[i].YOYGrowth != out[j].YOYGrowth {
			return out[i].YOYGrowth > out[j].YOYGrowth
		}
		return out[i].Restaurant < out[j].Restaurant
	})
	return out
}
