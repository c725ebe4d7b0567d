package analytics

import "testing"

func TestClassifyMarketStatus(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		auv     float64
		growth  float64
		want    MarketStatus
	}{
		{"steak above both thresholds", "Steak", 5001, 11, HighGrowthDisruptor},
		{"steak below auv threshold", "Steak", 4999, 11, StablePerformer},
		{"steak at auv threshold", "Steak", 5000, 11, StablePerformer},
		{"steak at growth threshold", "Steak", 9000, 10, StablePerformer},
		{"chicken above both thresholds", "Chicken", 1001, 10.5, HighGrowthDisruptor},
		{"chicken below auv threshold", "Chicken", 999, 50, StablePerformer},
		{"steak auv does not apply to chicken", "Chicken", 5001, 11, HighGrowthDisruptor},
		{"chicken auv does not apply to steak", "Steak", 1001, 11, StablePerformer},
		{"burger has no disruptor rule", "Burger", 100000, 99, StablePerformer},
		{"pizza has no disruptor rule", "Pizza", 100000, 99, StablePerformer},
		{"negative growth any segment", "Burger", 0, -5, AtRiskLaggard},
		{"negative growth regardless of auv", "Steak", 99999, -0.1, AtRiskLaggard},
		{"zero growth is stable", "Pizza", 800, 0, StablePerformer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMarketStatus(tt.segment, tt.auv, tt.growth); got != tt.want {
				t.Errorf("ClassifyMarketStatus(%q, %v, %v) = %q, want %q", tt.segment, tt.auv, tt.growth, got, tt.want)
			}
		})
	}
}

func TestClassifySummaryStatus(t *testing.T) {
	tests := []struct {
		growth float64
		want   MarketStatus
	}{
		{10.1, HighGrowthDisruptor},
		{10, StablePerformer},
		{0, StablePerformer},
		{-0.01, AtRiskLaggard},
	}
	for _, tt := range tests {
		if got := ClassifySummaryStatus(tt.growth); got != tt.want {
			t.Errorf("ClassifySummaryStatus(%v) = %q, want %q", tt.growth, got, tt.want)
		}
	}
}

func TestIsQualifyingSegment(t *testing.T) {
	for _, s := range []string{"Chicken", "Steak", "Burger", "Pizza"} {
		if !IsQualifyingSegment(s) {
			t.Errorf("%s should qualify", s)
		}
	}
	for _, s := range []string{"Seafood", "steak", "Quick Service & Burger", ""} {
		if IsQualifyingSegment(s) {
			t.Errorf("%q should not qualify", s)
		}
	}
}
