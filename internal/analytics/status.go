package analytics

type MarketStatus string

const (
	HighGrowthDisruptor MarketStatus = "High-Growth Disruptor"
	AtRiskLaggard       MarketStatus = "At-Risk Laggard"
	StablePerformer     MarketStatus = "Stable Performer"
)

const (
	steakAUVThreshold        = 5000.0
	chickenAUVThreshold      = 1000.0
	disruptorGrowthThreshold = 10.0
)

// QualifyingSegments are the only segments reported on. Matching is exact.
var QualifyingSegments = []string{"Chicken", "Steak", "Burger", "Pizza"}

func IsQualifyingSegment(segment string) bool {
	for _, s := range QualifyingSegments {
		if s == segment {
			return true
		}
	}
	return false
}

func isSteakDisruptor(segment string, auv, growth float64) bool {
	return segment == "Steak" && auv > steakAUVThreshold && growth > disruptorGrowthThreshold
}

func isChickenDisruptor(segment string, auv, growth float64) bool {
	return segment == "Chicken" && auv > chickenAUVThreshold && growth > disruptorGrowthThreshold
}

func isLaggard(growth float64) bool {
	return growth < 0
}

// ClassifyMarketStatus applies the brand rules in order, first match wins.
// Burger and Pizza have no disruptor threshold and can only be laggards or
// stable performers.
func ClassifyMarketStatus(segment string, auv, growth float64) MarketStatus {
	switch {
	case isSteakDisruptor(segment, auv, growth):
		return HighGrowthDisruptor
	case isChickenDisruptor(segment, auv, growth):
		return HighGrowthDisruptor
	case isLaggard(growth):
		return AtRiskLaggard
	default:
		return StablePerformer
	}
}

// ClassifySummaryStatus is the coarser rule set of the executive summary. It
// ignores segment and AUV, so it labels more brands as disruptors than
// ClassifyMarketStatus does.
func ClassifySummaryStatus(growth float64) MarketStatus {
	switch {
	case growth > disruptorGrowthThreshold:
		return HighGrowthDisruptor
	case isLaggard(growth):
		return AtRiskLaggard
	default:
		return StablePerformer
	}
}
