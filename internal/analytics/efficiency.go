package analytics

import (
	"sort"

	"market-report/internal/dataset"
)

type StateEfficiency struct {
	StateName        string  `json:"State_Name"`
	Population       int64   `json:"Population"`
	TotalSales       float64 `json:"Total_Sales"`
	DollarsPerPerson float64 `json:"Dollars_Per_Person"`
}

// StateEfficiencies joins independent restaurant sales to state population on
// state code and reports spend per resident. Restaurants whose state has no
// population row are dropped without being counted as skips.
func StateEfficiencies(independents []dataset.IndependentRecord, population []dataset.PopulationRecord, skips *SkipTally) []StateEfficiency {
	byCode := make(map[string][]dataset.PopulationRecord, len(population))
	for _, p := range population {
		byCode[p.StateCode] = append(byCode[p.StateCode], p)
	}

	groups := make(map[string]*StateEfficiency)
	for _, r := range independents {
		for _, p := range byCode[r.State] {
			g, ok := groups[p.State]
			if !ok {
				g = &StateEfficiency{StateName: p.State, Population: p.Census2020}
				groups[p.State] = g
			}
			g.TotalSales += r.Sales
		}
	}

	out := make([]StateEfficiency, 0, len(groups))
	for _, g := range groups {
		perCapita, err := PerCapita(g.TotalSales, g.Population)
		if err != nil {
			skips.Add(ReportEfficiency, g.StateName, err)
			continue
		}
		g.DollarsPerPerson = perCapita
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DollarsPerPerson != out[j].DollarsPerPerson {
			return out[i].DollarsPerPerson > out[j].DollarsPerPerson
		}
		return out[i].StateName < out[j].StateName
	})
	return out
}
