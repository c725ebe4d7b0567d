package report

import (
	"strconv"

	"market-report/internal/analytics"
)

// table is the format-neutral shape of one report: a header and typed rows.
type table struct {
	name   string
	report string
	header []string
	rows   [][]interface{}
	// limited tables are truncated by the console printer.
	limited bool
}

func tables(r *analytics.Reports) []table {
	return []table{
		classificationTable(r.Classification),
		efficiencyTable(r.Efficiency),
		summaryTable(r.Summary),
	}
}

func classificationTable(rows []analytics.ClassifiedBrand) table {
	t := table{
		name:    "classification",
		report:  analytics.ReportClassification,
		header:  []string{"Restaurant", "Segment_Category", "Sales", "Units", "YOY_Sales", "AUV_Thousands", "YOY_Growth", "Market_Status"},
		limited: true,
	}
	for _, c := range rows {
		t.rows = append(t.rows, []interface{}{
			c.Restaurant, c.SegmentCategory, c.Sales, c.Units, c.YOYSales, c.AUVThousands, c.YOYGrowth, string(c.MarketStatus),
		})
	}
	return t
}

func efficiencyTable(rows []analytics.StateEfficiency) table {
	t := table{
		name:    "efficiency",
		report:  analytics.ReportEfficiency,
		header:  []string{"State_Name", "Population", "Total_Sales", "Dollars_Per_Person"},
		limited: true,
	}
	for _, e := range rows {
		t.rows = append(t.rows, []interface{}{e.StateName, e.Population, e.TotalSales, e.DollarsPerPerson})
	}
	return t
}

func summaryTable(rows []analytics.SegmentSummary) table {
	t := table{
		name:   "summary",
		report: analytics.ReportSummary,
		header: []string{"Segment_Category", "Market_Status", "Brand_Count"},
	}
	for _, s := range rows {
		t.rows = append(t.rows, []interface{}{s.SegmentCategory, string(s.MarketStatus), s.BrandCount})
	}
	return t
}

// formatCell renders a value at full precision for machine-readable exports.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

// displayCell renders a value for the console, with two decimals for reals.
func displayCell(v interface{}) string {
	if x, ok := v.(float64); ok {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	return formatCell(v)
}
