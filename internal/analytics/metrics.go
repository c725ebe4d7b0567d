package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"market-report/internal/errors"
)

// Skip reasons, also used as the AppError message of the matching failure.
const (
	ReasonZeroUnits      = "zero Units"
	ReasonMalformedYOY   = "malformed YOY_Sales"
	ReasonZeroPopulation = "zero Population"
)

// AUV returns the average unit volume in thousands, sales*1000/units,
// without rounding.
func AUV(sales float64, units int64) (float64, error) {
	if units == 0 {
		return 0, errors.Division(ReasonZeroUnits)
	}
	return sales * 1000 / float64(units), nil
}

// ParseGrowth converts a percentage string such as "12.4%" or "-5%" to its
// numeric value.
func ParseGrowth(yoy string) (float64, error) {
	s := strings.TrimSpace(yoy)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, errors.Parse(ReasonMalformedYOY).WithDetails("%q", yoy)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.ParseWrap(err, ReasonMalformedYOY).WithDetails("%q", yoy)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Parse(ReasonMalformedYOY).WithDetails("%q", yoy)
	}
	return v, nil
}

// PerCapita returns total/population rounded half away from zero to two
// decimals. The division and rounding run in decimal so that ties such as
// 1.005 round up instead of falling victim to binary representation.
func PerCapita(total float64, population int64) (float64, error) {
	if population == 0 {
		return 0, errors.Division(ReasonZeroPopulation)
	}
	q := decimal.NewFromFloat(total).Div(decimal.NewFromInt(population))
	return q.Round(2).InexactFloat64(), nil
}
