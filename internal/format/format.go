// Package format turns raw amounts and rates into display strings.
//
// Amounts are shown the way Korean banks quote them: whole 만원 (10,000 won)
// units, switching to 억 (100,000,000 won) once the amount reaches one 억.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Missing is shown in place of a value the backend did not provide.
const Missing = "-"

var (
	tenThousand = decimal.NewFromInt(10_000)
	hundred     = decimal.NewFromInt(100)

	korean  = message.NewPrinter(language.Korean)
	english = message.NewPrinter(language.English)
)

// KRW formats an amount in 만원/억 units, e.g. 2,000,000 → "200만원" and
// 125,000,000 → "1억 2,500만원".
func KRW(v float64) string {
	if !finite(v) {
		return Missing
	}
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	man := d.Div(tenThousand).Round(0).IntPart()
	if man == 0 {
		return "0만원"
	}
	if man >= 10_000 {
		uk, rem := man/10_000, man%10_000
		if rem > 0 {
			return sign + korean.Sprintf("%d억 %d만원", uk, rem)
		}
		return sign + korean.Sprintf("%d억원", uk)
	}
	return sign + korean.Sprintf("%d만원", man)
}

// SignedKRW is KRW with an explicit "+" for non-negative amounts.
func SignedKRW(v float64) string {
	if finite(v) && v >= 0 {
		return "+" + KRW(v)
	}
	return KRW(v)
}

// Won formats an amount as plain ASCII, e.g. "50,000,000 KRW".
func Won(v float64) string {
	if !finite(v) {
		return Missing
	}
	return english.Sprintf("%d KRW", decimal.NewFromFloat(v).Round(0).IntPart())
}

// Percent formats a fractional rate with two decimals: 0.035 → "3.50%".
func Percent(v float64) string {
	return scaled(v, 2, "%")
}

// OptionalPercent is Percent for nullable rates.
func OptionalPercent(v *float64) string {
	if v == nil {
		return Missing
	}
	return Percent(*v)
}

// Weight formats a portfolio weight with one decimal: 0.254 → "25.4%".
func Weight(v float64) string {
	return scaled(v, 1, "%")
}

// PointShift formats a rate change in percentage points: -0.015 → "-1.5%p".
func PointShift(v float64) string {
	return scaled(v, 1, "%p")
}

// Years formats a duration in years: 2.5 → "2.50 yrs".
func Years(v float64) string {
	if !finite(v) {
		return Missing
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " yrs"
}

func scaled(v float64, places int32, suffix string) string {
	if !finite(v) {
		return Missing
	}
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(places) + suffix
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
