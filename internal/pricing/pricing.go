// Package pricing derives a rental cost from a time window, a quantity and
// a product's tiered price list. The first configured tier in priority
// order wins, even when another tier would be cheaper.
package pricing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaishnavicode/rentagora/internal/models"
)

const (
	TierHour  = "hour"
	TierDay   = "day"
	TierWeek  = "week"
	TierMonth = "month"
	TierYear  = "year"
)

// Lookup order is fixed: a vendor offering only a monthly rate on a
// two-hour booking is billed by the monthly rate prorated to hours.
var tierPriority = []string{TierHour, TierDay, TierWeek, TierMonth, TierYear}

var hoursPerUnit = map[string]int64{
	TierHour:  1,
	TierDay:   24,
	TierWeek:  168,
	TierMonth: 720,
	TierYear:  8760,
}

func ValidTier(s string) bool {
	_, ok := hoursPerUnit[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Cost returns the rental cost rounded to 2 decimal places. An invalid
// window (zero bounds or to <= from) or an empty active price list costs
// zero rather than failing.
func Cost(from, to time.Time, qty int, prices []models.ProductPrice) decimal.Decimal {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return decimal.Zero
	}
	if qty <= 0 {
		qty = 1
	}

	active := make(map[string]models.ProductPrice, len(prices))
	for _, p := range prices {
		if !p.Active {
			continue
		}
		tier := strings.ToLower(strings.TrimSpace(p.TimeDuration))
		if _, seen := active[tier]; !seen {
			active[tier] = p
		}
	}

	hours := decimal.NewFromInt(int64(to.Sub(from) / time.Second)).
		Div(decimal.NewFromInt(3600))

	for _, tier := range tierPriority {
		p, ok := active[tier]
		if !ok {
			continue
		}
		units := hours.Div(decimal.NewFromInt(hoursPerUnit[tier]))
		return units.
			Mul(decimal.NewFromInt(int64(p.Price))).
			Mul(decimal.NewFromInt(int64(qty))).
			Round(2)
	}

	return decimal.Zero
}
