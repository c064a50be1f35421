package pricing

import (
	"time"

	"autopro_rental/internal/domain/entities"
)

// DaysBetween counts rental days inclusively: a same-day rental is 1 day.
// Negative or zero spans are floored at 1, absorbing end < start inputs
// without an error path.
func DaysBetween(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ItemTotal is the pre-tax line total. No rounding happens here; rounding is
// deferred to presentation and export.
func ItemTotal(dailyRate float64, quantity, days int) float64 {
	return dailyRate * float64(quantity) * float64(days)
}

// ComputeOrderTotals derives every monetary aggregate of an order from its
// items, the client VAT rate and the deposit. It is pure and idempotent:
// TotalDays and ItemTotalHT on each item are recomputed from scratch,
// discarding whatever was there before.
func ComputeOrderTotals(items []entities.OrderItem, vatRate, depositAmount float64) ([]entities.OrderItem, entities.OrderTotals) {
	out := make([]entities.OrderItem, len(items))
	totals := entities.OrderTotals{DepositAmount: depositAmount}

	for i, item := range items {
		item.TotalDays = DaysBetween(item.StartDate, item.EndDate)
		item.ItemTotalHT = ItemTotal(item.DailyRate, item.Quantity, item.TotalDays)
		out[i] = item
		totals.TotalHT += item.ItemTotalHT
	}

	totals.TotalVAT = totals.TotalHT * (vatRate / 100)
	totals.TotalTTC = totals.TotalHT + totals.TotalVAT
	if depositAmount > 0 {
		totals.DepositVAT = depositAmount * (vatRate / 100)
	}
	totals.GrandTotal = totals.TotalTTC + totals.DepositAmount + totals.DepositVAT

	return out, totals
}

// NextRenewalWindow computes the [start, end] window for the rental period
// following an item that ends on `from`. The window starts the day after the
// current end date and spans the item's renewal duration.
//
// Months are approximated at 30 days and years at 365 days (leap years
// ignored). The approximation is deliberately confined to this function so a
// calendar-accurate policy can replace it without touching the renewal sweep.
func NextRenewalWindow(period entities.RentalPeriod, duration int, from time.Time) (time.Time, time.Time) {
	if duration < 1 {
		duration = 1
	}

	var days int
	switch period {
	case entities.RentalPeriodWeeks:
		days = duration * 7
	case entities.RentalPeriodMonths:
		days = duration * 30
	case entities.RentalPeriodYears:
		days = duration * 365
	default:
		days = duration
	}

	start := from.AddDate(0, 0, 1)
	end := start.AddDate(0, 0, days-1)
	return start, end
}
