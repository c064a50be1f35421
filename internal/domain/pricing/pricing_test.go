package pricing

import (
	"math"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "same day counts as one", start: date(2025, 3, 10), end: date(2025, 3, 10), want: 1},
		{name: "inclusive bounds", start: date(2025, 3, 10), end: date(2025, 3, 16), want: 7},
		{name: "five day rental", start: date(2025, 3, 1), end: date(2025, 3, 5), want: 5},
		{name: "end before start floors at one", start: date(2025, 3, 10), end: date(2025, 3, 5), want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.start, tc.end); got != tc.want {
				t.Fatalf("DaysBetween(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestComputeOrderTotals_SingleItemWithDeposit(t *testing.T) {
	items := []entities.OrderItem{{
		VehicleID: "veh-1",
		Quantity:  1,
		DailyRate: 50,
		StartDate: date(2025, 4, 1),
		EndDate:   date(2025, 4, 5), // 5 days inclusive
	}}

	got, totals := ComputeOrderTotals(items, 20.0, 200.0)

	if got[0].TotalDays != 5 {
		t.Fatalf("expected 5 days, got %d", got[0].TotalDays)
	}
	if !almostEqual(got[0].ItemTotalHT, 250.00) {
		t.Fatalf("expected item total 250.00, got %.2f", got[0].ItemTotalHT)
	}
	if !almostEqual(totals.TotalHT, 250.00) {
		t.Fatalf("expected total HT 250.00, got %.2f", totals.TotalHT)
	}
	if !almostEqual(totals.TotalVAT, 50.00) {
		t.Fatalf("expected total VAT 50.00, got %.2f", totals.TotalVAT)
	}
	if !almostEqual(totals.TotalTTC, 300.00) {
		t.Fatalf("expected total TTC 300.00, got %.2f", totals.TotalTTC)
	}
	if !almostEqual(totals.DepositVAT, 40.00) {
		t.Fatalf("expected deposit VAT 40.00, got %.2f", totals.DepositVAT)
	}
	if !almostEqual(totals.GrandTotal, 540.00) {
		t.Fatalf("expected grand total 540.00, got %.2f", totals.GrandTotal)
	}
}

func TestComputeOrderTotals_MultiItemAggregation(t *testing.T) {
	items := []entities.OrderItem{
		{VehicleID: "veh-1", Quantity: 1, DailyRate: 60, StartDate: date(2025, 4, 1), EndDate: date(2025, 4, 7)},  // 7 days
		{VehicleID: "veh-2", Quantity: 2, DailyRate: 45, StartDate: date(2025, 4, 1), EndDate: date(2025, 4, 3)}, // 3 days
	}

	_, totals := ComputeOrderTotals(items, 20.0, 300.0)

	if !almostEqual(totals.TotalHT, 690.00) {
		t.Fatalf("expected total HT 690.00, got %.2f", totals.TotalHT)
	}
	if !almostEqual(totals.TotalVAT, 138.00) {
		t.Fatalf("expected total VAT 138.00, got %.2f", totals.TotalVAT)
	}
	if !almostEqual(totals.TotalTTC, 828.00) {
		t.Fatalf("expected total TTC 828.00, got %.2f", totals.TotalTTC)
	}
	if !almostEqual(totals.DepositVAT, 60.00) {
		t.Fatalf("expected deposit VAT 60.00, got %.2f", totals.DepositVAT)
	}
	if !almostEqual(totals.GrandTotal, 1188.00) {
		t.Fatalf("expected grand total 1188.00, got %.2f", totals.GrandTotal)
	}
}

func TestComputeOrderTotals_PureAndIdempotent(t *testing.T) {
	items := []entities.OrderItem{{
		VehicleID: "veh-1",
		Quantity:  1,
		DailyRate: 50,
		StartDate: date(2025, 4, 1),
		EndDate:   date(2025, 4, 5),
		// Stale derived values must be discarded, not accumulated.
		TotalDays:   99,
		ItemTotalHT: 9999,
	}}

	first, firstTotals := ComputeOrderTotals(items, 20.0, 200.0)
	second, secondTotals := ComputeOrderTotals(first, 20.0, 200.0)

	if firstTotals != secondTotals {
		t.Fatalf("totals changed across invocations: %+v vs %+v", firstTotals, secondTotals)
	}
	if second[0].TotalDays != 5 || !almostEqual(second[0].ItemTotalHT, 250.00) {
		t.Fatalf("derived item fields not recomputed: %+v", second[0])
	}
	// Input slice must be left untouched.
	if items[0].TotalDays != 99 {
		t.Fatalf("input slice was mutated: %+v", items[0])
	}
}

func TestComputeOrderTotals_NoDeposit(t *testing.T) {
	items := []entities.OrderItem{{Quantity: 1, DailyRate: 100, StartDate: date(2025, 5, 1), EndDate: date(2025, 5, 2)}}

	_, totals := ComputeOrderTotals(items, 20.0, 0)

	if totals.DepositVAT != 0 {
		t.Fatalf("expected zero deposit VAT, got %.2f", totals.DepositVAT)
	}
	if !almostEqual(totals.GrandTotal, totals.TotalTTC) {
		t.Fatalf("grand total should equal TTC without deposit, got %.2f vs %.2f", totals.GrandTotal, totals.TotalTTC)
	}
}

func TestNextRenewalWindow(t *testing.T) {
	from := date(2025, 6, 30)

	cases := []struct {
		name      string
		period    entities.RentalPeriod
		duration  int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "five days", period: entities.RentalPeriodDays, duration: 5, wantStart: date(2025, 7, 1), wantEnd: date(2025, 7, 5)},
		{name: "two weeks", period: entities.RentalPeriodWeeks, duration: 2, wantStart: date(2025, 7, 1), wantEnd: date(2025, 7, 14)},
		{name: "one month approximates 30 days", period: entities.RentalPeriodMonths, duration: 1, wantStart: date(2025, 7, 1), wantEnd: date(2025, 7, 30)},
		{name: "one year approximates 365 days", period: entities.RentalPeriodYears, duration: 1, wantStart: date(2025, 7, 1), wantEnd: date(2026, 6, 30)},
		{name: "zero duration floors at one", period: entities.RentalPeriodDays, duration: 0, wantStart: date(2025, 7, 1), wantEnd: date(2025, 7, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := NextRenewalWindow(tc.period, tc.duration, from)
			if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
				t.Fatalf("window = [%v, %v], want [%v, %v]", start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}
