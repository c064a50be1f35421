package accounting

import (
	"math"
	"time"

	"autopro_rental/internal/domain/entities"
)

// balanceTolerance is the float tolerance under which a journal is considered
// balanced.
const balanceTolerance = 0.01

type SummaryPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type SummaryTotals struct {
	TotalEntries int     `json:"total_entries"`
	TotalDebit   float64 `json:"total_debit"`
	TotalCredit  float64 `json:"total_credit"`
	IsBalanced   bool    `json:"is_balanced"`
}

type AccountSummary struct {
	AccountName  string  `json:"account_name"`
	TotalDebit   float64 `json:"total_debit"`
	TotalCredit  float64 `json:"total_credit"`
	Balance      float64 `json:"balance"`
	EntriesCount int     `json:"entries_count"`
}

// JournalSummary aggregates a period's entries per account code.
type JournalSummary struct {
	Period   SummaryPeriod             `json:"period"`
	Summary  SummaryTotals             `json:"summary"`
	Accounts map[string]AccountSummary `json:"accounts"`
}

// Summarize filters entries to [start, end] (inclusive) and aggregates them
// per account code. Balance per account is debit minus credit.
func Summarize(entries []entities.AccountingEntry, start, end time.Time) JournalSummary {
	summary := JournalSummary{
		Period:   SummaryPeriod{StartDate: start, EndDate: end},
		Accounts: make(map[string]AccountSummary),
	}

	for _, e := range entries {
		if e.EntryDate.Before(start) || e.EntryDate.After(end) {
			continue
		}

		acc := summary.Accounts[e.AccountCode]
		acc.AccountName = e.AccountName
		acc.TotalDebit += e.Debit
		acc.TotalCredit += e.Credit
		acc.Balance = acc.TotalDebit - acc.TotalCredit
		acc.EntriesCount++
		summary.Accounts[e.AccountCode] = acc

		summary.Summary.TotalEntries++
		summary.Summary.TotalDebit += e.Debit
		summary.Summary.TotalCredit += e.Credit
	}

	summary.Summary.IsBalanced = math.Abs(summary.Summary.TotalDebit-summary.Summary.TotalCredit) < balanceTolerance
	return summary
}
