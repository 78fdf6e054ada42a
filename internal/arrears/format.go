package arrears

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrefix is the prefix used when none is configured
const DefaultCurrencyPrefix = "Ksh"

// Columns holds the display header of each report column
type Columns struct {
	BranchName       string `json:"branch_name"`
	Expected         string `json:"expected"`
	TotalRepayment   string `json:"total_repayment"`
	CollectedBy      string `json:"collected_by"`
	ArrearsCollected string `json:"arrears_collected"`
	Commission       string `json:"commission"`
}

// Headers returns the column headers in display order
func (c Columns) Headers() []string {
	return []string{c.BranchName, c.Expected, c.TotalRepayment, c.CollectedBy, c.ArrearsCollected, c.Commission}
}

// NewColumns labels the columns for a window and commission rate. For
// 1–21 Jan and 3% this gives "Expected (maturing 1–21 Jan)",
// "Collected by 21" and "Commission (3%)".
func NewColumns(w Window, rate decimal.Decimal) Columns {
	var expected string
	if w.Start.Year() == w.End.Year() && w.Start.Month() == w.End.Month() {
		expected = fmt.Sprintf("Expected (maturing %d–%d %s)", w.Start.Day(), w.End.Day(), w.End.Format("Jan"))
	} else {
		expected = fmt.Sprintf("Expected (maturing %s – %s)", w.Start.Format("2 Jan"), w.End.Format("2 Jan"))
	}

	return Columns{
		BranchName:       "Branch Name",
		Expected:         expected,
		TotalRepayment:   "Total Repayment Derived",
		CollectedBy:      fmt.Sprintf("Collected by %d", w.End.Day()),
		ArrearsCollected: "Arrears collected",
		Commission:       fmt.Sprintf("Commission (%s%%)", rate.Mul(decimal.NewFromInt(100)).String()),
	}
}

// FormatCurrency renders amount with no decimals and thousands separators,
// e.g. "Ksh 1,234,567". Halves round to even.
func FormatCurrency(prefix string, amount decimal.Decimal) string {
	whole := amount.RoundBank(0).IntPart()
	if prefix == "" {
		return humanize.Comma(whole)
	}
	return prefix + " " + humanize.Comma(whole)
}

// FormattedRow is a report row with every amount rendered for display
type FormattedRow struct {
	BranchName       string `json:"branch_name"`
	Expected         string `json:"expected"`
	TotalRepayment   string `json:"total_repayment"`
	CollectedBy      string `json:"collected_by"`
	ArrearsCollected string `json:"arrears_collected"`
	Commission       string `json:"commission"`
}

// Cells returns the row values in display order
func (r FormattedRow) Cells() []string {
	return []string{r.BranchName, r.Expected, r.TotalRepayment, r.CollectedBy, r.ArrearsCollected, r.Commission}
}

// FormatRows renders the amount columns of rows with prefix
func FormatRows(prefix string, rows []BranchArrears) []FormattedRow {
	formatted := make([]FormattedRow, 0, len(rows))
	for _, r := range rows {
		formatted = append(formatted, FormattedRow{
			BranchName:       r.BranchName,
			Expected:         FormatCurrency(prefix, r.Expected),
			TotalRepayment:   FormatCurrency(prefix, r.TotalRepayment),
			CollectedBy:      FormatCurrency(prefix, r.CollectedBy),
			ArrearsCollected: FormatCurrency(prefix, r.ArrearsCollected),
			Commission:       FormatCurrency(prefix, r.Commission),
		})
	}
	return formatted
}
