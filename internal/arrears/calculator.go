package arrears

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Baseline maps a branch name to the amount it had already collected before
// the challenge period. Keys are matched against trimmed branch names.
type Baseline map[string]decimal.Decimal

// CollectedFor returns the baseline for branch, or zero when it is unlisted
func (b Baseline) CollectedFor(branch string) decimal.Decimal {
	if amount, ok := b[strings.TrimSpace(branch)]; ok {
		return amount
	}
	return decimal.Zero
}

// BranchArrears is one row of the report
type BranchArrears struct {
	BranchName       string          `json:"branch_name"`
	Expected         decimal.Decimal `json:"expected"`
	TotalRepayment   decimal.Decimal `json:"total_repayment"`
	CollectedBy      decimal.Decimal `json:"collected_by"`
	ArrearsCollected decimal.Decimal `json:"arrears_collected"`
	Commission       decimal.Decimal `json:"commission"`
}

// Calculator derives arrears and commission from branch totals
type Calculator struct {
	baseline Baseline
	rate     decimal.Decimal
}

// NewCalculator creates a calculator with a collected baseline and a
// commission rate expressed as a fraction (0.03 for 3%).
func NewCalculator(baseline Baseline, rate decimal.Decimal) *Calculator {
	if baseline == nil {
		baseline = Baseline{}
	}
	return &Calculator{baseline: baseline, rate: rate}
}

// Rate returns the commission rate
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Apply computes one report row per branch. Arrears collected is the
// repayment above the baseline, clipped at zero; commission is the rate
// applied to it.
func (c *Calculator) Apply(totals []BranchTotals) []BranchArrears {
	rows := make([]BranchArrears, 0, len(totals))
	for _, t := range totals {
		collected := c.baseline.CollectedFor(t.BranchName)

		arrears := t.TotalRepayment.Sub(collected)
		if arrears.IsNegative() {
			arrears = decimal.Zero
		}

		rows = append(rows, BranchArrears{
			BranchName:       t.BranchName,
			Expected:         t.Expected,
			TotalRepayment:   t.TotalRepayment,
			CollectedBy:      collected,
			ArrearsCollected: arrears,
			Commission:       arrears.Mul(c.rate),
		})
	}
	return rows
}
