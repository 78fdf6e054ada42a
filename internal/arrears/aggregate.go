package arrears

import (
	"sort"

	"github.com/shopspring/decimal"

	"arrearscli/internal/loans"
)

// BranchTotals is the per-branch sum of the filtered records
type BranchTotals struct {
	BranchName     string          `json:"branch_name"`
	Expected       decimal.Decimal `json:"expected"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
}

// Aggregate sums expected and actual repayment per branch. Branch names are
// grouped exactly as they appear; records with an empty branch name are not
// grouped. Rows are returned sorted by branch name.
func Aggregate(records []loans.Record) []BranchTotals {
	byBranch := make(map[string]*BranchTotals)
	for _, r := range records {
		if r.BranchName == "" {
			continue
		}
		totals, ok := byBranch[r.BranchName]
		if !ok {
			totals = &BranchTotals{
				BranchName:     r.BranchName,
				Expected:       decimal.Zero,
				TotalRepayment: decimal.Zero,
			}
			byBranch[r.BranchName] = totals
		}
		totals.Expected = totals.Expected.Add(r.TotalExpectedRepayment)
		totals.TotalRepayment = totals.TotalRepayment.Add(r.TotalRepayment)
	}

	result := make([]BranchTotals, 0, len(byBranch))
	for _, totals := range byBranch {
		result = append(result, *totals)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].BranchName < result[j].BranchName
	})
	return result
}
