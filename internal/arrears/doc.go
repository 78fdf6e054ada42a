// Package arrears computes the branch arrears-collection report.
//
// The report is a fixed pipeline over loan records:
//
//   - Filter keeps loans maturing inside the window and drops the excluded
//     branch (compared trimmed and case-folded).
//   - Aggregate sums Total Expected Repayment Derived and Total Repayment
//     Derived per exact branch name.
//   - Calculator subtracts the per-branch collected baseline to give arrears
//     collected, clipped at zero, and applies the commission rate.
//   - FormatRows renders every amount as "Ksh 1,234,567".
//
// Amounts are decimals throughout so that the commission is exact.
//
// # Usage Example
//
//	calc := arrears.NewCalculator(baseline, decimal.RequireFromString("0.03"))
//	p := &arrears.Pipeline{
//		Title:          "January arrear collection challenge",
//		Window:         arrears.Window{Start: start, End: end},
//		ExcludedBranch: "Advans Branch",
//		Calculator:     calc,
//	}
//	report := p.Run(dataset.Records)
package arrears
