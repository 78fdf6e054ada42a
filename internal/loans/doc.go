// Package loans reads loan book exports and normalizes them into records.
//
// A source is the first sheet of an .xlsx/.xlsm workbook, a legacy .xls
// workbook, or a CSV file, with a single header row. Headers are trimmed.
// "Branch Name" and "Expected Matured On Date" are required; the amount
// columns are optional and fall back to fixed formulas when absent:
//
//	Principal Amount, Principal Outstanding Derived,
//	Penalties Overdue Derived          -> 0
//	Total Expected Repayment Derived   -> Principal Amount + Penalties Overdue Derived
//	Total Repayment Derived            -> Principal Amount - Principal Outstanding Derived
//
// Cell parsing is lenient: an unparsable amount is zero and an unparsable
// maturity date is missing. Neither drops the row.
//
// Cache memoizes datasets per path and reloads when the file changes.
package loans
