package loans

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountColumn declares one amount column and the value it takes when the
// source does not carry it.
type amountColumn struct {
	name     string
	field    func(r *Record) *decimal.Decimal
	fallback func(r *Record) decimal.Decimal
}

func zeroFallback(*Record) decimal.Decimal { return decimal.Zero }

// amountColumns is applied in order; the derived repayment columns come last
// so their fallbacks see the base amounts of the same row.
var amountColumns = []amountColumn{
	{
		name:     ColPrincipalAmount,
		field:    func(r *Record) *decimal.Decimal { return &r.PrincipalAmount },
		fallback: zeroFallback,
	},
	{
		name:     ColPrincipalOutstanding,
		field:    func(r *Record) *decimal.Decimal { return &r.PrincipalOutstanding },
		fallback: zeroFallback,
	},
	{
		name:     ColPenaltiesOverdue,
		field:    func(r *Record) *decimal.Decimal { return &r.PenaltiesOverdue },
		fallback: zeroFallback,
	},
	{
		name:  ColTotalExpectedRepayment,
		field: func(r *Record) *decimal.Decimal { return &r.TotalExpectedRepayment },
		fallback: func(r *Record) decimal.Decimal {
			return r.PrincipalAmount.Add(r.PenaltiesOverdue)
		},
	},
	{
		name:  ColTotalRepayment,
		field: func(r *Record) *decimal.Decimal { return &r.TotalRepayment },
		fallback: func(r *Record) decimal.Decimal {
			return r.PrincipalAmount.Sub(r.PrincipalOutstanding)
		},
	},
}

// requiredColumns must be present in every source
var requiredColumns = []string{ColBranchName, ColMaturityDate}

func usedColumns() []string {
	cols := append([]string{}, requiredColumns...)
	for _, col := range amountColumns {
		cols = append(cols, col.name)
	}
	return cols
}

// Normalization is the outcome of Normalize
type Normalization struct {
	Records        []Record
	DerivedColumns []string
	CoercedCells   int
}

// Normalize maps a raw table onto loan records. Header cells are trimmed,
// unparsable cells become zero or a missing date, and absent amount columns
// are synthesized from their fallback formulas.
func Normalize(t *Table) (*Normalization, error) {
	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		name := strings.TrimSpace(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	for _, col := range usedColumns() {
		if i, ok := index[col]; ok && t.FormulaColumns[i] {
			return nil, fmt.Errorf("%w: column %q holds formula cells that cannot be read from this file; save it as .xlsx",
				ErrInvalidSource, col)
		}
	}

	result := &Normalization{Records: make([]Record, 0, len(t.Rows))}
	for _, col := range amountColumns {
		if _, ok := index[col.name]; !ok {
			result.DerivedColumns = append(result.DerivedColumns, col.name)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range t.Rows {
		rec := Record{BranchName: cell(row, ColBranchName)}

		rawDate := cell(row, ColMaturityDate)
		if date, ok := ParseMaturityDate(rawDate, t.DateSystem); ok {
			rec.MaturityDate = date
		} else if strings.TrimSpace(rawDate) != "" {
			result.CoercedCells++
		}

		for _, col := range amountColumns {
			if _, present := index[col.name]; !present {
				*col.field(&rec) = col.fallback(&rec)
				continue
			}
			amount, ok := ParseAmount(cell(row, col.name))
			if !ok {
				result.CoercedCells++
			}
			*col.field(&rec) = amount
		}

		result.Records = append(result.Records, rec)
	}

	return result, nil
}
