package loans

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Column headers of the loan book export, after whitespace trimming.
const (
	ColBranchName             = "Branch Name"
	ColMaturityDate           = "Expected Matured On Date"
	ColPrincipalAmount        = "Principal Amount"
	ColPrincipalOutstanding   = "Principal Outstanding Derived"
	ColPenaltiesOverdue       = "Penalties Overdue Derived"
	ColTotalExpectedRepayment = "Total Expected Repayment Derived"
	ColTotalRepayment         = "Total Repayment Derived"
)

var (
	// ErrSourceUnavailable is returned when the source file cannot be stat'ed or opened
	ErrSourceUnavailable = errors.New("loan source unavailable")
	// ErrInvalidSource is returned when the file opens but holds no usable table
	ErrInvalidSource = errors.New("invalid loan source")
	// ErrUnsupportedFormat is returned for file extensions the loader cannot read
	ErrUnsupportedFormat = errors.New("unsupported loan source format")
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing required column")
)

// Record is one loan row after normalization
type Record struct {
	BranchName string `json:"branch_name"`
	// MaturityDate is the zero time when the cell was empty or unparsable.
	MaturityDate           time.Time       `json:"maturity_date"`
	PrincipalAmount        decimal.Decimal `json:"principal_amount"`
	PrincipalOutstanding   decimal.Decimal `json:"principal_outstanding"`
	PenaltiesOverdue       decimal.Decimal `json:"penalties_overdue"`
	TotalExpectedRepayment decimal.Decimal `json:"total_expected_repayment"`
	TotalRepayment         decimal.Decimal `json:"total_repayment"`
}

// HasMaturityDate reports whether the maturity date was parsed
func (r Record) HasMaturityDate() bool {
	return !r.MaturityDate.IsZero()
}

// Dataset is a loaded and normalized loan book
type Dataset struct {
	Source   string    `json:"source"`
	Sheet    string    `json:"sheet,omitempty"`
	ModTime  time.Time `json:"mod_time"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  []Record  `json:"records"`
	// DerivedColumns lists the amount columns synthesized by fallback formulas
	// because the source did not carry them.
	DerivedColumns []string `json:"derived_columns,omitempty"`
	// CoercedCells counts non-empty cells that failed to parse and were
	// replaced by zero or a missing date.
	CoercedCells int `json:"coerced_cells"`
}

// DateSystem selects how numeric maturity cells are read
type DateSystem int

const (
	// DateSystemText is used for text sources; numbers are never Excel serials.
	DateSystemText DateSystem = iota
	// DateSystem1900 counts serials from 1899-12-30.
	DateSystem1900
	// DateSystem1904 counts serials from 1904-01-01 (workbooks saved with the Mac epoch).
	DateSystem1904
)

// Table is the raw sheet content: one header row and the data rows beneath it
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
	// DateSystem applies to numeric cells of the maturity column.
	DateSystem DateSystem
	// FormulaColumns holds the indexes of columns with formula cells whose
	// values the reader could not recover.
	FormulaColumns map[int]bool
}
