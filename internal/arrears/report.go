package arrears

import (
	"time"

	"arrearscli/internal/loans"
)

// Report is the rendered arrears-collection table
type Report struct {
	Title           string          `json:"title"`
	Window          Window          `json:"window"`
	ExcludedBranch  string          `json:"excluded_branch,omitempty"`
	Columns         Columns         `json:"columns"`
	Rows            []BranchArrears `json:"rows"`
	Formatted       []FormattedRow  `json:"formatted"`
	RecordsLoaded   int             `json:"records_loaded"`
	RecordsInWindow int             `json:"records_in_window"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// Pipeline runs filter, aggregation, arrears calculation and formatting
type Pipeline struct {
	Title          string
	Window         Window
	ExcludedBranch string
	CurrencyPrefix string
	Calculator     *Calculator
	// Now stamps GeneratedAt; time.Now when nil.
	Now func() time.Time
}

// Run builds the report for records. It does not modify records.
func (p *Pipeline) Run(records []loans.Record) *Report {
	prefix := p.CurrencyPrefix
	if prefix == "" {
		prefix = DefaultCurrencyPrefix
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	inWindow := Filter(records, p.Window, p.ExcludedBranch)
	rows := p.Calculator.Apply(Aggregate(inWindow))

	return &Report{
		Title:           p.Title,
		Window:          p.Window,
		ExcludedBranch:  p.ExcludedBranch,
		Columns:         NewColumns(p.Window, p.Calculator.Rate()),
		Rows:            rows,
		Formatted:       FormatRows(prefix, rows),
		RecordsLoaded:   len(records),
		RecordsInWindow: len(inWindow),
		GeneratedAt:     now(),
	}
}
