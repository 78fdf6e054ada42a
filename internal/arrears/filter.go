package arrears

import (
	"strings"
	"time"

	"arrearscli/internal/loans"
)

// Window is a closed interval of maturity timestamps
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in [Start, End]. Bounds are timestamps, so
// a maturity of 21 Jan 10:00 falls outside a window ending at 21 Jan 00:00.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// normalizeBranch is the comparison form used for branch exclusion
func normalizeBranch(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Filter keeps the records maturing inside w whose branch is not excluded.
// Records without a maturity date never match. The branch comparison ignores
// surrounding whitespace and case. Input order is preserved.
func Filter(records []loans.Record, w Window, excludedBranch string) []loans.Record {
	excluded := normalizeBranch(excludedBranch)

	kept := make([]loans.Record, 0, len(records))
	for _, r := range records {
		if !r.HasMaturityDate() || !w.Contains(r.MaturityDate) {
			continue
		}
		if excluded != "" && normalizeBranch(r.BranchName) == excluded {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
