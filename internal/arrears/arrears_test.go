package arrears

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrearscli/internal/loans"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var januaryWindow = Window{Start: day(2026, 1, 1), End: day(2026, 1, 21)}

func record(branch string, maturity time.Time, expected, repaid int64) loans.Record {
	return loans.Record{
		BranchName:             branch,
		MaturityDate:           maturity,
		TotalExpectedRepayment: dec(expected),
		TotalRepayment:         dec(repaid),
	}
}

func branchNames(records []loans.Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.BranchName)
	}
	return names
}

func TestFilter_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		maturity time.Time
		included bool
	}{
		{name: "first day of window", maturity: day(2026, 1, 1), included: true},
		{name: "last day of window", maturity: day(2026, 1, 21), included: true},
		{name: "mid window", maturity: day(2026, 1, 10), included: true},
		{name: "day before window", maturity: day(2025, 12, 31), included: false},
		{name: "day after window", maturity: day(2026, 1, 22), included: false},
		{name: "later on the last day", maturity: time.Date(2026, 1, 21, 10, 0, 0, 0, time.UTC), included: false},
		{name: "missing maturity date", maturity: time.Time{}, included: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter([]loans.Record{record("Adams Branch", tt.maturity, 1, 1)}, januaryWindow, "Advans Branch")
			if tt.included {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFilter_ExcludedBranch(t *testing.T) {
	in := []loans.Record{
		record("Adams Branch", day(2026, 1, 5), 1, 1),
		record(" ADVANS BRANCH ", day(2026, 1, 5), 1, 1),
		record("advans branch", day(2026, 1, 6), 1, 1),
		record("Advans Branch", day(2026, 1, 7), 1, 1),
		record("Kiambu Branch", day(2026, 1, 8), 1, 1),
	}

	got := Filter(in, januaryWindow, "Advans Branch")

	assert.Equal(t, []string{"Adams Branch", "Kiambu Branch"}, branchNames(got))
}

func TestFilter_PreservesOrderAndInput(t *testing.T) {
	in := []loans.Record{
		record("Utawala Branch", day(2026, 1, 3), 1, 1),
		record("Adams Branch", day(2026, 2, 3), 1, 1),
		record("Kasarani Branch", day(2026, 1, 2), 1, 1),
	}

	got := Filter(in, januaryWindow, "")

	assert.Equal(t, []string{"Utawala Branch", "Kasarani Branch"}, branchNames(got))
	assert.Len(t, in, 3)
	assert.Equal(t, "Adams Branch", in[1].BranchName)
}

func TestAggregate(t *testing.T) {
	in := []loans.Record{
		record("Pipeline Branch", day(2026, 1, 3), 100, 40),
		record("Adams Branch", day(2026, 1, 4), 200, 150),
		record("Pipeline Branch", day(2026, 1, 5), 300, 60),
		record("Adams Branch ", day(2026, 1, 5), 7, 7),
		record("", day(2026, 1, 5), 1000, 1000),
	}

	got := Aggregate(in)

	require.Len(t, got, 3)
	byName := make(map[string]BranchTotals)
	for _, row := range got {
		byName[row.BranchName] = row
	}

	assert.True(t, byName["Pipeline Branch"].Expected.Equal(dec(400)))
	assert.True(t, byName["Pipeline Branch"].TotalRepayment.Equal(dec(100)))
	assert.True(t, byName["Adams Branch"].Expected.Equal(dec(200)))
	assert.True(t, byName["Adams Branch "].TotalRepayment.Equal(dec(7)), "exact names group separately")
	assert.NotContains(t, byName, "")
}

func TestCalculator_Apply(t *testing.T) {
	baseline := Baseline{
		"Kawangware Branch": dec(1_148_531),
		"Kitengala Branch":  dec(128_600),
	}
	calc := NewCalculator(baseline, decimal.RequireFromString("0.03"))

	tests := []struct {
		name           string
		totals         BranchTotals
		wantCollected  decimal.Decimal
		wantArrears    decimal.Decimal
		wantCommission decimal.Decimal
	}{
		{
			name:           "repayment below baseline clips to zero",
			totals:         BranchTotals{BranchName: "Kawangware Branch", TotalRepayment: dec(1_000_000)},
			wantCollected:  dec(1_148_531),
			wantArrears:    decimal.Zero,
			wantCommission: decimal.Zero,
		},
		{
			name:           "repayment above baseline",
			totals:         BranchTotals{BranchName: "Kitengala Branch", TotalRepayment: dec(628_600)},
			wantCollected:  dec(128_600),
			wantArrears:    dec(500_000),
			wantCommission: dec(15_000),
		},
		{
			name:           "baseline lookup trims branch name",
			totals:         BranchTotals{BranchName: "  Kitengala Branch ", TotalRepayment: dec(228_600)},
			wantCollected:  dec(128_600),
			wantArrears:    dec(100_000),
			wantCommission: dec(3_000),
		},
		{
			name:           "unlisted branch has zero baseline",
			totals:         BranchTotals{BranchName: "Ruiru Branch", TotalRepayment: dec(250_000)},
			wantCollected:  decimal.Zero,
			wantArrears:    dec(250_000),
			wantCommission: dec(7_500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := calc.Apply([]BranchTotals{tt.totals})
			require.Len(t, rows, 1)
			row := rows[0]

			assert.True(t, row.CollectedBy.Equal(tt.wantCollected), "collected = %s", row.CollectedBy)
			assert.True(t, row.ArrearsCollected.Equal(tt.wantArrears), "arrears = %s", row.ArrearsCollected)
			assert.True(t, row.Commission.Equal(tt.wantCommission), "commission = %s", row.Commission)
		})
	}
}

func TestCalculator_CommissionIsExact(t *testing.T) {
	calc := NewCalculator(nil, decimal.RequireFromString("0.03"))

	rows := calc.Apply([]BranchTotals{{BranchName: "Adams Branch", TotalRepayment: decimal.RequireFromString("333333.33")}})

	require.Len(t, rows, 1)
	assert.Equal(t, "9999.9999", rows[0].Commission.String())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{name: "zero", amount: decimal.Zero, expected: "Ksh 0"},
		{name: "below a thousand", amount: dec(999), expected: "Ksh 999"},
		{name: "millions", amount: dec(1_234_567), expected: "Ksh 1,234,567"},
		{name: "commission", amount: dec(15_000), expected: "Ksh 15,000"},
		{name: "fraction rounds down", amount: decimal.RequireFromString("1234.4"), expected: "Ksh 1,234"},
		{name: "fraction rounds up", amount: decimal.RequireFromString("1234.6"), expected: "Ksh 1,235"},
		{name: "half rounds to even", amount: decimal.RequireFromString("2.5"), expected: "Ksh 2"},
		{name: "negative", amount: dec(-1_234), expected: "Ksh -1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency("Ksh", tt.amount))
		})
	}
}

func TestNewColumns(t *testing.T) {
	cols := NewColumns(januaryWindow, decimal.RequireFromString("0.03"))

	assert.Equal(t, []string{
		"Branch Name",
		"Expected (maturing 1–21 Jan)",
		"Total Repayment Derived",
		"Collected by 21",
		"Arrears collected",
		"Commission (3%)",
	}, cols.Headers())

	spanning := NewColumns(Window{Start: day(2026, 1, 25), End: day(2026, 2, 7)}, decimal.RequireFromString("0.025"))
	assert.Equal(t, "Expected (maturing 25 Jan – 7 Feb)", spanning.Expected)
	assert.Equal(t, "Collected by 7", spanning.CollectedBy)
	assert.Equal(t, "Commission (2.5%)", spanning.Commission)
}

func newJanuaryPipeline() *Pipeline {
	return &Pipeline{
		Title:          "January arrear collection challenge",
		Window:         januaryWindow,
		ExcludedBranch: "Advans Branch",
		CurrencyPrefix: "Ksh",
		Calculator: NewCalculator(Baseline{
			"Kawangware Branch": dec(1_148_531),
			"Kitengala Branch":  dec(128_600),
		}, decimal.RequireFromString("0.03")),
		Now: func() time.Time { return day(2026, 1, 22) },
	}
}

func TestPipeline_Run(t *testing.T) {
	records := []loans.Record{
		record("Kitengala Branch", day(2026, 1, 2), 700_000, 400_000),
		record("Kitengala Branch", day(2026, 1, 21), 100_000, 228_600),
		record("Kawangware Branch", day(2026, 1, 15), 1_200_000, 1_000_000),
		record("Advans Branch", day(2026, 1, 15), 999_999, 999_999),
		record("Ruiru Branch", day(2026, 1, 22), 50_000, 50_000),
		record("Ruiru Branch", time.Time{}, 50_000, 50_000),
	}

	report := newJanuaryPipeline().Run(records)

	assert.Equal(t, 6, report.RecordsLoaded)
	assert.Equal(t, 3, report.RecordsInWindow)
	require.Len(t, report.Formatted, 2)

	assert.Equal(t, FormattedRow{
		BranchName:       "Kawangware Branch",
		Expected:         "Ksh 1,200,000",
		TotalRepayment:   "Ksh 1,000,000",
		CollectedBy:      "Ksh 1,148,531",
		ArrearsCollected: "Ksh 0",
		Commission:       "Ksh 0",
	}, report.Formatted[0])

	assert.Equal(t, FormattedRow{
		BranchName:       "Kitengala Branch",
		Expected:         "Ksh 800,000",
		TotalRepayment:   "Ksh 628,600",
		CollectedBy:      "Ksh 128,600",
		ArrearsCollected: "Ksh 500,000",
		Commission:       "Ksh 15,000",
	}, report.Formatted[1])
}

func TestPipeline_RunIsIdempotent(t *testing.T) {
	records := []loans.Record{
		record("Utawala Branch", day(2026, 1, 3), 10, 5),
		record("Adams Branch", day(2026, 1, 4), 20, 15),
		record("Kasarani Branch", day(2026, 1, 5), 30, 25),
	}
	p := newJanuaryPipeline()

	first := p.Run(records)
	second := p.Run(records)

	assert.Equal(t, first.Formatted, second.Formatted)
	assert.Equal(t, first.Rows, second.Rows)
}
