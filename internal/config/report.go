package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// DateLayout is the layout of the window bounds in configuration.
const DateLayout = "2006-01-02"

// ReportConfig holds the parameters of the arrears report. The defaults are the
// January collection challenge: loans maturing 1–21 Jan 2026, Advans Branch
// excluded, 3% commission.
type ReportConfig struct {
	Title          string `yaml:"title" envconfig:"TITLE" validate:"required"`
	SourceFile     string `yaml:"source_file" envconfig:"SOURCE_FILE" validate:"required"`
	WindowStart    string `yaml:"window_start" envconfig:"WINDOW_START" validate:"required"`
	WindowEnd      string `yaml:"window_end" envconfig:"WINDOW_END" validate:"required"`
	ExcludedBranch string `yaml:"excluded_branch" envconfig:"EXCLUDED_BRANCH"`
	CommissionRate string `yaml:"commission_rate" envconfig:"COMMISSION_RATE" validate:"required"`
	CurrencyPrefix string `yaml:"currency_prefix" envconfig:"CURRENCY_PREFIX" validate:"required"`
	// BaselineFile is an optional YAML map of branch name to amount already
	// collected. When empty the compiled-in table is used.
	BaselineFile string `yaml:"baseline_file" envconfig:"BASELINE_FILE"`
}

// DefaultReport returns the fixed January report parameters
func DefaultReport() ReportConfig {
	return ReportConfig{
		Title:          "January arrear collection challenge",
		SourceFile:     "sample.xlsx",
		WindowStart:    "2026-01-01",
		WindowEnd:      "2026-01-21",
		ExcludedBranch: "Advans Branch",
		CommissionRate: "0.03",
		CurrencyPrefix: "Ksh",
	}
}

// DefaultCollectedBaseline returns the amounts each branch had already
// collected by 21 January, before the challenge started counting.
func DefaultCollectedBaseline() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Kitengala Branch":  decimal.NewFromInt(128_600),
		"Kawangware Branch": decimal.NewFromInt(1_148_531),
		"Adams Branch":      decimal.NewFromInt(2_401_437),
		"Pipeline Branch":   decimal.NewFromInt(2_525_739),
		"Utawala Branch":    decimal.NewFromInt(1_705_601),
		"Kasarani Branch":   decimal.NewFromInt(1_681_908),
		"Kiambu Branch":     decimal.NewFromInt(1_279_769),
	}
}

// Window parses the maturity window bounds as UTC midnights
func (r ReportConfig) Window() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, strings.TrimSpace(r.WindowStart))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid report window start %q: %w", r.WindowStart, err)
	}
	end, err = time.Parse(DateLayout, strings.TrimSpace(r.WindowEnd))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid report window end %q: %w", r.WindowEnd, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("report window end %s is before start %s", r.WindowEnd, r.WindowStart)
	}
	return start, end, nil
}

// Rate parses the commission rate
func (r ReportConfig) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(r.CommissionRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid commission rate %q: %w", r.CommissionRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("commission rate must not be negative: %s", r.CommissionRate)
	}
	return rate, nil
}

// Baseline returns the collected-by table, read from BaselineFile when set
func (r ReportConfig) Baseline() (map[string]decimal.Decimal, error) {
	if r.BaselineFile == "" {
		return DefaultCollectedBaseline(), nil
	}
	return LoadBaseline(r.BaselineFile)
}

// LoadBaseline reads a YAML mapping of branch name to collected amount.
// Amounts may be written as numbers or as strings.
func LoadBaseline(path string) (map[string]decimal.Decimal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse baseline file %s: %w", path, err)
	}

	baseline := make(map[string]decimal.Decimal, len(raw))
	for branch, value := range raw {
		amount, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(value)))
		if err != nil {
			return nil, fmt.Errorf("baseline amount for %q: %w", branch, err)
		}
		baseline[strings.TrimSpace(branch)] = amount
	}
	return baseline, nil
}
