package loans

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order. Numeric day/month forms are day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
}

// ParseAmount converts a cell to a decimal amount. Empty cells are zero. The
// second result is false when a non-empty cell was not numeric and was
// replaced by zero.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseMaturityDate converts a cell to a date. Eight-digit cells are read as
// YYYYMMDD. Other numeric cells are Excel serial dates in the given system,
// except for text sources. Remaining text is parsed day-first. It returns
// false when the cell is empty or unparsable; the caller treats both as a
// missing date.
func ParseMaturityDate(raw string, system DateSystem) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if len(s) == 8 && isDigits(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return t.UTC(), true
		}
	}

	if system != DateSystemText {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			if serial <= 0 {
				return time.Time{}, false
			}
			t, err := excelize.ExcelDateToTime(serial, system == DateSystem1904)
			if err != nil {
				return time.Time{}, false
			}
			return t.UTC(), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
