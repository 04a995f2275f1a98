// Package money carries monetary values as integer minor units and adapts the
// legacy "<symbol><decimal>" text form used in persisted tasks.
package money

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is assumed when a blank amount is parsed
const DefaultCurrency = "₦"

// Amount is a currency symbol plus a value in hundredths
type Amount struct {
	Currency string
	Minor    int64
}

// New builds an amount from a whole-unit float value. Values beyond the
// int64 range of hundredths saturate at its bounds.
func New(currency string, value float64) Amount {
	minor := math.Round(value * 100)
	switch {
	case math.IsNaN(minor):
		minor = 0
	case minor >= math.MaxInt64:
		return Amount{Currency: currency, Minor: math.MaxInt64}
	case minor <= math.MinInt64:
		return Amount{Currency: currency, Minor: math.MinInt64}
	}
	return Amount{Currency: currency, Minor: int64(minor)}
}

// Parse reads a legacy amount such as "₦1500" or "$12.50".
//
// Everything before the first digit or dot is the currency symbol. The first
// run of digits and dots is the value; anything after a second dot in that run
// is ignored. Blank or unparseable input yields zero.
func Parse(s string) Amount {
	if s == "" {
		return Amount{Currency: DefaultCurrency}
	}

	start := strings.IndexFunc(s, isNumeric)
	if start < 0 {
		return Amount{Currency: s}
	}
	currency := s[:start]

	end := start
	for end < len(s) && isNumeric(rune(s[end])) {
		end++
	}
	run := s[start:end]
	if i := strings.IndexByte(run, '.'); i >= 0 {
		if j := strings.IndexByte(run[i+1:], '.'); j >= 0 {
			run = run[:i+1+j]
		}
	}

	value, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return Amount{Currency: currency}
	}
	return New(currency, value)
}

func isNumeric(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// Value returns the amount in whole units
func (a Amount) Value() float64 {
	return float64(a.Minor) / 100
}

// IsZero reports whether the amount has no value
func (a Amount) IsZero() bool {
	return a.Minor == 0
}

// Add returns a + b, keeping a's currency unless it is empty. The sum
// saturates instead of wrapping.
func (a Amount) Add(b Amount) Amount {
	sum := a.Minor + b.Minor
	switch {
	case b.Minor > 0 && sum < a.Minor:
		sum = math.MaxInt64
	case b.Minor < 0 && sum > a.Minor:
		sum = math.MinInt64
	}
	return Amount{Currency: pickCurrency(a, b), Minor: sum}
}

// Sub returns a - b, keeping a's currency unless it is empty. The difference
// saturates instead of wrapping.
func (a Amount) Sub(b Amount) Amount {
	diff := a.Minor - b.Minor
	switch {
	case b.Minor < 0 && diff < a.Minor:
		diff = math.MaxInt64
	case b.Minor > 0 && diff > a.Minor:
		diff = math.MinInt64
	}
	return Amount{Currency: pickCurrency(a, b), Minor: diff}
}

// ClampZero returns the amount floored at zero
func (a Amount) ClampZero() Amount {
	if a.Minor < 0 {
		a.Minor = 0
	}
	return a
}

func pickCurrency(a, b Amount) string {
	if a.Currency != "" {
		return a.Currency
	}
	return b.Currency
}

// String formats the amount back into the legacy text form, with no trailing
// zeros: "₦1500", "$12.5".
func (a Amount) String() string {
	return a.Currency + strconv.FormatFloat(a.Value(), 'f', -1, 64)
}

// Humanize formats the amount with digit grouping for display: "₦1,500.00"
func (a Amount) Humanize() string {
	p := message.NewPrinter(language.English)
	return a.Currency + p.Sprintf("%.2f", a.Value())
}

// Progress returns paid as a percentage of total, capped at 100.
// A non-positive total yields 0.
func Progress(total, paid Amount) int {
	if total.Minor <= 0 {
		return 0
	}
	pct := math.Round(float64(paid.Minor) / float64(total.Minor) * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}
