package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		currency string
		minor    int64
	}{
		{"₦1500", "₦", 150000},
		{"$12.50", "$", 1250},
		{"$200", "$", 20000},
		{"1500", "", 150000},
		{"", DefaultCurrency, 0},
		{"N/A", "N/A", 0},
		{"€ 99.999", "€ ", 10000},
		{"$1.2.3", "$", 120},
		{"$.", "$", 0},
		{"USD 40 approx", "USD ", 4000},
		{"$1,500", "$", 100},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Parse(tt.in)
			assert.Equal(t, tt.currency, got.Currency)
			assert.Equal(t, tt.minor, got.Minor)
		})
	}
}

func TestParseValue(t *testing.T) {
	a := Parse("₦1500")
	assert.Equal(t, 1500.0, a.Value())
	assert.Equal(t, "₦", a.Currency)
}

func TestString(t *testing.T) {
	assert.Equal(t, "₦1500", New("₦", 1500).String())
	assert.Equal(t, "$12.5", New("$", 12.5).String())
	assert.Equal(t, "$0", Amount{Currency: "$"}.String())
	assert.Equal(t, "$150", Parse("$200").Sub(Parse("$50")).String())
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "₦1,500.00", New("₦", 1500).Humanize())
	assert.Equal(t, "$0.25", New("$", 0.25).Humanize())
}

func TestClampZero(t *testing.T) {
	assert.Equal(t, int64(0), Parse("$50").Sub(Parse("$80")).ClampZero().Minor)
	assert.Equal(t, int64(3000), Parse("$80").Sub(Parse("$50")).ClampZero().Minor)
}

func TestCurrencyFallback(t *testing.T) {
	assert.Equal(t, "$", Amount{}.Add(Parse("$5")).Currency)
	assert.Equal(t, "€", Parse("€5").Add(Parse("$5")).Currency)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(Amount{}, Parse("$10")))
	assert.Equal(t, 25, Progress(Parse("$200"), Parse("$50")))
	assert.Equal(t, 100, Progress(Parse("$200"), Parse("$500")))
	assert.Equal(t, 33, Progress(Parse("$3"), Parse("$1")))
}

func TestParseHugeAmountSaturates(t *testing.T) {
	a := Parse("$100000000000000000000")
	assert.Equal(t, "$", a.Currency)
	assert.Equal(t, int64(math.MaxInt64), a.Minor)
	assert.Equal(t, int64(math.MaxInt64), New("$", 1e30).Minor)
	assert.Equal(t, int64(math.MinInt64), New("$", -1e30).Minor)

	assert.Equal(t, int64(math.MaxInt64), a.Add(Parse("$5")).Minor)
	assert.Equal(t, int64(math.MinInt64), Amount{Minor: math.MinInt64}.Sub(Parse("$5")).Minor)
	assert.Equal(t, int64(0), a.Sub(a).Minor)
	assert.Equal(t, 100, Progress(a, a))
}
