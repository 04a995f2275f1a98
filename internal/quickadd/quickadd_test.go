package quickadd

import (
	"testing"
	"time"

	"github.com/dori/kairo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sunday
var today = model.NewDate(2026, time.October, 18)

func TestParseFullEntry(t *testing.T) {
	d := Parse("Logo refresh client:Acme_Corp ₦1,500 paid:500 due:friday !high @design @brand #branding", model.KindClient, today)

	assert.Equal(t, model.KindClient, d.Kind)
	assert.Equal(t, "Logo refresh", d.ProjectName)
	assert.Equal(t, "Acme Corp", d.ClientName)
	assert.Equal(t, "₦1500", d.TotalAmount)
	assert.Equal(t, "₦500", d.AmountPaid)
	assert.Equal(t, model.PriorityHigh, d.Priority)
	assert.Equal(t, []string{"design", "brand"}, d.Tags)
	assert.Equal(t, "branding", d.Category)
	require.NotNil(t, d.DueDate)
	assert.Equal(t, model.NewDate(2026, time.October, 23), *d.DueDate)
}

func TestParseKeepsUnknownTokensInTitle(t *testing.T) {
	d := Parse("Fix !!! bug due:someday", model.KindPersonal, today)
	assert.Equal(t, "Fix !!! bug due:someday", d.ProjectName)
	assert.Empty(t, d.Priority)
	assert.Nil(t, d.DueDate)
}

func TestParsePaidWithoutTotal(t *testing.T) {
	d := Parse("Gym paid:20", model.KindPersonal, today)
	assert.Equal(t, "₦20", d.AmountPaid)

	d = Parse("Site $300 paid:$100", model.KindClient, today)
	assert.Equal(t, "$300", d.TotalAmount)
	assert.Equal(t, "$100", d.AmountPaid)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want model.Date
	}{
		{"today", today},
		{"tomorrow", model.NewDate(2026, time.October, 19)},
		{"TOM", model.NewDate(2026, time.October, 19)},
		{"nextweek", model.NewDate(2026, time.October, 25)},
		{"monday", model.NewDate(2026, time.October, 19)},
		// Same weekday means next week
		{"sun", model.NewDate(2026, time.October, 25)},
		{"+10d", model.NewDate(2026, time.October, 28)},
		{"2026-12-01", model.NewDate(2026, time.December, 1)},
		{"12/01/2026", model.NewDate(2026, time.December, 1)},
		{"jan5", model.NewDate(2026, time.January, 5)},
		{"Jan5,2027", model.NewDate(2027, time.January, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in, today)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "someday", "+d", "+xd", "2026-13-01"} {
		_, ok := ParseDate(bad, today)
		assert.False(t, ok, bad)
	}
}

func TestFormatDue(t *testing.T) {
	assert.Equal(t, "today", FormatDue(today, today))
	assert.Equal(t, "tomorrow", FormatDue(today.AddDays(1), today))
	assert.Equal(t, "yesterday", FormatDue(today.AddDays(-1), today))
	assert.Equal(t, "Fri, Oct 23", FormatDue(today.AddDays(5), today))
	assert.Equal(t, "Jan 5, 2027", FormatDue(model.NewDate(2027, time.January, 5), today))
}
