// Package quickadd parses one-line task entries such as
// "Logo refresh client:Acme $500 due:friday !high @design".
package quickadd

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/money"
	"github.com/dori/kairo/internal/tasks"
)

// Parse turns quick-add text into a task draft of the given kind.
//
// Recognized tokens:
//
//	@tag            tag
//	#category       category
//	!priority       !low !medium !high !urgent (and l, m, h, u)
//	due:<date>      due date, see ParseDate
//	start:<date>    start date
//	client:<name>   client name, underscores become spaces
//	$500 ₦1,500     total amount, any currency symbol prefix
//	paid:<amount>   amount paid, inheriting the total's currency
//
// Tokens that do not parse stay in the project name.
func Parse(text string, kind model.Kind, today model.Date) tasks.Draft {
	d := tasks.Draft{Kind: kind}
	var title []string
	var paid string

	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(word, "@") && len(word) > 1:
			d.Tags = append(d.Tags, strings.TrimPrefix(word, "@"))

		case strings.HasPrefix(word, "#") && len(word) > 1:
			d.Category = strings.TrimPrefix(word, "#")

		case strings.HasPrefix(word, "!"):
			if p, ok := parsePriority(strings.TrimPrefix(lower, "!")); ok {
				d.Priority = p
			} else {
				title = append(title, word)
			}

		case strings.HasPrefix(lower, "due:"):
			if date, ok := ParseDate(word[len("due:"):], today); ok {
				d.DueDate = &date
			} else {
				title = append(title, word)
			}

		case strings.HasPrefix(lower, "start:"):
			if date, ok := ParseDate(word[len("start:"):], today); ok {
				d.StartDate = &date
			} else {
				title = append(title, word)
			}

		case strings.HasPrefix(lower, "client:") && len(word) > len("client:"):
			d.ClientName = strings.ReplaceAll(word[len("client:"):], "_", " ")

		case strings.HasPrefix(lower, "paid:") && len(word) > len("paid:"):
			paid = strings.ReplaceAll(word[len("paid:"):], ",", "")

		case isAmount(word):
			d.TotalAmount = strings.ReplaceAll(word, ",", "")

		default:
			title = append(title, word)
		}
	}

	if paid != "" {
		d.AmountPaid = withCurrency(paid, d.TotalAmount)
	}
	d.ProjectName = strings.Join(title, " ")
	return d
}

func parsePriority(s string) (model.Priority, bool) {
	switch s {
	case "low", "l":
		return model.PriorityLow, true
	case "medium", "med", "m":
		return model.PriorityMedium, true
	case "high", "hi", "h":
		return model.PriorityHigh, true
	case "urgent", "u":
		return model.PriorityUrgent, true
	}
	return "", false
}

// isAmount reports whether word is a currency symbol followed by a number
func isAmount(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	if !unicode.Is(unicode.Sc, r) || size == len(word) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(word[size:])
	return unicode.IsDigit(next) || next == '.'
}

// withCurrency prefixes a bare number with the currency of total
func withCurrency(amount, total string) string {
	r, _ := utf8.DecodeRuneInString(amount)
	if !unicode.IsDigit(r) && r != '.' {
		return amount
	}
	currency := money.DefaultCurrency
	if total != "" {
		currency = money.Parse(total).Currency
	}
	return currency + amount
}

var dateLayouts = []string{
	model.DateLayout,
	"01/02/2006",
	"01-02-2006",
	"Jan2",
	"Jan2,2006",
}

// ParseDate reads a natural or explicit date relative to today: today,
// tomorrow (tom), weekday names (next occurrence, never today), nextweek,
// +Nd, or one of the explicit layouts above.
func ParseDate(s string, today model.Date) (model.Date, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDays(1), true
	case "nextweek":
		return today.AddDays(7), true
	}
	if day, ok := weekdays[s]; ok {
		return nextWeekday(today, day), true
	}
	if strings.HasPrefix(s, "+") && strings.HasSuffix(s, "d") {
		n := 0
		for _, r := range s[1 : len(s)-1] {
			if r < '0' || r > '9' {
				return model.Date{}, false
			}
			n = n*10 + int(r-'0')
		}
		if len(s) > 2 {
			return today.AddDays(n), true
		}
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			// Month layouts are case sensitive
			t, err = time.Parse(layout, titleMonth(s))
		}
		if err != nil {
			continue
		}
		d := model.DateOf(t)
		// Layouts without a year parse as year 0
		if d.Year == 0 {
			d = model.NewDate(today.Year, d.Month, d.Day)
		}
		return d, true
	}
	return model.Date{}, false
}

func titleMonth(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

func nextWeekday(today model.Date, day time.Weekday) model.Date {
	daysUntil := int(day - today.Time().Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDays(daysUntil)
}

// FormatDue renders a due date relative to today
func FormatDue(d, today model.Date) string {
	switch today.DaysUntil(d) {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}
	if d.Year == today.Year {
		return d.Time().Format("Mon, Jan 2")
	}
	return d.Time().Format("Jan 2, 2006")
}
