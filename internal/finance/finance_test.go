package finance

import (
	"math/rand"
	"testing"

	"github.com/dori/kairo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregateEmpty(t *testing.T) {
	o := Aggregate(nil)
	assert.Equal(t, int64(0), o.TotalRevenue.Minor)
	assert.Equal(t, int64(0), o.TotalPaid.Minor)
	assert.Equal(t, int64(0), o.TotalOutstanding.Minor)
	assert.Equal(t, 0, o.PricedTasks)
}

func TestAggregatePaidFromOutstanding(t *testing.T) {
	tasks := []model.Task{
		// Stale paid field: paid is taken as total minus outstanding.
		{ID: 1, TotalAmount: "$200", AmountPaid: "$10", OutstandingAmount: "$50"},
	}

	o := Aggregate(tasks)
	assert.Equal(t, "$", o.Currency)
	assert.Equal(t, 200.0, o.TotalRevenue.Value())
	assert.Equal(t, 150.0, o.TotalPaid.Value())
	assert.Equal(t, 50.0, o.TotalOutstanding.Value())
}

func TestAggregateSkipsUnpriced(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, TotalAmount: "₦1500", OutstandingAmount: "₦500"},
		{ID: 2, OutstandingAmount: "₦900"},
		{ID: 3, TotalAmount: "₦250.50"},
		{ID: 4, TotalAmount: "₦abc", OutstandingAmount: "₦0"},
	}

	o := Aggregate(tasks)
	assert.Equal(t, 3, o.PricedTasks)
	assert.Equal(t, int64(175050), o.TotalRevenue.Minor)
	// Task 3 has no outstanding field, so all of it counts as paid.
	assert.Equal(t, int64(125050), o.TotalPaid.Minor)
	assert.Equal(t, int64(50000), o.TotalOutstanding.Minor)
	assert.Equal(t, "₦1,750.50", o.TotalRevenue.Humanize())
}

func TestAggregateOrderInvariant(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, TotalAmount: "$100", OutstandingAmount: "$20"},
		{ID: 2, TotalAmount: "$35.75", OutstandingAmount: "$0"},
		{ID: 3, TotalAmount: "$12", OutstandingAmount: "$12"},
		{ID: 4, TotalAmount: "$7.10", OutstandingAmount: "$3.05"},
	}
	want := Aggregate(tasks)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.Task(nil), tasks...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Aggregate(shuffled))
	}
}

func TestAggregateKind(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Kind: model.KindClient, TotalAmount: "$100", OutstandingAmount: "$40"},
		{ID: 2, Kind: model.KindPersonal, TotalAmount: "$30", OutstandingAmount: "$0"},
	}

	client := AggregateKind(tasks, model.KindClient)
	assert.Equal(t, 100.0, client.TotalRevenue.Value())
	assert.Equal(t, 60, client.PaidPercent())

	personal := AggregateKind(tasks, model.KindPersonal)
	assert.Equal(t, 30.0, personal.TotalPaid.Value())
	assert.Equal(t, 100, personal.PaidPercent())
}
