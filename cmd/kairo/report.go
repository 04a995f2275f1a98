package main

import (
	"fmt"
	"strings"

	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/finance"
	"github.com/dori/kairo/internal/model"
	"github.com/spf13/cobra"
)

func newFinanceCmd(c *cli) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Show revenue, payments and outstanding balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && !model.Kind(kind).Valid() {
				return fmt.Errorf("unknown kind %q", kind)
			}
			return c.withApp(func(a *app.App) error {
				rows := [][]string{}
				add := func(label string, o finance.Overview) {
					rows = append(rows, []string{
						label,
						o.TotalRevenue.Humanize(),
						o.TotalPaid.Humanize(),
						o.TotalOutstanding.Humanize(),
						fmt.Sprintf("%d%%", o.PaidPercent()),
						fmt.Sprintf("%d", o.PricedTasks),
					})
				}

				all := a.Tasks.All()
				if kind != "" {
					add(kind, finance.AggregateKind(all, model.Kind(kind)))
				} else {
					for _, k := range model.Kinds() {
						add(string(k), finance.AggregateKind(all, k))
					}
					add("all", finance.Aggregate(all))
				}
				c.printf("%s\n", renderTable(
					[]string{"Scope", "Revenue", "Paid", "Outstanding", "Paid %", "Priced"},
					rows,
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only client or personal tasks")
	return cmd
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				s := a.Tasks.Stats()
				c.printf("%s\n", renderTable(
					[]string{"Total", "Completed", "In progress", "Not started", "Overdue", "Due soon"},
					[][]string{{
						fmt.Sprint(s.Total),
						fmt.Sprint(s.Completed),
						fmt.Sprint(s.InProgress),
						fmt.Sprint(s.NotStarted),
						fmt.Sprint(s.Overdue),
						fmt.Sprint(s.DueSoon),
					}},
				))
				if tags := a.Tasks.Tags(); len(tags) > 0 {
					c.printf("Tags: %s\n", strings.Join(tags, ", "))
				}
				return nil
			})
		},
	}
}
