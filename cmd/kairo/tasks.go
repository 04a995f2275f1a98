package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/quickadd"
	"github.com/dori/kairo/internal/tasks"
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var personal bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Quick add a task",
		Long: `Add a task from one line of text. Recognized tokens:

  @tag           add a tag
  #category      set the category
  !priority      low, medium, high or urgent (l, m, h, u)
  due:<date>     today, tomorrow, friday, +3d, nextweek, 2026-01-15, Jan 15
  start:<date>   start date, same forms as due:
  client:<name>  client name, underscores become spaces
  $1500          total amount with any currency symbol
  paid:<amount>  amount already paid

Everything else becomes the task name.`,
		Example: `  kairo add "Logo design client:Acme @design !high due:friday $1500 paid:500"
  kairo add --personal "Renew passport #admin due:2026-11-01"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.KindClient
			if personal {
				kind = model.KindPersonal
			}
			return c.withApp(func(a *app.App) error {
				draft := quickadd.Parse(strings.Join(args, " "), kind, a.Today())
				t, err := a.Tasks.Add(draft)
				if err != nil {
					return err
				}
				c.printf("Created: %s", describeTask(t, a.Today()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&personal, "personal", "p", false, "add a personal task instead of a client task")
	return cmd
}

func newEditCmd(c *cli) *cobra.Command {
	var (
		name, client, category, description string
		status, priority, due, start, total string
		tags                                []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Example: `  kairo edit 1760000000000 --status Review --due tomorrow
  kairo edit 1760000000000 --due none --total $2000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				var p tasks.Patch
				flags := cmd.Flags()
				if flags.Changed("name") {
					p.ProjectName = &name
				}
				if flags.Changed("client") {
					p.ClientName = &client
				}
				if flags.Changed("category") {
					p.Category = &category
				}
				if flags.Changed("description") {
					p.Description = &description
				}
				if flags.Changed("tag") {
					p.Tags = &tags
				}
				if flags.Changed("total") {
					p.TotalAmount = &total
				}
				if flags.Changed("status") {
					s, ok := matchStatus(status)
					if !ok {
						return fmt.Errorf("unknown status %q", status)
					}
					p.Status = &s
				}
				if flags.Changed("priority") {
					pr, ok := matchPriority(priority)
					if !ok {
						return fmt.Errorf("unknown priority %q", priority)
					}
					p.Priority = &pr
				}
				if flags.Changed("due") {
					if err := dateFlag(due, a.Today(), &p.DueDate, &p.ClearDue); err != nil {
						return err
					}
				}
				if flags.Changed("start") {
					if err := dateFlag(start, a.Today(), &p.StartDate, &p.ClearStart); err != nil {
						return err
					}
				}

				t, err := a.UpdateTask(id, p)
				if err != nil {
					return err
				}
				c.printf("Updated: %s", describeTask(t, a.Today()))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "project name")
	f.StringVar(&client, "client", "", "client name")
	f.StringVar(&category, "category", "", "category")
	f.StringVar(&description, "description", "", "description")
	f.StringVar(&status, "status", "", "status (Not Started, Started, Processing, Review, Review Correction, Completed)")
	f.StringVar(&priority, "priority", "", "priority (Low, Medium, High, Urgent)")
	f.StringVar(&due, "due", "", "due date, or none to clear it")
	f.StringVar(&start, "start", "", "start date, or none to clear it")
	f.StringVar(&total, "total", "", "total amount, e.g. $1500")
	f.StringSliceVar(&tags, "tag", nil, "replace the tags (repeatable)")
	return cmd
}

// dateFlag parses a date flag value into a patch field. "none" clears it.
func dateFlag(value string, today model.Date, target **model.Date, clear *bool) error {
	if strings.EqualFold(value, "none") || value == "" {
		*clear = true
		return nil
	}
	d, ok := quickadd.ParseDate(value, today)
	if !ok {
		return fmt.Errorf("invalid date %q", value)
	}
	*target = &d
	return nil
}

func matchStatus(s string) (model.Status, bool) {
	for _, st := range model.Statuses() {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

func matchPriority(s string) (model.Priority, bool) {
	for _, p := range model.Priorities() {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

func newListCmd(c *cli) *cobra.Command {
	var kind, status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by urgency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want model.Status
			if status != "" {
				s, ok := matchStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				want = s
			}
			if kind != "" && !model.Kind(kind).Valid() {
				return fmt.Errorf("unknown kind %q", kind)
			}

			return c.withApp(func(a *app.App) error {
				var out []model.Task
				for _, t := range a.Tasks.Sorted() {
					if kind != "" && t.Kind != model.Kind(kind) {
						continue
					}
					if want != "" && t.Status != want {
						continue
					}
					out = append(out, t)
				}
				if len(out) == 0 {
					c.printf("No tasks.\n")
					return nil
				}
				c.printf("%s\n", renderTasks(out, a.Today()))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only client or personal tasks")
	cmd.Flags().StringVarP(&status, "status", "s", "", "only tasks in this status")
	return cmd
}

func newDueCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Show overdue tasks and tasks due within three days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				today := a.Today()
				overdue, soon := a.Tasks.Overdue(), a.Tasks.DueSoon()

				c.printf("%s\n", titleStyle.Render(fmt.Sprintf("Overdue (%d)", len(overdue))))
				if len(overdue) > 0 {
					c.printf("%s\n", renderTasks(overdue, today))
				}
				c.printf("%s\n", titleStyle.Render(fmt.Sprintf("Due soon (%d)", len(soon))))
				if len(soon) > 0 {
					c.printf("%s\n", renderTasks(soon, today))
				}
				return nil
			})
		},
	}
}

func newDoneCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		Short:   "Mark a task completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				before, err := a.Tasks.Get(id)
				if err != nil {
					return err
				}
				if before.IsCompleted() {
					c.printf("%q is already completed.\n", before.Name())
					return nil
				}
				t, err := a.CompleteTask(id)
				if err != nil {
					return err
				}
				c.printf("Completed: %s", describeTask(t, a.Today()))
				return nil
			})
		},
	}
}

func newRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				t, err := a.Tasks.Get(id)
				if err != nil {
					return err
				}
				if err := a.DeleteTask(id); err != nil {
					return err
				}
				c.printf("Deleted: %s\n", t.Name())
				return nil
			})
		},
	}
}

func newPayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id> <amount>",
		Short: "Record the total amount paid on a task",
		Long: `Set the amount paid so far on a task. The outstanding balance and payment
progress are recomputed. A bare number uses the task's currency.`,
		Example: `  kairo pay 1760000000000 500
  kairo pay 1760000000000 ₦1,500`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				before, err := a.Tasks.Get(id)
				if err != nil {
					return err
				}
				amount := strings.ReplaceAll(args[1], ",", "")
				if amount != "" && (amount[0] >= '0' && amount[0] <= '9' || amount[0] == '.') {
					amount = before.Total().Currency + amount
				}
				t, err := a.RecordPayment(id, amount)
				if errors.Is(err, tasks.ErrNoTotal) {
					return fmt.Errorf("%q has no total amount; set one with kairo edit %d --total <amount>", before.Name(), id)
				}
				if err != nil {
					return err
				}
				c.printf("Recorded: %s", describeTask(t, a.Today()))
				return nil
			})
		},
	}
}
