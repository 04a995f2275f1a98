package main

import (
	"fmt"

	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/ui/theme"
	"github.com/spf13/cobra"
)

func newSettingsCmd(c *cli) *cobra.Command {
	var (
		themeName, userName                  string
		overdue, upcoming, updates, payments bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
		Example: `  kairo settings
  kairo settings --theme purple --name "Ada"
  kairo settings --payments=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("theme") {
				if _, ok := theme.ByName(themeName); !ok {
					return fmt.Errorf("unknown theme %q", themeName)
				}
			}

			return c.withApp(func(a *app.App) error {
				s := a.Settings()
				if cmd.LocalNonPersistentFlags().NFlag() > 0 {
					var err error
					s, err = a.UpdateSettings(func(s *model.Settings) {
						if flags.Changed("theme") {
							s.Theme = themeName
						}
						if flags.Changed("name") {
							s.UserName = userName
						}
						if flags.Changed("overdue") {
							s.Notifications.Overdue = overdue
						}
						if flags.Changed("upcoming") {
							s.Notifications.Upcoming = upcoming
						}
						if flags.Changed("updates") {
							s.Notifications.Updates = updates
						}
						if flags.Changed("payments") {
							s.Notifications.Payments = payments
						}
					})
					if err != nil {
						return err
					}
				}

				onOff := func(b bool) string {
					if b {
						return "on"
					}
					return "off"
				}
				c.printf("%s\n", renderTable(
					[]string{"Setting", "Value"},
					[][]string{
						{"name", s.UserName},
						{"theme", s.Theme},
						{"overdue alerts", onOff(s.Notifications.Overdue)},
						{"upcoming alerts", onOff(s.Notifications.Upcoming)},
						{"update alerts", onOff(s.Notifications.Updates)},
						{"payment alerts", onOff(s.Notifications.Payments)},
					},
				))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&themeName, "theme", "", "color theme (blue, purple, green, orange, pink)")
	f.StringVar(&userName, "name", "", "your name")
	f.BoolVar(&overdue, "overdue", true, "notify about overdue tasks")
	f.BoolVar(&upcoming, "upcoming", true, "notify about tasks due soon")
	f.BoolVar(&updates, "updates", true, "notify when tasks are completed or paid")
	f.BoolVar(&payments, "payments", true, "notify about unpaid balances")
	return cmd
}
