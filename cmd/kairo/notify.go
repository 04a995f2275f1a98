package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/watch"
	"github.com/spf13/cobra"
)

func printNotifications(c *cli, ns []model.Notification) {
	for _, n := range ns {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		c.printf("%s %s  %s  %s\n", mark, n.Date.Local().Format("2006-01-02 15:04"), titleStyle.Render(n.Title), n.Message)
	}
}

func newScanCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Check tasks for overdue, due and unpaid work once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				raised := a.Rescan()
				if len(raised) == 0 {
					c.printf("No new notifications.\n")
					return nil
				}
				printNotifications(c, raised)
				return nil
			})
		},
	}
}

func newWatchCmd(c *cli) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep checking tasks and push desktop notifications",
		Long: `Rescan tasks on an interval and whenever another kairo process changes the
database. New notifications are printed and pushed to the desktop. Stops on
interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				interval = c.cfg.RescanInterval
			}
			a, err := c.open(true)
			if errors.Is(err, app.ErrLocked) {
				return fmt.Errorf("%w; the terminal UI already watches for changes", err)
			}
			if err != nil {
				return err
			}
			defer a.Close()

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(watch.Config{
				Path:     a.DB.Path(),
				Interval: interval,
			}, func(ctx context.Context, reason watch.Reason) {
				if reason == watch.ReasonFileChange {
					if err := a.Reload(); err != nil {
						a.Logger.Warn("reload failed", "error", err)
						return
					}
				}
				printNotifications(c, a.Rescan())
			}, a.Logger)

			c.printf("Watching %s every %s. Press Ctrl+C to stop.\n", a.DB.Path(), interval)
			printNotifications(c, a.Rescan())
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "rescan interval (default from config)")
	return cmd
}

func newInboxCmd(c *cli) *cobra.Command {
	var readAll, clearAll, unread bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Show the notification log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				switch {
				case clearAll:
					a.Notifications.Clear()
					c.printf("Notifications cleared.\n")
					return nil
				case readAll:
					a.Notifications.MarkAllRead()
					c.printf("All notifications marked read.\n")
					return nil
				}

				list := a.Notifications.All()
				if unread {
					list = a.Notifications.Unread()
				}
				if len(list) == 0 {
					c.printf("Inbox is empty.\n")
					return nil
				}
				c.printf("%s\n", mutedStyle.Render(fmt.Sprintf("%d unread", a.Notifications.UnreadCount())))
				printNotifications(c, list)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&readAll, "read-all", false, "mark every notification read")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every notification")
	cmd.Flags().BoolVarP(&unread, "unread", "u", false, "only unread notifications")
	cmd.MarkFlagsMutuallyExclusive("read-all", "clear")
	return cmd
}

func newMessagesCmd(c *cli) *cobra.Command {
	var readAll bool

	cmd := &cobra.Command{
		Use:   "messages [id]",
		Short: "List inbox messages, or read one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				if readAll {
					a.Messages.MarkAllRead()
					c.printf("All messages marked read.\n")
					return nil
				}
				if len(args) == 1 {
					id, err := parseID(args[0])
					if err != nil {
						return err
					}
					m, ok := a.Messages.Get(id)
					if !ok {
						return fmt.Errorf("message %d not found", id)
					}
					a.Messages.MarkRead(id)
					c.printf("%s\nFrom: %s\nDate: %s\n\n%s\n",
						titleStyle.Render(m.Subject), m.From, m.Date.Local().Format("2006-01-02 15:04"), m.Body)
					return nil
				}

				list := a.Messages.All()
				if len(list) == 0 {
					c.printf("No messages.\n")
					return nil
				}
				for _, m := range list {
					mark := " "
					if !m.Read {
						mark = "*"
					}
					c.printf("%s %d  %s  %s\n", mark, m.ID, m.From, m.Subject)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&readAll, "read-all", false, "mark every message read")
	return cmd
}
