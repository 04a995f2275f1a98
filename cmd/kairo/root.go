package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/ui"
	"github.com/dori/kairo/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries what every subcommand needs once flags are parsed
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *app.Config
	out     io.Writer
	// now overrides the clock in tests
	now     func() time.Time
}

func (c *cli) open(lock bool) (*app.App, error) {
	return app.New(c.cfg, app.Options{Lock: lock, Now: c.now})
}

// withApp opens the application without the instance lock, runs fn and
// closes it again
func (c *cli) withApp(fn func(a *app.App) error) error {
	a, err := c.open(false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func newRootCmd(out io.Writer) *cobra.Command {
	return buildRootCmd(&cli{v: viper.New(), out: out})
}

func buildRootCmd(c *cli) *cobra.Command {
	var startView string

	root := &cobra.Command{
		Use:   "kairo",
		Short: "Track client work, personal tasks and what you are owed",
		Long: `kairo keeps client and personal tasks in one place, ranks them by urgency,
reminds you about overdue and upcoming work, and totals revenue, payments and
outstanding balances.

Run without a subcommand to open the terminal UI.`,
		Example: `  kairo
  kairo add "Logo design client:Acme @design !high due:friday $1500"
  kairo list --kind client
  kairo pay 1760000000000 $500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(c.v, c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			view, ok := ui.ViewByName(startView)
			if !ok {
				return fmt.Errorf("unknown view %q", startView)
			}
			return runTUI(cmd.Context(), c, view)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.out)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is <config dir>/kairo/config.yaml)")
	flags.String("data-dir", "", "directory holding the database and log")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = c.v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.Flags().StringVar(&startView, "view", "dashboard", "starting view (dashboard, tasks, due, completed, inbox)")

	root.AddCommand(
		newAddCmd(c),
		newEditCmd(c),
		newListCmd(c),
		newDueCmd(c),
		newDoneCmd(c),
		newRmCmd(c),
		newPayCmd(c),
		newScanCmd(c),
		newWatchCmd(c),
		newInboxCmd(c),
		newMessagesCmd(c),
		newFinanceCmd(c),
		newStatsCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newSettingsCmd(c),
		newVersionCmd(c),
	)
	return root
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.printf("kairo v%s\n", version)
		},
	}
}

// runTUI opens the locked application, starts the watcher and runs the UI
// until it quits
func runTUI(ctx context.Context, c *cli, view ui.View) error {
	if ctx == nil {
		ctx = context.Background()
	}
	application, err := c.open(true)
	if err != nil {
		return err
	}
	defer application.Close()

	model := ui.NewRootModel(application).WithView(view)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := watch.New(watch.Config{
		Path:     application.DB.Path(),
		Interval: c.cfg.RescanInterval,
	}, func(ctx context.Context, reason watch.Reason) {
		if reason == watch.ReasonFileChange {
			if err := application.Reload(); err != nil {
				application.Logger.Warn("reload failed", "error", err)
				return
			}
		}
		raised := application.Rescan()
		p.Send(ui.ReloadMsg{Reason: string(reason), Raised: len(raised)})
	}, application.Logger)

	go func() {
		if err := w.Run(ctx); err != nil {
			application.Logger.Error("watcher stopped", "error", err)
		}
	}()

	_, err = p.Run()
	return err
}

// parseID parses a task id argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
