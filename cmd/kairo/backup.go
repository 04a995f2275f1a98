package main

import (
	"github.com/dori/kairo/internal/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all tasks, settings and inbox entries to a backup file",
		Long:  "Write a backup document. Files ending in .yaml or .yml are written as YAML, anything else as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				doc, err := a.Export(afero.NewOsFs(), args[0])
				if err != nil {
					return err
				}
				c.printf("Exported %d client and %d personal tasks to %s\n",
					len(doc.ClientTasks), len(doc.PersonalTasks), args[0])
				return nil
			})
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				doc, err := a.Import(afero.NewOsFs(), args[0])
				if err != nil {
					return err
				}
				c.printf("Imported %d client and %d personal tasks from %s\n",
					len(doc.ClientTasks), len(doc.PersonalTasks), args[0])
				return nil
			})
		},
	}
}
