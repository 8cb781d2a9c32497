// Package commands implements the CLI commands for the fmods mod manager.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.fmods.dev/fmods/internal/app"
)

// CLI represents the command line interface for fmods.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fmods",
		Short:         "A mod manager for Factorio instances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("instance", "i", "", "Instance to operate on (defaults to the configured default)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newInstancesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// instanceFlag returns the value of the persistent instance flag.
func (c *CLI) instanceFlag() string {
	name, _ := c.rootCmd.PersistentFlags().GetString("instance")
	return name
}
