package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Manage Factorio instances",
	}

	add := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register an instance directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			makeDefault, _ := cmd.Flags().GetBool("default")
			replace, _ := cmd.Flags().GetBool("replace")
			return c.app.AddInstance(args[0], args[1], makeDefault, replace)
		},
	}
	add.Flags().Bool("replace", false, "Replace the instance if the name is already taken")
	add.Flags().Bool("default", false, "Make this instance the default")

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Forget an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.RemoveInstance(args[0])
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the configured instances",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.ListInstances()
		},
	}

	setDefault := &cobra.Command{
		Use:   "default <name>",
		Short: "Set the default instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.SetDefaultInstance(args[0])
		},
	}

	unsetDefault := &cobra.Command{
		Use:   "unset-default",
		Short: "Clear the default instance",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.UnsetDefaultInstance()
		},
	}

	cmd.AddCommand(add, remove, list, setDefault, unsetDefault)

	return cmd
}
