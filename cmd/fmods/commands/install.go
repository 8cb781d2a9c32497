package commands

import (
	"github.com/spf13/cobra"
	"go.fmods.dev/fmods/internal/app"
	"go.fmods.dev/fmods/internal/core/domain"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <mod> [version]",
		Short: "Resolve a mod's dependencies and install them",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var version *domain.Version
			if len(args) == 2 {
				parsed, err := domain.ParseVersion(args[1])
				if err != nil {
					return err
				}
				version = &parsed
			}

			yes, _ := cmd.Flags().GetBool("yes")

			return c.app.Install(cmd.Context(), c.instanceFlag(), args[0], version, app.InstallOptions{Yes: yes})
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Apply the change plan without asking for confirmation")

	return cmd
}
