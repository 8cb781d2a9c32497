package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"go.fmods.dev/fmods/internal/core/domain"
	"go.fmods.dev/fmods/internal/ui/style"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	modStyle      = lipgloss.NewStyle().Foreground(style.Copper)
	countStyle    = lipgloss.NewStyle().Foreground(style.Blue)
	installStyle  = lipgloss.NewStyle().Foreground(style.Green)
	updateStyle   = lipgloss.NewStyle().Foreground(style.Yellow)
	conflictStyle = lipgloss.NewStyle().Foreground(style.Red)

	arrow = style.Arrow
)

// renderPlan prints the install/update/conflict sections of a change plan.
func (a *App) renderPlan(plan *domain.Plan) {
	fmt.Fprintf(a.out, "%s (%s):\n",
		headerStyle.Render("Install"), installStyle.Render(fmt.Sprint(len(plan.Install))))
	for _, action := range plan.Install {
		fmt.Fprintf(a.out, "  %s %s\n", modStyle.Render(action.ModID), action.Version)
	}

	fmt.Fprintf(a.out, "%s (%s):\n",
		headerStyle.Render("Update"), updateStyle.Render(fmt.Sprint(len(plan.Update))))
	for _, action := range plan.Update {
		fmt.Fprintf(a.out, "  %s %s %s %s\n",
			modStyle.Render(action.ModID), action.OldVersion, arrow, action.NewVersion)
	}

	fmt.Fprintf(a.out, "%s (%s):\n",
		headerStyle.Render("Conflicts"), conflictStyle.Render(fmt.Sprint(len(plan.Conflicts))))
	for _, modID := range plan.Conflicts {
		fmt.Fprintf(a.out, "  %s\n", modStyle.Render(modID))
	}
}

// renderInstance prints the instance summary shown by the info command and
// after registering an instance.
func (a *App) renderInstance(name string, snapshot *domain.Snapshot) {
	fmt.Fprintf(a.out, "Instance:       %s\n", modStyle.Render(name))
	fmt.Fprintf(a.out, "Path:           %s\n", snapshot.Path)
	fmt.Fprintf(a.out, "Version:        %s\n", snapshot.GameVersion)
	fmt.Fprintf(a.out, "Mods installed: %s\n", countStyle.Render(fmt.Sprint(len(snapshot.Mods))))
	fmt.Fprintln(a.out, "Game content versions:")
	for contentID, contentVersion := range snapshot.ContentVersions {
		fmt.Fprintf(a.out, "  %s %s\n", contentID, contentVersion)
	}
}
