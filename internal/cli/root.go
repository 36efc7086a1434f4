package cli

import (
	"github.com/alexanderramin/projects/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Projects service.ProjectService
}

// NewRootCmd creates the top-level "projects" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "projects",
		Short:         "Track DIY projects with their materials, steps and categories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
	)

	return root
}
