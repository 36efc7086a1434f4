package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/projects/internal/cli/formatter"
	"github.com/alexanderramin/projects/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func parseProjectID(input string) (int64, error) {
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project ID %q", input)
	}
	return id, nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectDeleteCmd(app),
	)

	return cmd
}

// projectFlags are the scalar fields shared by add and update.
type projectFlags struct {
	name       string
	estimated  *decimal.Decimal
	actual     *decimal.Decimal
	difficulty int
	notes      string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().Var(newDecimalValue(&f.estimated), "estimated", "Estimated hours")
	cmd.Flags().Var(newDecimalValue(&f.actual), "actual", "Actual hours")
	cmd.Flags().IntVar(&f.difficulty, "difficulty", 0, "Difficulty (1-5)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Project notes")
}

// apply overlays the flags the user set onto p.
func (f *projectFlags) apply(cmd *cobra.Command, p *domain.Project) error {
	if cmd.Flags().Changed("name") {
		p.Name = f.name
	}
	if cmd.Flags().Changed("estimated") {
		p.EstimatedHours = f.estimated
	}
	if cmd.Flags().Changed("actual") {
		p.ActualHours = f.actual
	}
	if cmd.Flags().Changed("difficulty") {
		if f.difficulty < 1 || f.difficulty > 5 {
			return fmt.Errorf("difficulty must be between 1 and 5, got %d", f.difficulty)
		}
		d := f.difficulty
		p.Difficulty = &d
	}
	if cmd.Flags().Changed("notes") {
		n := f.notes
		p.Notes = &n
	}
	return nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{}
			if err := flags.apply(cmd, p); err != nil {
				return err
			}

			saved, err := app.Projects.Add(cmd.Context(), p)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%d]\n", saved.Name, saved.ID)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show ID",
		Aliases: []string{"inspect"},
		Short:   "Show a project with its materials, steps and categories",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectDetail(p))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project's details",
		Long: "Update a project's details. Flags that are not given keep their " +
			"current value; the full record is written back.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd, p); err != nil {
				return err
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%d]\n", p.Name, p.ID)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"remove"},
		Short:   "Delete a project with its materials and steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %d was deleted.\n", id)
			return nil
		},
	}
}
