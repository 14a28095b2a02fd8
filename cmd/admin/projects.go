package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage portfolio projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsAddCmd(),
		newProjectsUpdateCmd(),
		newProjectsRmCmd(),
	)
	return cmd
}

func projectFlags(cmd *cobra.Command, p *models.Project, technologies *[]string) {
	cmd.Flags().StringVar(&p.Title, "title", p.Title, "project title")
	cmd.Flags().StringVar(&p.Category, "category", p.Category, "category (web|mobile|api|game|other)")
	cmd.Flags().StringVar(&p.Description, "description", p.Description, "project description")
	cmd.Flags().StringVar(&p.Image, "image", p.Image, "image URL")
	cmd.Flags().StringVar(&p.Icon, "icon", p.Icon, "icon token")
	cmd.Flags().StringVar(&p.LiveURL, "live-url", p.LiveURL, "live site URL")
	cmd.Flags().StringVar(&p.GithubURL, "github-url", p.GithubURL, "repository URL")
	cmd.Flags().StringSliceVar(technologies, "tech", nil, "technologies (comma separated)")
	cmd.Flags().BoolVar(&p.Featured, "featured", p.Featured, "feature this project")
}

func newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := current.workspace.Projects.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			projects := current.workspace.Projects.List()
			fmt.Printf("%d project(s)%s\n", len(projects), marker(src))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tFEATURED\tTECHNOLOGIES")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
					p.ID, p.Title, p.Category, p.Featured, strings.Join(p.Technologies, ", "))
			}
			return w.Flush()
		},
	}
}

func newProjectsAddCmd() *cobra.Command {
	var project models.Project
	var technologies []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			project.Technologies = technologies

			created, src, err := current.workspace.Projects.Create(cmd.Context(), &project)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s%s\n", created.ID, marker(src))
			return nil
		},
	}
	projectFlags(cmd, &project, &technologies)
	return cmd
}

func newProjectsUpdateCmd() *cobra.Command {
	var edits models.Project
	var technologies []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project (full-record replace; omitted flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			if _, err := current.workspace.Projects.Refresh(cmd.Context()); err != nil {
				return err
			}

			record, err := findProject(id)
			if err != nil {
				return err
			}

			applyStringFlag(cmd, "title", &record.Title, edits.Title)
			applyStringFlag(cmd, "category", &record.Category, edits.Category)
			applyStringFlag(cmd, "description", &record.Description, edits.Description)
			applyStringFlag(cmd, "image", &record.Image, edits.Image)
			applyStringFlag(cmd, "icon", &record.Icon, edits.Icon)
			applyStringFlag(cmd, "live-url", &record.LiveURL, edits.LiveURL)
			applyStringFlag(cmd, "github-url", &record.GithubURL, edits.GithubURL)
			if cmd.Flags().Changed("tech") {
				record.Technologies = technologies
			}
			if cmd.Flags().Changed("featured") {
				record.Featured = edits.Featured
			}

			updated, src, err := current.workspace.Projects.Update(cmd.Context(), id, record)
			if err != nil {
				return err
			}
			fmt.Printf("Updated project %s%s\n", updated.ID, marker(src))
			return nil
		},
	}
	projectFlags(cmd, &edits, &technologies)
	return cmd
}

func newProjectsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			if _, err := current.workspace.Projects.Refresh(cmd.Context()); err != nil {
				return err
			}

			src, err := current.workspace.Projects.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted project %s%s\n", id, marker(src))
			return nil
		},
	}
}

func findProject(id uuid.UUID) (*models.Project, error) {
	for _, p := range current.workspace.Projects.List() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s not found", id)
}

// applyStringFlag copies value into target only when the flag was set on the
// command line, so an update keeps unspecified fields intact.
func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
