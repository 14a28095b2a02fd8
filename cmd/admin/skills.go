package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Skill category commands

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage skill categories",
	}
	cmd.AddCommand(
		newCategoriesListCmd(),
		newCategoriesAddCmd(),
		newCategoriesUpdateCmd(),
		newCategoriesRmCmd(),
	)
	return cmd
}

func categoryFlags(cmd *cobra.Command, c *models.SkillCategory) {
	cmd.Flags().StringVar(&c.Name, "name", c.Name, "category name")
	cmd.Flags().StringVar(&c.Description, "description", c.Description, "category description")
	cmd.Flags().StringVar(&c.Icon, "icon", c.Icon, "icon token")
	cmd.Flags().IntVar(&c.DisplayOrder, "order", c.DisplayOrder, "display order")
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skill categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := current.workspace.Categories.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			categories := current.workspace.Categories.List()
			fmt.Printf("%d categor(ies)%s\n", len(categories), marker(src))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tORDER\tDESCRIPTION")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.Name, c.DisplayOrder, c.Description)
			}
			return w.Flush()
		},
	}
}

func newCategoriesAddCmd() *cobra.Command {
	var category models.SkillCategory

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a skill category",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, src, err := current.workspace.Categories.Create(cmd.Context(), &category)
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s%s\n", created.ID, marker(src))
			return nil
		},
	}
	categoryFlags(cmd, &category)
	return cmd
}

func newCategoriesUpdateCmd() *cobra.Command {
	var edits models.SkillCategory

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a skill category (omitted flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			if _, err := current.workspace.Categories.Refresh(cmd.Context()); err != nil {
				return err
			}

			record, err := findCategory(id)
			if err != nil {
				return err
			}

			applyStringFlag(cmd, "name", &record.Name, edits.Name)
			applyStringFlag(cmd, "description", &record.Description, edits.Description)
			applyStringFlag(cmd, "icon", &record.Icon, edits.Icon)
			if cmd.Flags().Changed("order") {
				record.DisplayOrder = edits.DisplayOrder
			}

			updated, src, err := current.workspace.Categories.Update(cmd.Context(), id, record)
			if err != nil {
				return err
			}
			fmt.Printf("Updated category %s%s\n", updated.ID, marker(src))
			return nil
		},
	}
	categoryFlags(cmd, &edits)
	return cmd
}

func newCategoriesRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a skill category and every skill in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			if !yes {
				fmt.Print("This will also delete all skills in this category. Continue? [y/N] ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if _, err := current.workspace.Refresh(cmd.Context()); err != nil {
				return err
			}

			src, err := current.workspace.DeleteSkillCategory(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted category %s and its skills%s\n", id, marker(src))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func findCategory(id uuid.UUID) (*models.SkillCategory, error) {
	for _, c := range current.workspace.Categories.List() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %s not found", id)
}

// Skill commands

func newSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage skills",
	}
	cmd.AddCommand(
		newSkillsListCmd(),
		newSkillsAddCmd(),
		newSkillsUpdateCmd(),
		newSkillsRmCmd(),
	)
	return cmd
}

func skillFlags(cmd *cobra.Command, s *models.Skill, categoryID *string) {
	cmd.Flags().StringVar(&s.Name, "name", s.Name, "skill name")
	cmd.Flags().StringVar(categoryID, "category-id", "", "owning category id")
	cmd.Flags().StringVar(&s.Icon, "icon", s.Icon, "icon token")
	cmd.Flags().IntVar(&s.Percent, "percent", s.Percent, "proficiency 0-100")
	cmd.Flags().IntVar(&s.DisplayOrder, "order", s.DisplayOrder, "display order")
}

func newSkillsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skills grouped with their category",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := current.workspace.Skills.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			skills := current.workspace.Skills.List()
			fmt.Printf("%d skill(s)%s\n", len(skills), marker(src))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPERCENT")
			for _, s := range skills {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\n", s.ID, s.Name, s.CategoryName(), s.Percent)
			}
			return w.Flush()
		},
	}
}

func newSkillsAddCmd() *cobra.Command {
	var skill models.Skill
	var categoryID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a skill",
		RunE: func(cmd *cobra.Command, args []string) error {
			if categoryID != "" {
				id, err := uuid.Parse(categoryID)
				if err != nil {
					return fmt.Errorf("invalid category id %q", categoryID)
				}
				skill.CategoryID = id
			}

			created, src, err := current.workspace.Skills.Create(cmd.Context(), &skill)
			if err != nil {
				return err
			}
			fmt.Printf("Created skill %s%s\n", created.ID, marker(src))
			return nil
		},
	}
	skillFlags(cmd, &skill, &categoryID)
	return cmd
}

func newSkillsUpdateCmd() *cobra.Command {
	var edits models.Skill
	var categoryID string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a skill (omitted flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid skill id %q", args[0])
			}

			if _, err := current.workspace.Skills.Refresh(cmd.Context()); err != nil {
				return err
			}

			record, err := findSkill(id)
			if err != nil {
				return err
			}
			record.Category = nil

			applyStringFlag(cmd, "name", &record.Name, edits.Name)
			applyStringFlag(cmd, "icon", &record.Icon, edits.Icon)
			if cmd.Flags().Changed("category-id") {
				parsed, err := uuid.Parse(categoryID)
				if err != nil {
					return fmt.Errorf("invalid category id %q", categoryID)
				}
				record.CategoryID = parsed
			}
			if cmd.Flags().Changed("percent") {
				record.Percent = edits.Percent
			}
			if cmd.Flags().Changed("order") {
				record.DisplayOrder = edits.DisplayOrder
			}

			updated, src, err := current.workspace.Skills.Update(cmd.Context(), id, record)
			if err != nil {
				return err
			}
			fmt.Printf("Updated skill %s%s\n", updated.ID, marker(src))
			return nil
		},
	}
	skillFlags(cmd, &edits, &categoryID)
	return cmd
}

func newSkillsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid skill id %q", args[0])
			}

			if _, err := current.workspace.Skills.Refresh(cmd.Context()); err != nil {
				return err
			}

			src, err := current.workspace.Skills.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted skill %s%s\n", id, marker(src))
			return nil
		},
	}
}

func findSkill(id uuid.UUID) (*models.Skill, error) {
	for _, s := range current.workspace.Skills.List() {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("skill %s not found", id)
}
