package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Get or set the stored UI theme preference",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := current.cache.Theme()
			if err != nil {
				return err
			}
			fmt.Println(theme)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <dark|light>",
		Short: "Store the theme preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := args[0]
			if theme != "dark" && theme != "light" {
				return fmt.Errorf("theme must be dark or light")
			}
			return current.cache.SetTheme(theme)
		},
	})

	return cmd
}
