package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				var err error
				if password, err = readPassword("Password: "); err != nil {
					return err
				}
			}

			res, err := current.session.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", res.User.Username, res.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.session.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new admin account and sign in as it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" {
				return fmt.Errorf("--username and --email are required")
			}
			if password == "" {
				var err error
				if password, err = readPassword("Password: "); err != nil {
					return err
				}
			}

			res, err := current.session.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", res.Message, res.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "new admin username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "new admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new admin password (prompted when omitted)")
	return cmd
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload every collection and report which source served it",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := current.workspace.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("projects:    %s\n", res.Projects)
			fmt.Printf("categories:  %s\n", res.Categories)
			fmt.Printf("skills:      %s\n", res.Skills)
			fmt.Printf("messages:    %s\n", res.Messages)
			return nil
		},
	}
}
