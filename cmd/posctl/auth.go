package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the POS backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			perms, err := app.session.FetchPermissions(cmd.Context())
			if err != nil {
				app.log.Warn("permissions unavailable", "err", err)
			}
			fmt.Printf("logged in as %s (%s), %d permissions\n", user.FullName, user.Role, len(perms))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session locally and notify the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.session.Logout(cmd.Context())
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.session.Revalidate(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(user)
			}
			fmt.Printf("%s <%s> role=%s active=%v\n", user.FullName, user.Email, user.Role, user.IsActive)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}
