package main

import (
	"fmt"
	"io"

	"github.com/gdai/zerocode/client"
	"github.com/spf13/cobra"
)

func newHealthCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}
			return emit(cmd, o, "health", resp, func(w io.Writer, data string) {
				fmt.Fprintf(w, "%s: %s\n", c.BaseURL(), data)
			})
		},
	}
}

func newLoginCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify --account/--password and show the session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.account == "" {
				return fmt.Errorf("login: --account is required")
			}
			c, err := o.newClient(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.UserLogin(cmd.Context(), client.UserLoginRequest{
				UserAccount:  o.account,
				UserPassword: o.password,
			})
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return emit(cmd, o, "login", resp, func(w io.Writer, u client.LoginUserVO) {
				fmt.Fprint(w, "Logged in as ")
				printUser(w, u)
			})
		},
	}
}

func newWhoAmICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.GetLoginUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("whoami: %w", err)
			}
			return emit(cmd, o, "whoami", resp, printUser)
		},
	}
}

func newLogoutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.UserLogout(cmd.Context())
			if err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return emit(cmd, o, "logout", resp, func(w io.Writer, _ bool) {
				fmt.Fprintln(w, "Logged out")
			})
		},
	}
}
