package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mobilemart/marketplace/internal/client/api"
	"github.com/mobilemart/marketplace/internal/client/gate"
	"github.com/mobilemart/marketplace/internal/client/session"
)

func loginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Login(cmd.Context(), email, password)
			if errors.Is(err, api.ErrInvalidCredentials) {
				return errors.New("invalid credentials")
			}
			if err != nil {
				return err
			}
			if err := a.store.Login(session.Payload{UserID: res.User.ID, Role: res.User.Role, Token: res.Token}); err != nil {
				return err
			}
			a.success("Logged in as %s (%s)", res.User.UserName, res.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Logout(); err != nil {
				return err
			}
			a.success("Logged out.")
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a buyer or seller account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Register(cmd.Context(), req); err != nil {
				return err
			}
			a.success("Account created, you can now log in.")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.StringVar(&req.MobileNumber, "phone", "", "10 digit mobile number")
	f.StringVarP(&req.Email, "email", "e", "", "account email")
	f.StringVarP(&req.Password, "password", "p", "", "account password")
	f.StringVar(&req.Role, "role", "buyer", "buyer or seller")
	for _, name := range []string{"first-name", "last-name", "phone", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.store.State()
			if !st.LoggedIn {
				a.notice("Not logged in.")
				return nil
			}
			fmt.Fprintf(a.out, "user: %s\nrole: %s\n", st.UserID, st.Role)
			return nil
		},
	}
}

func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a view path through the route gate",
		Long:  "Resolve a view path through the route gate. Opening /logout ends the session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := a.routes.Resolve(args[0], a.store.State())
			if outcome.Path == gate.PathLogout {
				if err := a.store.Logout(); err != nil {
					return err
				}
				a.success("%s", gate.PathLogin)
				return nil
			}
			if outcome.Decision == gate.Admit {
				a.success("%s", outcome.Path)
				return nil
			}
			color.New(color.FgRed).Fprintf(a.out, "%s -> %s\n", outcome.Decision, outcome.Path)
			return nil
		},
	}
}

func usersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathHome); err != nil {
				return err
			}
			users, err := a.client.Users(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			for _, u := range users {
				fmt.Fprintf(a.out, "%s  %-28s %-7s %s\n", u.ID, u.Email, u.Role, u.DisplayName())
			}
			return nil
		},
	}
}
