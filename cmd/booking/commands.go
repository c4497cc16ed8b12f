package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"booking_backend/internal/feature/identity/domain/entity"
)

// identityCmd builds "<verb> email|phone|gmail" with one handler per provider.
func identityCmd(use, short string,
	email func(ctx context.Context, email, password string) (*entity.User, error),
	phone func(ctx context.Context, phone string) (*entity.User, error),
	gmail func(ctx context.Context) (*entity.User, error),
) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "email <email> <password>",
			Short: "Use an email address and password",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := email(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			},
		},
		&cobra.Command{
			Use:   "phone <phone>",
			Short: "Use a 10-digit phone number",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := phone(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			},
		},
		&cobra.Command{
			Use:   "gmail",
			Short: "Use the Gmail stub account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := gmail(cmd.Context())
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			},
		},
	)
	return cmd
}

var errNothingToUpdate = errors.New("nothing to update: set --first-name, --last-name, --username or --avatar")

// The session is created in PersistentPreRunE, so handlers look it up at call time.

func (c *cli) loginCmd() *cobra.Command {
	return identityCmd("login", "Sign in; unknown email and phone identities are registered",
		func(ctx context.Context, email, password string) (*entity.User, error) {
			return c.session.LoginWithEmail(ctx, email, password)
		},
		func(ctx context.Context, phone string) (*entity.User, error) {
			return c.session.LoginWithPhone(ctx, phone)
		},
		func(ctx context.Context) (*entity.User, error) {
			return c.session.LoginWithGmail(ctx)
		},
	)
}

func (c *cli) registerCmd() *cobra.Command {
	return identityCmd("register", "Create a new account and sign in",
		func(ctx context.Context, email, password string) (*entity.User, error) {
			return c.session.RegisterWithEmail(ctx, email, password)
		},
		func(ctx context.Context, phone string) (*entity.User, error) {
			return c.session.RegisterWithPhone(ctx, phone)
		},
		func(ctx context.Context) (*entity.User, error) {
			return c.session.RegisterWithGmail(ctx)
		},
	)
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := c.session.CurrentUser()
			if u == nil {
				return errNotLoggedIn
			}
			return printUser(cmd.OutOrStdout(), u)
		},
	}
}

func (c *cli) updateCmd() *cobra.Command {
	var firstName, lastName, username, avatar string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.session.IsAuthenticated() {
				return errNotLoggedIn
			}

			var update entity.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				update.FirstName = &firstName
			}
			if flags.Changed("last-name") {
				update.LastName = &lastName
			}
			if flags.Changed("username") {
				update.Username = &username
			}
			if flags.Changed("avatar") {
				update.Avatar = &avatar
			}
			if update.IsEmpty() {
				return errNothingToUpdate
			}

			u, err := c.session.UpdateUser(cmd.Context(), update)
			if err != nil {
				return err
			}
			return printUser(cmd.OutOrStdout(), u)
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
