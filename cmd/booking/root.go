package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/transport/http/dto"
	sessionadapters "booking_backend/internal/feature/session/adapters"
	sessionusecase "booking_backend/internal/feature/session/usecase"
	infrahttp "booking_backend/internal/platform/http"
)

var errNotLoggedIn = errors.New("not logged in")

// cli holds the flags and the session shared by every subcommand.
type cli struct {
	apiURL      string
	sessionFile string
	timeout     time.Duration

	session *sessionusecase.Context
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "booking",
		Short:         "Sign in to the booking service from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api", envOr("BOOKING_API_URL", "http://localhost:3001"), "identity service base URL")
	root.PersistentFlags().StringVar(&c.sessionFile, "session-file", "", "session file (default <user config dir>/booking/session.json)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.whoamiCmd(),
		c.updateCmd(),
		c.logoutCmd(),
	)
	return root
}

// open builds the session and restores a saved login.
func (c *cli) open(cmd *cobra.Command) error {
	path := c.sessionFile
	if path == "" {
		p, err := sessionadapters.DefaultFileStoragePath()
		if err != nil {
			return err
		}
		path = p
	}

	api := sessionadapters.NewIdentityClient(c.apiURL, infrahttp.NewHTTPClient(c.timeout))
	c.session = sessionusecase.NewContext(api, sessionadapters.NewFileStorage(path))
	c.session.Bootstrap(cmd.Context())
	return nil
}

func printUser(w io.Writer, u *entity.User) error {
	b, err := json.MarshalIndent(dto.NewUserRes(u), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
