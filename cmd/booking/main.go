// Command booking is a terminal client for the identity service. It keeps
// the signed-in user id in a local session file between runs.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	sessionusecase "booking_backend/internal/feature/session/usecase"
	"booking_backend/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(logger.New(os.Stderr, envOr("LOG_LEVEL", "warn")))

	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError shows the user-facing message with its cause, if any.
func printError(w io.Writer, err error) {
	var ue *sessionusecase.UserError
	if errors.As(err, &ue) && ue.Err != nil {
		fmt.Fprintf(w, "%s (%v)\n", ue.Message, ue.Err)
		return
	}
	fmt.Fprintln(w, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
