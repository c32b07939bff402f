// Command marketplace is the command-line client of the mobile marketplace.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mobilemart/marketplace/internal/client/api"
	"github.com/mobilemart/marketplace/internal/client/session"
	"github.com/mobilemart/marketplace/internal/pkg/config"
	"github.com/mobilemart/marketplace/pkg/logger"
)

func main() {
	if err := rootCmd(&app{}).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marketplace",
		Short:         "Browse and manage mobile listings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.client != nil {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}

	cmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		registerCmd(a),
		whoamiCmd(a),
		openCmd(a),
		usersCmd(a),
		catalogCmd(a),
		mineCmd(a),
		showCmd(a),
		addCmd(a),
		editCmd(a),
		deleteCmd(a),
	)
	return cmd
}

// setup loads the config and restores the persisted session.
func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "marketplace",
	})

	store := session.NewStore(session.NewFileStorage(cfg.SessionDir))
	if err := store.LoadFromStorage(); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	log.Debug().Str("server", cfg.ServerURL).Str("session_dir", cfg.SessionDir).Msg("client ready")

	a.init(store, api.New(cfg.ServerURL, cfg.HTTPTimeout, store), os.Stdout, log)
	return nil
}
