package main

import (
	"context"
	"fmt"

	"github.com/chefaid/chefaid/internal/infrastructure/config"
	"github.com/chefaid/chefaid/internal/infrastructure/container"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		app := fx.New(
			fx.NopLogger,
			container.Server(configPath),
			fx.Populate(&cfg),
		)
		if err := app.Err(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("Chef Aid %s listening on http://%s", cfg.App.Version, cfg.Address()))

		select {
		case <-ctx.Done():
		case sig := <-app.Wait():
			if sig.ExitCode != 0 {
				return fmt.Errorf("server exited with code %d", sig.ExitCode)
			}
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			return err
		}
		fmt.Fprintln(out, color.WhiteString("Chef Aid stopped"))
		return nil
	},
}
