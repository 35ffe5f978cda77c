package main

import (
	"context"
	"io"
	"os"

	"github.com/chefaid/chefaid/internal/infrastructure/config"
	"github.com/chefaid/chefaid/internal/infrastructure/container"
	"github.com/chefaid/chefaid/internal/infrastructure/terminal"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	configPath string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "chefaid",
	Short:         "Chef Aid: recipes, fridge scans and meal plans from Gemini",
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		scanCmd,
		recipeCmd,
		surpriseCmd,
		planCmd,
		renderCmd,
		optionsCmd,
		settingsCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./chefaid.yaml or the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr while running")
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printer(rootCmd).Error(err)
		return 1
	}
	return 0
}

func printer(cmd *cobra.Command) *terminal.Printer {
	return terminal.NewPrinter(cmd.OutOrStdout(), noColor)
}

// services is what one-shot commands work with
type services struct {
	Kitchen  inbound.KitchenService
	Settings inbound.SettingsService
}

// withServices builds the core graph without the HTTP server, runs fn and
// tears everything down again
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc services) error) error {
	var svc services
	app := fx.New(
		fx.NopLogger,
		container.Core(configPath),
		fx.Decorate(cliLogger),
		fx.Populate(&svc.Kitchen, &svc.Settings),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	return fn(ctx, svc)
}

// cliLogger keeps stdout for generated text; logs go to stderr and only
// when asked for
func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	if !verbose {
		return logger.NewNop(), nil
	}
	return logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      "console",
		Development: cfg.App.Debug,
		OutputPaths: []string{"stderr"},
	})
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
