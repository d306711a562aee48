package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/packvision/internal/app"
	"github.com/pkordes/packvision/internal/config"
	"github.com/pkordes/packvision/internal/service"
)

// env carries what every subcommand needs once the root has loaded config.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var envFile string

	root := &cobra.Command{
		Use:           "packctl",
		Short:         "PackVision maintenance and lookup tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.LoadDotenv(envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = &cfg
			e.log = app.NewLogger(cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(newMigrateCmd(e), newWeatherCmd(e), newVaccinationsCmd(e))
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		Long: `Apply every pending migration to DATABASE_URL.

The API server migrates on start when STORE_DRIVER=postgres; use this
command to prepare a database ahead of a deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			ctx := cmd.Context()
			pool, err := app.OpenPostgres(ctx, e.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := app.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %05d\n", v)
			}
			return nil
		},
	}
}

func newWeatherCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "weather <destination>",
		Short:   "Print normalized weather for a destination",
		Example: `  packctl weather "Lissabon, Portugal"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.NewWeather(e.cfg, e.log).ForDestination(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newVaccinationsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "vaccinations <country>",
		Short: "Ask the AI for vaccination advice for a country",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.NewAIClient(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			info, err := service.NewVaccinationService(client, e.log).ForCountry(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
