package main

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/rapidxcel-logistics/pkg/config"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// gooseLogger redirige la salida de goose al logger de la aplicación.
type gooseLogger struct{ log *logger.Logger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func main() {
	root := &cobra.Command{
		Use:   "migrate [up|down|status|redo|reset|version]",
		Short: "Aplica las migraciones de la API de identidad",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}
			return run(cmd.Context(), command, args)
		},
		SilenceUsage: true,
	}
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Error().Err(err).Msg("abrir conexión")
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		log.Error().Err(err).Str("command", command).Msg("goose")
		return err
	}
	log.Info().Str("command", command).Msg("migración completada")
	return nil
}
