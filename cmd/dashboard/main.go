package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/profile"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/backend"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/memory"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/redis"
	"github.com/jhoicas/rapidxcel-logistics/internal/interfaces/web"
	"github.com/jhoicas/rapidxcel-logistics/internal/observability"
	"github.com/jhoicas/rapidxcel-logistics/pkg/config"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:          "dashboard",
		Short:        "Dashboard web de RapidXcel Logistics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor del dashboard (por defecto)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})
	root.AddCommand(navCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// navCommand imprime la barra lateral y las rutas habilitadas de un rol.
func navCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nav [role]",
		Short: "Muestra la navegación de un rol (o de todos)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := entity.AllRoles()
			if len(args) == 1 {
				r := entity.ParseRole(args[0])
				if !r.Known() {
					return fmt.Errorf("rol desconocido %q", args[0])
				}
				roles = []entity.Role{r}
			}
			out := cmd.OutOrStdout()
			for _, r := range roles {
				fmt.Fprintf(out, "%s\n", r)
				for _, e := range navigation.EntriesFor(r) {
					fmt.Fprintf(out, "  %-22s %s\n", e.Label, e.Path)
				}
				keys := navigation.RoutesFor(r).Keys()
				names := make([]string, len(keys))
				for i, k := range keys {
					names[i] = string(k)
				}
				fmt.Fprintf(out, "  rutas: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Backend.URL).
		Msg("iniciando dashboard")

	var hints repository.HintRepository = memory.NewHintRepository()
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Error().Err(err).Msg("conexión a Redis")
			return err
		}
		defer rdb.Close()
		hints = infraredis.NewHintRepository(rdb, "rx:dashboard:")
	} else {
		log.Warn().Msg("sin REDIS_URL: la pista de sesión no sobrevive reinicios")
	}

	metrics := observability.NewMetrics()
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, metrics)
	sessions := session.NewManager(hints, cfg.Session.HintTTL, log)
	handler := web.NewHandler(web.HandlerDeps{
		Resolver:     profile.NewResolver(client, metrics, log),
		Backend:      client,
		Reports:      pdf.NewStockReportGenerator(cfg.Reports.LowStockThreshold),
		Decisions:    metrics,
		CookieSecure: cfg.Session.CookieSecure,
		Logger:       log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	web.Router(app, web.RouterDeps{
		Handler:      handler,
		Sessions:     sessions,
		CookieSecure: cfg.Session.CookieSecure,
		Metrics:      metrics.Handler(),
		AppName:      cfg.App.Name,
	})

	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go pruneLoop(pruneCtx, sessions, cfg.Session.Idle, log)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runServer(sigCtx, app, cfg.Dashboard.Addr(), log); err != nil {
		return err
	}
	log.Info().Msg("dashboard detenido")
	return nil
}

// runServer escucha en addr hasta que ctx termine. Un fallo de Listen
// (puerto ocupado, dirección inválida) se devuelve en lugar de esperar una
// señal que nunca llega.
func runServer(ctx context.Context, app *fiber.App, addr string, log *logger.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("escuchar en %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}

// pruneLoop libera handles de sesión sin uso. La pista durable no se toca.
func pruneLoop(ctx context.Context, sessions *session.Manager, idle time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(idle); n > 0 {
				log.Debug().Int("pruned", n).Int("active", sessions.Len()).Msg("sesiones inactivas liberadas")
			}
		}
	}
}
