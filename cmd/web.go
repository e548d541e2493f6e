package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/nomadweb/internal/api"
	"github.com/shaharia-lab/nomadweb/internal/build"
	"github.com/shaharia-lab/nomadweb/internal/config"
	"github.com/shaharia-lab/nomadweb/internal/frontend"
	"github.com/shaharia-lab/nomadweb/internal/logger"
	"github.com/shaharia-lab/nomadweb/internal/server"
	"github.com/shaharia-lab/nomadweb/internal/telemetry"
)

// NewWebCmd returns the "web" subcommand that starts the HTTP server.
func NewWebCmd(cfg *config.AppConfig) *cobra.Command {
	var port int
	var frontendPath string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the frontend, /env.js and the health endpoint",
		Long: `Start the HTTP server. The built frontend is looked up in FRONTEND_PATH
first and then in a fixed list of locations relative to FRONTEND_BASE_DIR.
If none exists the server still starts and answers "Frontend non disponibile".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("frontend-path") {
				cfg.FrontendPath = frontendPath
			}
			return runWeb(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "HTTP server port (overrides PORT env var)")
	cmd.Flags().StringVar(&frontendPath, "frontend-path", cfg.FrontendPath, "Frontend build directory (overrides FRONTEND_PATH env var)")

	return cmd
}

func runWeb(parent context.Context, cfg *config.AppConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, err := logger.New(cfg.LogDir, cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, "nomadweb", build.Version)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			sysLogger.Warn("flushing traces", "error", err)
		}
	}()

	candidates := frontend.Candidates(cfg.FrontendPath, cfg.BaseDir)
	root := frontend.Resolve(candidates)
	switch {
	case cfg.DevMode():
		sysLogger.Info("proxying frontend to dev server", slog.String("url", cfg.DevURL))
	case root.Available():
		sysLogger.Info("serving frontend", slog.String("dir", root.Dir()))
	default:
		sysLogger.Warn("no frontend directory found", slog.Any("candidates", candidates))
	}

	publicEnv := frontend.NewPublicEnv(cfg.PublicEnvKeys)
	srv, err := server.New(server.Options{
		Addr:           cfg.Addr(),
		Root:           root,
		PublicEnv:      publicEnv,
		Placeholder:    cfg.EnvPlaceholder,
		DevURL:         cfg.DevURL,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPM:   cfg.RateLimitRPM,
		TrustProxy:     cfg.TrustProxy,
		MetricsEnabled: cfg.MetricsEnabled,
	}, api.New(sysLogger), sysLogger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	sysLogger.Info("nomadweb starting",
		slog.String("addr", cfg.Addr()),
		slog.Any("public_env", publicEnv.Keys()),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
		slog.String("build_date", build.BuildDate),
	)
	printBanner(build.Version, fmt.Sprintf("http://localhost:%d", cfg.Port), root)

	return srv.Run(ctx)
}

var (
	bannerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	bannerDim   = lipgloss.NewStyle().Faint(true)
	bannerWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA657"))
)

// printBanner writes the startup summary to stdout.
func printBanner(version, serverURL string, root frontend.Root) {
	fmt.Println(bannerTitle.Render("nomadweb " + version))
	fmt.Printf("Listening on %s\n", serverURL)
	if root.Available() {
		fmt.Println(bannerDim.Render("Frontend: " + root.Dir()))
	} else {
		fmt.Println(bannerWarn.Render("Frontend: not found"))
	}
	fmt.Println()
}
