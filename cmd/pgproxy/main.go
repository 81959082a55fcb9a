package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	pgproxy "github.com/columnarwire/pgproxy"
	"github.com/columnarwire/pgproxy/internal/backend"
	"github.com/columnarwire/pgproxy/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

var cfgFile string

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:           "pgproxy",
	Short:         "Postgres wire-protocol front-end for a columnar analytic store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept Postgres connections and proxy them to the configured backend",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pgproxy %s (%s)\n", version, commit)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		out, err := cfg.Dump()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pgproxy.yaml in . or /etc/pgproxy)")
	serveCmd.Flags().String("listen", "", "override listen.address")
	serveCmd.Flags().String("metrics-addr", ":9090", "Prometheus /metrics listen address")

	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen.Address = listen
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	be, err := backend.Dial(ctx, backend.Config{
		Host:      cfg.Backend.Host,
		Port:      cfg.Backend.Port,
		Database:  cfg.Backend.Database,
		Username:  cfg.Backend.Username,
		Password:  cfg.Backend.Password,
		Clustered: cfg.Backend.Clustered,
	})
	if err != nil {
		return fmt.Errorf("connecting to backend: %w", err)
	}
	defer be.Close()

	srv := pgproxy.NewServer(be, pgproxy.WithLogger(logger))

	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	metricsSrv := startMetricsServer(logger, metricsAddr, srv)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		metricsSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("pgproxy starting",
		slog.String("listen", cfg.Listen.Address),
		slog.String("backend", fmt.Sprintf("%s:%d/%s", cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Database)),
	)

	return srv.ListenAndServe(ctx, cfg.Listen.Address)
}

func startMetricsServer(logger *slog.Logger, addr string, srv *pgproxy.Server) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(srv.Metrics().Registry, promhttp.HandlerOpts{}))

	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	return httpSrv
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
