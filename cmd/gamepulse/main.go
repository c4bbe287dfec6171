package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/gamepulse/gamepulse/internal/cache"
	"github.com/gamepulse/gamepulse/internal/config"
	httpserver "github.com/gamepulse/gamepulse/internal/interfaces/http"
	"github.com/gamepulse/gamepulse/internal/orchestrator"
	"github.com/gamepulse/gamepulse/internal/persistence/postgres"
	"github.com/gamepulse/gamepulse/internal/providers"
)

const (
	appName = "gamepulse"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	var configPath string

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Game marketplace analysis and price optimization",
		Version: version,
		Long: `GamePulse fuses catalog, ownership and price-history telemetry into
per-title market assessments with explainable price recommendations.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <appid>",
		Short: "Analyze one title and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("app id must be an integer, got %q", args[0])
			}
			return runAnalyze(cmd, configPath, appID)
		},
	}
	addAnalysisFlags(analyzeCmd.Flags())

	batchCmd := &cobra.Command{
		Use:   "batch <appid>...",
		Short: "Analyze several titles; each settles independently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appIDs := make([]int, 0, len(args))
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("app id must be an integer, got %q", a)
				}
				appIDs = append(appIDs, id)
			}
			return runBatch(cmd, configPath, appIDs)
		},
	}
	addAnalysisFlags(batchCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP analysis API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}

	rootCmd.AddCommand(analyzeCmd, batchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func addAnalysisFlags(fs *pflag.FlagSet) {
	fs.Bool("refresh", false, "bypass the result cache")
	fs.Bool("no-history", false, "skip the price-history provider")
}

func optionsFromFlags(cmd *cobra.Command) orchestrator.Options {
	opts := orchestrator.DefaultOptions()
	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		opts.ForceRefresh = true
	}
	if noHist, _ := cmd.Flags().GetBool("no-history"); noHist {
		opts.IncludeSalesHistory = false
	}
	return opts
}

// buildEngine wires providers, optional cache and optional store into
// an orchestrator from config.
func buildEngine(ctx context.Context, cfg config.Config) (*orchestrator.Orchestrator, func(), error) {
	catalog := providers.NewCatalog(providers.ClientConfig{
		Name:      "catalog",
		BaseURL:   cfg.Providers.Catalog.BaseURL,
		Timeout:   cfg.Providers.Catalog.Timeout(),
		RPS:       cfg.Providers.Catalog.RPS,
		Burst:     cfg.Providers.Catalog.Burst,
		UserAgent: cfg.Providers.Catalog.UserAgent,
	})
	ownership := providers.NewOwnership(providers.ClientConfig{
		Name:      "ownership",
		BaseURL:   cfg.Providers.Ownership.BaseURL,
		Timeout:   cfg.Providers.Ownership.Timeout(),
		RPS:       cfg.Providers.Ownership.RPS,
		Burst:     cfg.Providers.Ownership.Burst,
		UserAgent: cfg.Providers.Ownership.UserAgent,
	})

	var history orchestrator.HistoryClient
	if cfg.Providers.History.Enabled {
		history = providers.NewHistory(providers.ClientConfig{
			Name:      "price_history",
			BaseURL:   cfg.Providers.History.BaseURL,
			Timeout:   cfg.Providers.History.Timeout(),
			RPS:       cfg.Providers.History.RPS,
			Burst:     cfg.Providers.History.Burst,
			UserAgent: cfg.Providers.History.UserAgent,
		})
	}

	engine := orchestrator.New(catalog, ownership, history, orchestrator.Config{
		Weights:       cfg.Engine.Weights,
		SweepPoints:   cfg.Engine.SweepPoints,
		RangeFraction: cfg.Engine.RangeFraction,
		BatchWorkers:  cfg.Engine.BatchWorkers,
		BatchPacing:   time.Duration(cfg.Engine.BatchPacingMS) * time.Millisecond,
	})

	var cleanups []func()

	if cfg.Cache.Enabled {
		rc, err := cache.New(ctx, cache.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      time.Duration(cfg.Cache.TTLSecs) * time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, running uncached")
		} else {
			engine.WithCache(rc)
			cleanups = append(cleanups, func() { rc.Close() })
		}
	}

	if cfg.Database.Enabled {
		repo, err := postgres.Connect(cfg.Database.DSN, 5*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("audit store unavailable, skipping persistence")
		} else {
			engine.WithStore(repo)
			cleanups = append(cleanups, func() { repo.Close() })
		}
	}

	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}
	return engine, cleanup, nil
}

func runAnalyze(cmd *cobra.Command, configPath string, appID int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Analyze(ctx, appID, optionsFromFlags(cmd))
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runBatch(cmd *cobra.Command, configPath string, appIDs []int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	items := engine.AnalyzeMany(ctx, appIDs, optionsFromFlags(cmd))
	for _, item := range items {
		if item.Err != nil {
			log.Error().Err(item.Err).Int("app_id", item.AppID).Msg("analysis failed")
			continue
		}
		if err := printJSON(item.Result); err != nil {
			return err
		}
	}
	return nil
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := httpserver.NewServer(engine, httpserver.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMS) * time.Millisecond,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
