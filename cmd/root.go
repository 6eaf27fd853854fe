// Package cmd implements the swappa-scraper command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"swappa-scraper/config"
	"swappa-scraper/scraper/swappa"
	"swappa-scraper/services"
	"swappa-scraper/storage"
	"swappa-scraper/utils"
)

// Execute loads configuration and runs the root command.
func Execute() error {
	cfg, envFound := config.Load()
	root := newRootCmd(cfg)
	if !envFound {
		root.PrintErrln("No .env file found, using environment and defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return root.ExecuteContext(ctx)
}

// newRootCmd builds the command with flag defaults taken from cfg. Parsed
// flags are written back into cfg.
func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swappa-scraper",
		Short:         "Scrape a Swappa listings page into CSV, JSON, XLSX and DOCX",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "rendering service API key")
	f.StringVar(&cfg.TargetURL, "url", cfg.TargetURL, "Swappa listings page to scrape")
	f.StringVar(&cfg.OutputBase, "output", cfg.OutputBase, "output path without extension")
	f.StringSliceVar(&cfg.Formats, "formats", cfg.Formats, "export formats (csv,json,xlsx,docx)")
	f.BoolVar(&cfg.SaveDB, "save-db", cfg.SaveDB, "store listings in the database")
	f.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite or postgres)")
	f.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file")
	f.StringVar(&cfg.FetchMode, "fetch-mode", cfg.FetchMode, "how to fetch the page (api or browser)")
	f.BoolVar(&cfg.RenderJS, "render-js", cfg.RenderJS, "ask the rendering service to execute JavaScript")
	f.DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "page fetch timeout")
	f.StringVar(&cfg.ColumnMap, "columns", cfg.ColumnMap, "column map override, e.g. price=1,carrier=3,...")
	f.StringVar(&cfg.DebugHTMLPath, "debug-html", cfg.DebugHTMLPath, "where to save the page when no listings are found")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	parserOpts := []swappa.Option{swappa.WithRowSelector(cfg.TableSelector)}
	if cfg.ColumnMap != "" {
		cm, err := swappa.ParseColumnMap(cfg.ColumnMap)
		if err != nil {
			return fmt.Errorf("--columns: %w", err)
		}
		parserOpts = append(parserOpts, swappa.WithColumns(cm))
	}

	logger := utils.NewLoggerWithLevel(cfg.LogLevel)
	logger.Info("[main] === Swappa scraper starting ===")
	logger.Info("[main] Config: url=%s | fetch=%s | formats=%v | save-db=%t",
		cfg.TargetURL, cfg.FetchMode, cfg.Formats, cfg.SaveDB)

	parserOpts = append(parserOpts, swappa.WithObserver(services.NewLogObserver(logger)))
	parser := swappa.NewParser(parserOpts...)

	var store storage.ListingStore
	if cfg.SaveDB {
		s, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	runner := services.NewRunner(newFetcher(cfg), parser, store, logger, services.RunOptions{
		URL:           cfg.TargetURL,
		OutputBase:    cfg.OutputBase,
		Formats:       cfg.Formats,
		DebugHTMLPath: cfg.DebugHTMLPath,
	})
	report, err := runner.Run(ctx)
	if err != nil {
		logger.Error("[main] Run %s failed: %v", report.RunID, err)
		return err
	}

	insights := services.NewInsightService(logger).WithOutput(cmd.OutOrStdout())
	insights.Print(report, insights.Generate(runner.Listings()))
	return nil
}

func newFetcher(cfg *config.Config) swappa.Fetcher {
	if cfg.FetchMode == config.FetchModeBrowser {
		return swappa.NewBrowserFetcher(cfg.ChromeBin, cfg.FetchTimeout)
	}
	f := swappa.NewAPIFetcher(cfg.APIKey, cfg.FetchTimeout)
	f.Endpoint = cfg.APIEndpoint
	f.RenderJS = cfg.RenderJS
	return f
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.ListingStore, error) {
	var (
		store storage.ListingStore
		err   error
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err = storage.NewPostgresStore(ctx, cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.DBConnectRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		})
	default:
		store, err = storage.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("[main] Using %s store", cfg.DBDriver)
	return store, nil
}
