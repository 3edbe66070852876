package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quotefetcher/internal/config"
	"quotefetcher/internal/httpx"
	"quotefetcher/internal/output"
	"quotefetcher/internal/provider"
	"quotefetcher/internal/provider/yahoo"
	"quotefetcher/internal/provider/yahooadapter"
	"quotefetcher/internal/quote"
	"quotefetcher/internal/symbols"
)

// providerFactory builds the market-data provider from the loaded config.
type providerFactory func(cfg config.Config) (provider.Provider, error)

type options struct {
	configPath string
	envFile    string
	format     string
	logLevel   string
}

func main() {
	cmd := newRootCmd(os.Stdout, newYahooProvider)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("quotes failed")
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, newProvider providerFactory) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "quotes",
		Short:         "Print the latest daily closes and day-over-day change of the market overview symbols",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, stdout, newProvider)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", os.Getenv("QUOTES_CONFIG_FILE"), "path to a YAML config file (optional)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment; missing is fine")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: json, csv or table (default json)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (default warn)")
	return cmd
}

func run(cmd *cobra.Command, opts options, stdout io.Writer, newProvider providerFactory) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" { cfg.Output.Format = opts.format }
	if opts.logLevel != "" { cfg.Log.Level = opts.logLevel }
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := configureLogging(cfg.Log); err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	p, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	table := symbols.Default()
	entry := log.WithFields(log.Fields{
		"run_id":   uuid.NewString(),
		"provider": p.Name(),
		"symbols":  table.Len(),
	})
	entry.Debug("fetching quotes")

	start := time.Now()
	fetcher := &quote.Fetcher{Provider: p, Window: cfg.Provider.WindowDays}
	quotes, err := fetcher.Fetch(cmd.Context(), table)
	if err != nil {
		return err
	}

	missing := 0
	for _, q := range quotes {
		if q.Price == nil {
			missing++
		}
	}
	entry = entry.WithFields(log.Fields{"elapsed": time.Since(start).String(), "missing": missing})
	if missing > 0 {
		entry.Warn("some symbols have no price")
	} else {
		entry.Debug("fetched quotes")
	}

	// Render fully before writing so a failure leaves stdout empty.
	var buf bytes.Buffer
	if err := output.Write(&buf, format, quotes); err != nil {
		return err
	}
	_, err = stdout.Write(buf.Bytes())
	return err
}

func configureLogging(cfg config.Log) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func newYahooProvider(cfg config.Config) (provider.Provider, error) {
	httpClient := httpx.New(time.Duration(cfg.Provider.RequestTimeoutSec) * time.Second)
	if cfg.Provider.UserAgent != "" {
		httpClient.UserAgent = cfg.Provider.UserAgent
	}

	client, err := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Provider.BaseURL),
		yahoo.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("yahoo client: %w", err)
	}
	adapter, err := yahooadapter.New(yahooadapter.Config{
		Name:    cfg.Provider.Name,
		GroupBy: cfg.Provider.GroupBy,
	}, client)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
