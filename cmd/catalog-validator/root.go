package main

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/catalog-validator/internal/catalog"
	"github.com/rogerio-castellano/catalog-validator/internal/checker"
	"github.com/rogerio-castellano/catalog-validator/internal/config"
	"github.com/rogerio-castellano/catalog-validator/internal/db"
	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/rogerio-castellano/catalog-validator/internal/redissvc"
	"github.com/rogerio-castellano/catalog-validator/internal/report"
	"github.com/rogerio-castellano/catalog-validator/internal/repo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set at build time via -ldflags.
var version = "dev"

type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "catalog-validator",
		Short: "Validate a product catalog against field rules",
		Long: "catalog-validator fetches the product catalog, checks every record for a\n" +
			"non-empty title, a non-negative price and a well-formed rating, and prints\n" +
			"the violations grouped by product.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Version:      version,
		RunE:         a.runCheck,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "path to a YAML config file")
	pf.String("url", catalog.DefaultURL, "catalog endpoint")
	pf.String("name", report.DefaultTitle, "catalog name shown in the report header")
	pf.Duration("timeout", 0, "request timeout (0 uses the transport default)")
	pf.String("source", config.SourceHTTP, "catalog source: http or postgres")
	pf.String("database-url", "", "Postgres DSN for --source=postgres (default $DATABASE_URL)")
	pf.String("redis-addr", "", "Redis address for caching catalog responses")
	pf.Duration("cache-ttl", 0, "lifetime of cached catalog responses")
	pf.String("format", string(report.FormatText), "report format: text, json or yaml")
	pf.Bool("summary", false, "append a per-rule summary table to text reports")
	pf.String("jwt-secret", "", "HS256 secret for report service tokens")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")

	a.bind(pf.Lookup, map[string]string{
		"catalog.url":       "url",
		"catalog.name":      "name",
		"catalog.timeout":   "timeout",
		"source":            "source",
		"database.url":      "database-url",
		"cache.redis_addr":  "redis-addr",
		"cache.ttl":         "cache-ttl",
		"report.format":     "format",
		"report.summary":    "summary",
		"server.jwt_secret": "jwt-secret",
		"log.level":         "log-level",
		"log.format":        "log-format",
	})

	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.tokenCmd())
	return rootCmd
}

// loadConfig reads the merged configuration and installs the logger.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.Init(level, cfg.Log.Format)
	return cfg, nil
}

// buildSource returns the configured catalog source and a func releasing its resources.
func buildSource(ctx context.Context, cfg *config.Config) (checker.Source, func(), error) {
	logger := logging.New("setup")

	if cfg.Source == config.SourcePostgres {
		database, err := db.Connect(cfg.Database.URL)
		if err != nil {
			return nil, func() {}, err
		}
		if err := db.EnsureSchema(ctx, database); err != nil {
			database.Close()
			return nil, func() {}, err
		}
		var products repo.ProductRepository = repo.NewPostgresProductRepository(database)
		return products, func() { database.Close() }, nil
	}

	client := catalog.NewClient(catalog.Config{URL: cfg.Catalog.URL, Timeout: cfg.Catalog.Timeout})
	if cfg.Cache.RedisAddr == "" {
		return client, func() {}, nil
	}

	rdb, err := redissvc.Connect(ctx, cfg.Cache.RedisAddr)
	if err != nil {
		logger.Warn("catalog cache disabled", "error", err)
		return client, func() {}, nil
	}
	cache := redissvc.NewRedisService(rdb, cfg.Cache.TTL)
	client.Cache = cache
	logger.Debug("catalog cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cache.TTL())
	return client, func() { rdb.Close() }, nil
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New("check")

	src, release, err := buildSource(cmd.Context(), cfg)
	defer release()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), checker.Diagnostic(err))
		logger.Debug("source setup failed", "error", err)
		return nil
	}

	format, _ := report.ParseFormat(cfg.Report.Format)
	rep := &report.Reporter{Title: cfg.Catalog.Name, Format: format, Summary: cfg.Report.Summary}

	result, err := checker.New(src, rep).Run(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		logger.Debug("run failed", "run_id", result.RunID, "error", err)
		return nil
	}
	logger.Debug("run complete", "run_id", result.RunID,
		"products", result.TotalProducts, "violations", len(result.Violations))
	return nil
}

func (a *app) bind(lookup func(name string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}
