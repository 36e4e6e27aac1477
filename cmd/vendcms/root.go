package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vendcms "github.com/goliatone/go-vendcms"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "vendcms",
	Short: "Inspect and sync vending machine site content",
	Long: `vendcms resolves slugs and lists view models exactly as the public site
sees them, syncs content between Contentful and the database, and reports
blocked legacy writes.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults to $VENDCMS_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the config file, then applies environment overrides.
func loadConfig() (vendcms.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("VENDCMS_CONFIG")
	}
	cfg := vendcms.DefaultConfig()
	if path != "" {
		loaded, err := vendcms.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	applyEnv(&cfg, os.LookupEnv)
	if verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func openModule(mutate func(*vendcms.Config)) (*vendcms.Module, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return vendcms.New(cfg)
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// applyEnv overlays the environment variables hosts already set for the
// site onto cfg.
func applyEnv(cfg *vendcms.Config, lookup func(string) (string, bool)) {
	str := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	str("CONTENTFUL_SPACE_ID", &cfg.Contentful.SpaceID)
	str("CONTENTFUL_ACCESS_TOKEN", &cfg.Contentful.AccessToken)
	str("CONTENTFUL_MANAGEMENT_TOKEN", &cfg.Contentful.ManagementToken)
	str("CONTENTFUL_ENVIRONMENT", &cfg.Contentful.Environment)
	str("VENDCMS_STORAGE_PROVIDER", &cfg.Storage.Provider)
	str("VENDCMS_SITE_URL", &cfg.Links.BaseURL)
	str("REDIS_ADDR", &cfg.Deprecation.Redis.Addr)

	if dsn, ok := lookup("DATABASE_URL"); ok && strings.TrimSpace(dsn) != "" {
		cfg.Storage.DSN = strings.TrimSpace(dsn)
		if cfg.Storage.Provider == vendcms.DefaultConfig().Storage.Provider {
			cfg.Storage.Provider = "bun"
		}
		if strings.HasPrefix(cfg.Storage.DSN, "postgres") {
			cfg.Storage.Driver = "postgres"
		}
	}
	if cfg.Links.BaseURL != "" {
		cfg.Features.Links = true
	}
}
