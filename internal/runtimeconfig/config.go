package runtimeconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

var (
	ErrStorageProviderUnknown   = errors.New("vendcms config: storage provider is invalid")
	ErrStorageDriverUnknown     = errors.New("vendcms config: storage driver is invalid")
	ErrStorageDSNRequired       = errors.New("vendcms config: storage dsn is required for the bun provider")
	ErrContentfulInvalid        = errors.New("vendcms config: contentful settings are invalid")
	ErrDeprecationStoreUnknown  = errors.New("vendcms config: deprecation store is invalid")
	ErrRedisAddrRequired        = errors.New("vendcms config: redis address is required for the redis deprecation store")
	ErrDiagnosticLimitInvalid   = errors.New("vendcms config: slug diagnostic limit must be zero or positive")
	ErrSlugSuffixInvalid        = errors.New("vendcms config: slug suffixes must start with '-'")
	ErrCacheRequiresStorage     = errors.New("vendcms config: cache can only wrap the bun storage provider")
	ErrMigrationRequiresStorage = errors.New("vendcms config: migration requires the bun storage provider")
	ErrLoggingProviderRequired  = errors.New("vendcms config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("vendcms config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("vendcms config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("vendcms config: logging format is invalid")
)

// Storage providers.
const (
	ProviderMemory     = "memory"
	ProviderBun        = "bun"
	ProviderContentful = "contentful"
)

// Database drivers accepted by the bun provider.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Deprecation usage stores.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config aggregates every runtime setting of the content core. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Contentful  ContentfulConfig  `yaml:"contentful"`
	Cache       CacheConfig       `yaml:"cache"`
	Slugs       SlugConfig        `yaml:"slugs"`
	Deprecation DeprecationConfig `yaml:"deprecation"`
	Links       LinksConfig       `yaml:"links"`
	Logging     LoggingConfig     `yaml:"logging"`
	Features    Features          `yaml:"features"`
}

// StorageConfig selects where machines, product types and technologies are read from.
type StorageConfig struct {
	Provider    string `yaml:"provider"`
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// ContentfulConfig holds credentials and endpoints for the external CMS.
type ContentfulConfig struct {
	SpaceID         string             `yaml:"space_id"`
	AccessToken     string             `yaml:"access_token"`
	ManagementToken string             `yaml:"management_token"`
	Environment     string             `yaml:"environment"`
	BaseURL         string             `yaml:"base_url"`
	ManagementURL   string             `yaml:"management_url"`
	Locale          string             `yaml:"locale"`
	Timeout         time.Duration      `yaml:"timeout"`
	Include         int                `yaml:"include"`
	ContentTypes    ContentTypesConfig `yaml:"content_types"`
}

// ContentTypesConfig maps each entity onto its Contentful content type id.
type ContentTypesConfig struct {
	Machine     string `yaml:"machine"`
	ProductType string `yaml:"product_type"`
	Technology  string `yaml:"technology"`
}

// CacheConfig toggles repository caching.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// SlugConfig tunes the slug resolver.
type SlugConfig struct {
	Suffixes        []string `yaml:"suffixes"`
	DiagnosticLimit int      `yaml:"diagnostic_limit"`
}

// DeprecationConfig controls how blocked legacy writes are recorded and surfaced.
type DeprecationConfig struct {
	Store       string      `yaml:"store"`
	Redis       RedisConfig `yaml:"redis"`
	NotifyUsers bool        `yaml:"notify_users"`
	CMSName     string      `yaml:"cms_name"`
}

// RedisConfig is used when Deprecation.Store is "redis".
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LinksConfig configures public URL generation for view models.
type LinksConfig struct {
	BaseURL string            `yaml:"base_url"`
	Paths   map[string]string `yaml:"paths"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider string `yaml:"provider"`
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
}

// Features toggles optional subsystems.
type Features struct {
	Logger    bool `yaml:"logger"`
	Migration bool `yaml:"migration"`
	Links     bool `yaml:"links"`
}

// DefaultConfig returns an in-memory configuration suitable for tests and local use.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: ProviderMemory,
			Driver:   DriverSQLite,
		},
		Contentful: ContentfulConfig{
			Environment:   "master",
			BaseURL:       "https://cdn.contentful.com",
			ManagementURL: "https://api.contentful.com",
			Locale:        "en-US",
			Timeout:       10 * time.Second,
			Include:       2,
			ContentTypes: ContentTypesConfig{
				Machine:     "machine",
				ProductType: "productType",
				Technology:  "technology",
			},
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Slugs: SlugConfig{
			Suffixes:        []string{"-vending"},
			DiagnosticLimit: 10,
		},
		Deprecation: DeprecationConfig{
			Store:       StoreMemory,
			NotifyUsers: true,
			CMSName:     "Contentful",
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "vendcms:deprecation",
			},
		},
		Links: LinksConfig{
			Paths: map[string]string{},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load decodes YAML from r over DefaultConfig.
func Load(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("vendcms config: decode: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a YAML config file over DefaultConfig.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("vendcms config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case ProviderMemory, ProviderContentful:
	case ProviderBun:
		switch normalize(cfg.Storage.Driver) {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled && provider != ProviderBun {
		return ErrCacheRequiresStorage
	}

	if provider == ProviderContentful || cfg.Features.Migration {
		if err := cfg.Contentful.Validate(cfg.Features.Migration); err != nil {
			return fmt.Errorf("%w: %w", ErrContentfulInvalid, err)
		}
	}
	if cfg.Features.Migration && provider != ProviderBun {
		return ErrMigrationRequiresStorage
	}

	if cfg.Slugs.DiagnosticLimit < 0 {
		return ErrDiagnosticLimitInvalid
	}
	for _, suffix := range cfg.Slugs.Suffixes {
		if !strings.HasPrefix(strings.TrimSpace(suffix), "-") {
			return fmt.Errorf("%w: %q", ErrSlugSuffixInvalid, suffix)
		}
	}

	switch normalize(cfg.Deprecation.Store) {
	case "", StoreMemory:
	case StoreRedis:
		if strings.TrimSpace(cfg.Deprecation.Redis.Addr) == "" {
			return ErrRedisAddrRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrDeprecationStoreUnknown, cfg.Deprecation.Store)
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		switch logProvider {
		case "console", "gologger", "zap":
		default:
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := normalize(cfg.Logging.Level); level != "" && !supportedLevels[level] {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			switch format := normalize(cfg.Logging.Format); format {
			case "", "json", "console", "pretty":
			default:
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// Validate checks the Contentful section. The management token is only
// required when pushing content back (withManagement).
func (c ContentfulConfig) Validate(withManagement bool) error {
	management := []validation.Rule{is.URL}
	if withManagement {
		management = append(management, validation.Required)
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.SpaceID, validation.Required),
		validation.Field(&c.AccessToken, validation.Required),
		validation.Field(&c.Environment, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.ManagementURL, management...),
		validation.Field(&c.ManagementToken, validation.When(withManagement, validation.Required)),
		validation.Field(&c.Include, validation.Min(0), validation.Max(10)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

var supportedLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "fatal": true,
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
