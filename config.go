package vendcms

import "github.com/goliatone/go-vendcms/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrContentfulInvalid        = runtimeconfig.ErrContentfulInvalid
	ErrDeprecationStoreUnknown  = runtimeconfig.ErrDeprecationStoreUnknown
	ErrRedisAddrRequired        = runtimeconfig.ErrRedisAddrRequired
	ErrDiagnosticLimitInvalid   = runtimeconfig.ErrDiagnosticLimitInvalid
	ErrSlugSuffixInvalid        = runtimeconfig.ErrSlugSuffixInvalid
	ErrCacheRequiresStorage     = runtimeconfig.ErrCacheRequiresStorage
	ErrMigrationRequiresStorage = runtimeconfig.ErrMigrationRequiresStorage
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config             = runtimeconfig.Config
	StorageConfig      = runtimeconfig.StorageConfig
	ContentfulConfig   = runtimeconfig.ContentfulConfig
	ContentTypesConfig = runtimeconfig.ContentTypesConfig
	CacheConfig        = runtimeconfig.CacheConfig
	SlugConfig         = runtimeconfig.SlugConfig
	DeprecationConfig  = runtimeconfig.DeprecationConfig
	RedisConfig        = runtimeconfig.RedisConfig
	LinksConfig        = runtimeconfig.LinksConfig
	LoggingConfig      = runtimeconfig.LoggingConfig
	Features           = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
