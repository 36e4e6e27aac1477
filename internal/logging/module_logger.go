package logging

import (
	"context"

	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Module names used across the runtime. Hosts can filter on the "module" field.
const (
	RootModule        = "vendcms"
	SlugsModule       = "vendcms.slugs"
	TransformModule   = "vendcms.transform"
	AdaptersModule    = "vendcms.adapters"
	DeprecationModule = "vendcms.deprecation"
	ContentfulModule  = "vendcms.contentful"
	MigrationModule   = "vendcms.migration"
	CommandsModule    = "vendcms.commands"
)

// Common structured field keys.
const (
	FieldEntity    = "entity"
	FieldOperation = "operation"
	FieldSlug      = "slug"
	FieldStage     = "stage"
)

// ModuleLogger resolves a logger for module from provider, falling back to a
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = RootModule
	}
	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// SlugsLogger returns the logger used by slug resolvers.
func SlugsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, SlugsModule)
}

// DeprecationLogger returns the logger used when legacy write paths are hit.
func DeprecationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, DeprecationModule)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
