package logging

import (
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// WithFields attaches fields when the logger implements interfaces.FieldsLogger.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithEntity scopes a logger to a content entity (machine, product_type, ...)
// and an optional operation name. Blank values are skipped.
func WithEntity(logger interfaces.Logger, entity, operation string) interfaces.Logger {
	fields := map[string]any{}
	if v := strings.TrimSpace(entity); v != "" {
		fields[FieldEntity] = v
	}
	if v := strings.TrimSpace(operation); v != "" {
		fields[FieldOperation] = v
	}
	return WithFields(logger, fields)
}

// Args flattens a field map into sorted key/value pairs for Logger calls.
func Args(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

