package zaplogger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-vendcms/internal/logging"
)

func TestProviderWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	provider := NewProviderFromLogger(zap.New(core))

	logger := logging.ModuleLogger(provider, logging.DeprecationModule)
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	logger.WithContext(ctx).Warn("deprecation.write_blocked", "entity", "machine", "count", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != logging.DeprecationModule {
		t.Fatalf("expected logger name %s, got %s", logging.DeprecationModule, entry.LoggerName)
	}
	if entry.Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %s", entry.Level)
	}
	ctxMap := entry.ContextMap()
	for key, want := range map[string]any{
		"module":     logging.DeprecationModule,
		"request_id": "r-1",
		"entity":     "machine",
		"count":      int64(3),
	} {
		if ctxMap[key] != want {
			t.Fatalf("field %s: want %v (%T), got %v (%T)", key, want, want, ctxMap[key], ctxMap[key])
		}
	}
}

func TestNewProviderRejectsBadLevel(t *testing.T) {
	if _, err := NewProvider(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestTraceMapsToDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	NewProviderFromLogger(zap.New(core)).GetLogger("vendcms").Trace("detail")
	if logs.Len() != 1 || logs.All()[0].Level != zapcore.DebugLevel {
		t.Fatalf("expected trace to be written at debug")
	}
}
