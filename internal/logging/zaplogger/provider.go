// Package zaplogger adapts go.uber.org/zap to the vendcms logging contract.
package zaplogger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Config selects the zap preset and level.
type Config struct {
	Level       string
	Development bool
}

// Provider names child loggers after vendcms modules.
type Provider struct {
	root *zap.Logger
}

// NewProvider builds a zap logger from the production (or development) preset.
func NewProvider(cfg Config) (*Provider, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		level, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("zaplogger: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	root, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("zaplogger: build: %w", err)
	}
	return &Provider{root: root}, nil
}

// NewProviderFromLogger wraps an existing zap logger.
func NewProviderFromLogger(root *zap.Logger) *Provider {
	return &Provider{root: root}
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	if p == nil || p.root == nil {
		return nil
	}
	return p.root.Sync()
}

func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	named := p.root
	if name = strings.TrimSpace(name); name != "" {
		named = named.Named(name)
	}
	return &adapter{sugar: named.Sugar()}
}

type adapter struct {
	sugar *zap.SugaredLogger
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

// Trace has no zap equivalent and is written at debug.
func (a *adapter) Trace(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.sugar.Fatalw(msg, args...) }

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	return &adapter{sugar: a.sugar.With(logging.Args(fields)...)}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	fields := logging.ContextFields(ctx)
	if len(fields) == 0 {
		return a
	}
	return a.WithFields(fields)
}
