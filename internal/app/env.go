// Package app carries per-invocation runtime state (configuration, logger,
// caches) from the root command to its subcommands through the command
// context.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"nathanbeddoewebdev/pokeshop/internal/cache"
	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/providers"
	catalogsvc "nathanbeddoewebdev/pokeshop/internal/services/catalog"
	"nathanbeddoewebdev/pokeshop/internal/swrcache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Env is the runtime state shared by every command of one invocation.
type Env struct {
	Config *config.Config
	Logger *zap.Logger

	// CacheDir roots the item and page caches. Empty disables caching.
	CacheDir string
}

type envKey struct{}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// From returns the Env attached to cmd's context. Commands executed
// without the root command get an uncached Env built from stored
// configuration and environment overrides.
func From(cmd *cobra.Command) (*Env, error) {
	if ctx := cmd.Context(); ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env, nil
		}
	}

	cfg, err := config.LoadEffective()
	if err != nil {
		return nil, err
	}
	return &Env{Config: cfg, Logger: zap.NewNop()}, nil
}

// SourceName returns the --source flag when set, otherwise the configured
// source.
func (e *Env) SourceName(cmd *cobra.Command) string {
	if f := cmd.Flag("source"); f != nil && f.Changed && f.Value.String() != "" {
		return f.Value.String()
	}
	return e.Config.EffectiveSource()
}

// Source resolves the catalog source for cmd and wraps it in the catalog
// service. pageSize <= 0 uses the configured page size.
func (e *Env) Source(cmd *cobra.Command, pageSize int) (*catalogsvc.Service, error) {
	if pageSize <= 0 {
		pageSize = e.Config.EffectivePageSize()
	}

	opts := providers.Options{
		BaseURL:  e.Config.EffectiveAPIURL(),
		PageSize: pageSize,
		Logger:   e.Logger,
	}
	var svcOpts []catalogsvc.Option
	if e.CacheDir != "" {
		opts.Cache = cache.New(filepath.Join(e.CacheDir, "items"))
		svcOpts = append(svcOpts, catalogsvc.WithCache(swrcache.New(filepath.Join(e.CacheDir, "pages"))))
	}

	name := e.SourceName(cmd)
	src, err := providers.Get(name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog source: %w", err)
	}

	e.Logger.Debug("catalog source resolved",
		zap.String("source", name),
		zap.Int("page_size", pageSize),
		zap.Bool("cached", e.CacheDir != ""))
	return catalogsvc.New(src, svcOpts...), nil
}
