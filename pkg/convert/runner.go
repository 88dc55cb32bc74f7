package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzbridge/pkg/cache"
	"github.com/matzehuels/tikzbridge/pkg/figure"
)

// Runner encapsulates conversion with caching. The Runner is stateless
// except for the cache and logger; multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute decodes raw figure bytes in the given format and converts
// them, consulting the cache first. Cached results carry no warnings:
// the warning list belongs to the conversion that produced the entry.
func (r *Runner) Execute(ctx context.Context, raw []byte, format string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	key := cacheKey(raw, format, opts)
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
	} else if hit {
		r.Logger.Debug("cache hit", "key", key)
		return &Result{Code: string(data), CacheHit: true}, nil
	}

	fig, err := figure.Parse(raw, format)
	if err != nil {
		return nil, err
	}
	result, err := Convert(fig, opts)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, []byte(result.Code)); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
	}
	return result, nil
}

// cacheKey derives the cache key from the input bytes and every option
// that affects output.
func cacheKey(raw []byte, format string, opts Options) string {
	optData, _ := json.Marshal(opts)
	return cache.RenderKey(raw, format, string(optData))
}

// Save writes generated markup to path, creating parent directories as
// needed.
func Save(path, code string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
