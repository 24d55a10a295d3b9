// Package providers maps source names to catalog source factories.
package providers

import (
	"time"

	"nathanbeddoewebdev/pokeshop/internal/cache"

	"go.uber.org/zap"
)

// Options carries the settings every source factory may use. Zero values
// mean "use the source's default".
type Options struct {
	BaseURL  string
	PageSize int
	Cache    *cache.Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
}
