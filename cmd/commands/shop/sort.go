package shop

import (
	"nathanbeddoewebdev/pokeshop/internal/domain"

	"go.uber.org/zap"
)

func parseSort(log *zap.Logger, raw string) domain.SortMode {
	mode, ok := domain.LookupSortMode(raw)
	if !ok {
		log.Warn("unknown sort mode, using relevance", zap.String("sort", raw))
	}
	return mode
}
