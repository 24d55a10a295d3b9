package favorites

import (
	"time"

	"nathanbeddoewebdev/pokeshop/internal/domain"
)

// Favorite is a saved item snapshot.
type Favorite struct {
	Item    domain.CatalogItem
	AddedAt time.Time
}
