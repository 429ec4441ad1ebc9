package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// DeliveryKey addresses one user's resolved delivery quote for one store.
// Quotes are kept per store rather than in a single "current store" slot so
// a multi-supplier checkout never applies one store's fee to another.
func DeliveryKey(userID, storeID uuid.UUID) string {
	return "delivery:" + userID.String() + ":" + storeID.String()
}

const (
	ProductKeyPrefix = "product"
	StoreKeyPrefix   = "store"
	UserKeyPrefix    = "user"
)
