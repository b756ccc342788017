// internal/storage/addresses.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	apperrors "creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/redis/go-redis/v9"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize folds a creditor name to a cache key: lowercase, every maximal
// run of non-alphanumeric characters collapsed to a single underscore,
// leading and trailing separators stripped. "Capital One", "CAPITAL ONE" and
// "Capital-One!" all reduce to "capital_one".
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	collapsed := nonAlphanumeric.ReplaceAllString(lowered, "_")
	return strings.Trim(collapsed, "_")
}

// CreditorAddressCache stores one mailing address per (user, normalized
// creditor name) so repeat disputes skip address collection. Entries for
// different creditors are independent keys; concurrent writes to the same
// creditor are last-writer-wins.
type CreditorAddressCache struct {
	redis  *redis.Client
	logger logger.Logger
}

func NewCreditorAddressCache(rdb *redis.Client, log logger.Logger) *CreditorAddressCache {
	return &CreditorAddressCache{
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"store": "creditor_addresses"}),
	}
}

func addressKey(userID, normalizedName string) string {
	return fmt.Sprintf("creditor:%s:%s", userID, normalizedName)
}

// Save stores the address keyed by the normalized creditor name.
func (c *CreditorAddressCache) Save(ctx context.Context, userID string, addr models.CreditorAddress) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	key := addressKey(userID, Normalize(addr.CreditorName))
	if err := c.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return apperrors.NewCacheWriteFailedError(key, err)
	}
	return nil
}

// Get looks up by the same normalization, making the cache case- and
// punctuation-insensitive by construction.
func (c *CreditorAddressCache) Get(ctx context.Context, userID, rawName string) (*models.CreditorAddress, error) {
	key := addressKey(userID, Normalize(rawName))
	raw, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewAddressNotFoundError(rawName)
		}
		return nil, apperrors.NewCacheReadFailedError(key, err)
	}

	var addr models.CreditorAddress
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return &addr, nil
}
