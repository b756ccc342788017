// internal/storage/profiles.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/redis/go-redis/v9"
)

// ProfileStore keeps one credit profile per user in Redis.
type ProfileStore struct {
	redis  *redis.Client
	logger logger.Logger
}

func NewProfileStore(rdb *redis.Client, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"store": "profiles"}),
	}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// Get returns the stored profile, or PROFILE_NOT_FOUND.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*models.CreditProfile, error) {
	raw, err := s.redis.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewProfileNotFoundError(userID)
		}
		return nil, apperrors.NewCacheReadFailedError(profileKey(userID), err)
	}

	var profile models.CreditProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

// Save stores the profile wholesale. Profiles are small and per-user, so no
// expiry is set.
func (s *ProfileStore) Save(ctx context.Context, userID string, profile *models.CreditProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.redis.Set(ctx, profileKey(userID), data, 0).Err(); err != nil {
		return apperrors.NewCacheWriteFailedError(profileKey(userID), err)
	}
	return nil
}

// Merge shallow-merges a partial update into the stored profile. Top-level
// fields from the partial replace the stored ones; nested objects are
// replaced wholesale, never deep-merged. Absent profile is PROFILE_NOT_FOUND,
// not an upsert.
func (s *ProfileStore) Merge(ctx context.Context, userID string, partial map[string]interface{}) (*models.CreditProfile, error) {
	raw, err := s.redis.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewProfileNotFoundError(userID)
		}
		return nil, apperrors.NewCacheReadFailedError(profileKey(userID), err)
	}

	var base map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &base); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	for k, v := range partial {
		base[k] = v
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("encode merged profile: %w", err)
	}

	var profile models.CreditProfile
	if err := json.Unmarshal(merged, &profile); err != nil {
		return nil, fmt.Errorf("merged profile is malformed: %w", err)
	}

	if err := s.redis.Set(ctx, profileKey(userID), merged, 0).Err(); err != nil {
		return nil, apperrors.NewCacheWriteFailedError(profileKey(userID), err)
	}

	s.logger.Debug("profile merged", map[string]interface{}{
		"userId": userID,
		"fields": len(partial),
	})
	return &profile, nil
}
