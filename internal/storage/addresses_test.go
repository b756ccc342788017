// internal/storage/addresses_test.go
package storage

import (
	"context"
	"sync"
	"testing"

	apperrors "creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Capital One", "capital_one"},
		{"CAPITAL ONE", "capital_one"},
		{"Capital-One!", "capital_one"},
		{"  Chase   Bank  ", "chase_bank"},
		{"A&B Collections, LLC.", "a_b_collections_llc"},
		{"!!!", ""},
		{"", ""},
		{"already_normalized_9", "already_normalized_9"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestCreditorAddressCache_CaseAndPunctuationInsensitive(t *testing.T) {
	cache := NewCreditorAddressCache(setupRedis(t), logger.Nop())
	ctx := context.Background()

	addr := models.CreditorAddress{
		CreditorName: "Capital One",
		Address: models.PostalAddress{
			Name:  "Capital One",
			Line1: "PO Box 30285",
			City:  "Salt Lake City",
			State: "UT",
			Zip:   "84130",
		},
	}
	require.NoError(t, cache.Save(ctx, "user-1", addr))

	for _, variant := range []string{"Capital One", "CAPITAL ONE", "capital-one!", " capital  one "} {
		got, err := cache.Get(ctx, "user-1", variant)
		require.NoError(t, err, "variant %q", variant)
		assert.Equal(t, addr, *got)
	}
}

func TestCreditorAddressCache_MissingIsNotFound(t *testing.T) {
	cache := NewCreditorAddressCache(setupRedis(t), logger.Nop())

	_, err := cache.Get(context.Background(), "user-1", "Unknown Creditor")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAddressNotFound))
}

func TestCreditorAddressCache_UsersAndCreditorsIsolated(t *testing.T) {
	cache := NewCreditorAddressCache(setupRedis(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "user-1", models.CreditorAddress{
		CreditorName: "Chase",
		Address:      models.PostalAddress{Line1: "PO Box 1"},
	}))

	_, err := cache.Get(ctx, "user-2", "Chase")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAddressNotFound))

	_, err = cache.Get(ctx, "user-1", "Wells Fargo")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAddressNotFound))
}

func TestCreditorAddressCache_ConcurrentDistinctCreditors(t *testing.T) {
	cache := NewCreditorAddressCache(setupRedis(t), logger.Nop())
	ctx := context.Background()

	names := []string{"Chase", "Wells Fargo", "Capital One", "Discover", "Synchrony"}
	for _, n := range names {
		require.NoError(t, cache.Save(ctx, "user-1", models.CreditorAddress{
			CreditorName: n,
			Address:      models.PostalAddress{Line1: "PO Box " + n},
		}))
	}

	var wg sync.WaitGroup
	for _, n := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			got, err := cache.Get(ctx, "user-1", name)
			assert.NoError(t, err)
			if got != nil {
				assert.Equal(t, name, got.CreditorName)
			}
		}(n)
	}
	wg.Wait()
}
