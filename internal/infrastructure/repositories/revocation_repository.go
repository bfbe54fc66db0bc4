package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/contactsvc/domain"
)

// RevocationRepositoryImpl implements domain.RevocationStore using Redis.
// Entries expire together with the token they revoke.
type RevocationRepositoryImpl struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRevocationRepository creates a new revocation repository
func NewRevocationRepository(client *redis.Client) domain.RevocationStore {
	return &RevocationRepositoryImpl{
		client: client,
		prefix: "revoked:",
		now:    time.Now,
	}
}

// Revoke implements domain.RevocationStore with SET NX, so only the first
// caller for a token id wins
func (r *RevocationRepositoryImpl) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		// already unusable, nobody may claim it
		return false, nil
	}
	claimed, err := r.client.SetNX(ctx, r.prefix+tokenID, expiresAt.Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return claimed, nil
}

// IsRevoked implements domain.RevocationStore
func (r *RevocationRepositoryImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}
