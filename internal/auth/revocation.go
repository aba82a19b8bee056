package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/zWyrm/rewear-teamtan/internal/cache"
)

const revokedKeyPrefix = "revoked_user:"

// RevocationStore tracks users whose outstanding tokens must stop working
// before natural expiry. Bans and suspensions put the user id on the deny
// list; the auth middleware consults it on every authenticated call. Because
// the underlying cache fails safe, a Redis outage fails open: tokens keep
// working until expiry, which is no worse than the embedded-claims baseline.
type RevocationStore interface {
	Revoke(ctx context.Context, userID uint, ttl time.Duration) error
	Reinstate(ctx context.Context, userID uint) error
	IsRevoked(ctx context.Context, userID uint) (bool, error)
}

type revocationStore struct {
	cache *cache.Client
}

// NewRevocationStore creates a Redis-backed revocation store.
func NewRevocationStore(cache *cache.Client) RevocationStore {
	return &revocationStore{cache: cache}
}

func revokedKey(userID uint) string {
	return fmt.Sprintf("%s%d", revokedKeyPrefix, userID)
}

// Revoke deny-lists a user id. TTL should be the suspension length, or the
// token lifetime for bans; longer makes no difference since tokens expire.
func (s *revocationStore) Revoke(ctx context.Context, userID uint, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if ttl > TokenExpiry {
		ttl = TokenExpiry
	}
	return s.cache.Set(ctx, revokedKey(userID), []byte("1"), ttl)
}

// Reinstate clears a user's deny-list entry.
func (s *revocationStore) Reinstate(ctx context.Context, userID uint) error {
	return s.cache.Delete(ctx, revokedKey(userID))
}

// IsRevoked reports whether the user's tokens are deny-listed.
func (s *revocationStore) IsRevoked(ctx context.Context, userID uint) (bool, error) {
	return s.cache.Exists(ctx, revokedKey(userID))
}
