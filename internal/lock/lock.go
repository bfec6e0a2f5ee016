// Package lock provides a lease-based mutual-exclusion lock over any
// key-value store offering atomic set-if-absent with expiry.
package lock

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Store is the minimal key-value contract the lease needs. SetNX must be
// atomic: it sets key to value with the given TTL only if key is absent,
// and reports whether the set happened. Get returns "" for a missing key.
type Store interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// Lease is a cooperative lock for one logical job. The TTL bounds how
// long a crashed holder can block other runs.
type Lease struct {
	store  Store
	key    string
	ttl    time.Duration
	logger *logrus.Logger
}

func NewLease(store Store, key string, ttl time.Duration, logger *logrus.Logger) *Lease {
	return &Lease{store: store, key: key, ttl: ttl, logger: logger}
}

// Acquire tries to take the lease with the given owner token. It returns
// false without error when another owner currently holds it.
func (l *Lease) Acquire(ctx context.Context, token string) (bool, error) {
	return l.store.SetNX(ctx, l.key, token, l.ttl)
}

// Release deletes the lease only if token still owns it, so a slow,
// expired owner cannot clobber a newer owner's lock. Failures are logged
// and swallowed; the TTL is the backstop.
func (l *Lease) Release(ctx context.Context, token string) {
	current, err := l.store.Get(ctx, l.key)
	if err != nil {
		l.logger.WithError(err).Warn("failed to read lock for release")
		return
	}
	if current != token {
		return
	}
	if err := l.store.Del(ctx, l.key); err != nil {
		l.logger.WithError(err).Warn("failed to release lock")
	}
}
