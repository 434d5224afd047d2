package auth

import (
	"fmt"
	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"time"
)

// CacheStore keeps sessions in a ristretto cache. Entries carry a TTL equal to the
// session lifetime, and sessions past ExpiresAt are reported absent even when cached.
type CacheStore struct {
	cache  *ristretto.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewSessionCache() (*ristretto.Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create session cache: %w", err)
	}
	return cache, nil
}

func NewCacheStore(cache *ristretto.Cache, ttl time.Duration, logger *zap.Logger) *CacheStore {
	return &CacheStore{
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (cs *CacheStore) Create(user Identity) (Session, error) {
	if user.ID == "" {
		return Session{}, ErrEmptyIdentity
	}
	now := cs.now()
	session := Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(cs.ttl),
	}
	if !cs.cache.SetWithTTL(session.ID, session, 1, cs.ttl) {
		cs.logger.Error("Session dropped by cache", zap.String("user_id", user.ID))
		return Session{}, ErrSessionNotStored
	}
	// Sets are buffered; wait so the session is visible to the next request.
	cs.cache.Wait()
	cs.logger.Info("Session created", zap.String("user_id", user.ID))
	return session, nil
}

func (cs *CacheStore) Get(id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}
	value, found := cs.cache.Get(id)
	if !found {
		return Session{}, false
	}
	session, ok := value.(Session)
	if !ok {
		cs.logger.Error("Unexpected value in session cache", zap.String("type", fmt.Sprintf("%T", value)))
		return Session{}, false
	}
	if session.Expired(cs.now()) {
		cs.cache.Del(id)
		return Session{}, false
	}
	return session, true
}

func (cs *CacheStore) Delete(id string) {
	cs.cache.Del(id)
}
