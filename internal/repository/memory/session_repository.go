package memory

import (
	"sync"
	"time"

	"support-routing-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds hot per-conversation state. Entries expire after an
// hour of inactivity; the durable copy in Postgres survives eviction.
//
// Acquire/Release implement the single-writer-per-session discipline: a lane
// must hold the session lock for the whole turn. TryAcquire lets a competing
// worker fail fast with a concurrency conflict instead of queueing.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) Save(session *entity.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) laneLock(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[sessionID] = lock
	}
	return lock
}

// Acquire blocks until the session lane is free.
func (r *SessionRepository) Acquire(sessionID string) {
	r.laneLock(sessionID).Lock()
}

// TryAcquire returns false if another lane currently owns the session.
func (r *SessionRepository) TryAcquire(sessionID string) bool {
	return r.laneLock(sessionID).TryLock()
}

// Release frees the session lane. Must be called by the lane that acquired it.
func (r *SessionRepository) Release(sessionID string) {
	r.laneLock(sessionID).Unlock()
}
