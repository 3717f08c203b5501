package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"krishisahay-be/pkg/store"
)

// SessionRepository keeps active chat sessions in memory. Sessions idle for
// an hour are purged automatically.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Count returns the number of live sessions.
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
