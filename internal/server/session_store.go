package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/at-ishikawa/kotoba/internal/quiz"
)

// studySession serializes the requests of one learner since an engine is single-threaded.
type studySession struct {
	mu     sync.Mutex
	engine *quiz.Engine
}

// SessionStore keeps study sessions in memory. A session expires after ttl without requests.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *SessionStore) Create(engine *quiz.Engine) string {
	id := uuid.NewString()
	s.cache.SetDefault(id, &studySession{engine: engine})
	return id
}

// Get returns a session and extends its lifetime.
func (s *SessionStore) Get(id string) (*studySession, bool) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	session := value.(*studySession)
	s.cache.SetDefault(id, session)
	return session, true
}

func (s *SessionStore) Delete(id string) bool {
	if _, ok := s.cache.Get(id); !ok {
		return false
	}
	s.cache.Delete(id)
	return true
}

func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
