package store

import (
	"sync"

	"github.com/AngelCh415/leadcalc/internal/models"
)

// MemoryStore keeps unlock submissions for the life of the process. It holds
// at most capacity entries and evicts the oldest first.
type MemoryStore struct {
	mu       sync.RWMutex
	subs     map[string]*models.Submission
	order    []string
	seen     map[string]string // dedupe key -> submission id
	keyOf    map[string]string // submission id -> dedupe key
	capacity int
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{
		subs:     make(map[string]*models.Submission),
		seen:     make(map[string]string),
		keyOf:    make(map[string]string),
		capacity: capacity,
	}
}

// Claim records sub under key unless key was already claimed, in which case
// it returns the earlier submission and false.
func (s *MemoryStore) Claim(key string, sub models.Submission) (models.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.seen[key]; ok {
		if prev, ok := s.subs[id]; ok {
			return *prev, false
		}
	}
	s.put(sub)
	s.seen[key] = sub.ID
	s.keyOf[sub.ID] = key
	return sub, true
}

func (s *MemoryStore) Put(sub models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(sub)
}

func (s *MemoryStore) put(sub models.Submission) {
	if _, ok := s.subs[sub.ID]; !ok {
		s.order = append(s.order, sub.ID)
	}
	cp := sub
	s.subs[sub.ID] = &cp
	for len(s.order) > s.capacity {
		old := s.order[0]
		s.order = s.order[1:]
		delete(s.subs, old)
		if k, ok := s.keyOf[old]; ok {
			delete(s.seen, k)
			delete(s.keyOf, old)
		}
	}
}

func (s *MemoryStore) Get(id string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return models.Submission{}, false
	}
	return *sub, true
}

// Update applies fn to the stored submission under the write lock.
func (s *MemoryStore) Update(id string, fn func(*models.Submission)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return false
	}
	fn(sub)
	return true
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
