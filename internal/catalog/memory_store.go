package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps the catalog in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]map[string]string
	postings map[string]map[string]map[string]struct{}
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]map[string]string),
		postings: make(map[string]map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Update(_ context.Context, uid string, set map[string]string, unset []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uid]
	if !ok {
		doc = make(map[string]string)
		s.docs[uid] = doc
	}
	for index, value := range set {
		if prev, ok := doc[index]; ok {
			s.unpost(index, prev, uid)
		}
		s.post(index, value, uid)
		doc[index] = value
	}
	for _, index := range unset {
		if prev, ok := doc[index]; ok {
			s.unpost(index, prev, uid)
			delete(doc, index)
		}
	}
	return nil
}

func (s *MemoryStore) Values(_ context.Context, uid string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.docs[uid]))
	for k, v := range s.docs[uid] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Remove(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, value := range s.docs[uid] {
		s.unpost(index, value, uid)
	}
	delete(s.docs, uid)
	return nil
}

// Match intersects the postings of every criterion, smallest set first.
func (s *MemoryStore) Match(_ context.Context, criteria map[string]string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(criteria) == 0 {
		uids := make([]string, 0, len(s.docs))
		for uid := range s.docs {
			uids = append(uids, uid)
		}
		return uids, nil
	}

	sets := make([]map[string]struct{}, 0, len(criteria))
	for index, value := range criteria {
		set := s.postings[index][value]
		if len(set) == 0 {
			return nil, nil
		}
		sets = append(sets, set)
	}
	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })

	var uids []string
	for uid := range sets[0] {
		matched := true
		for _, set := range sets[1:] {
			if _, ok := set[uid]; !ok {
				matched = false
				break
			}
		}
		if matched {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]map[string]string)
	s.postings = make(map[string]map[string]map[string]struct{})
	return nil
}

// Postings returns the uids filed under index=value.
func (s *MemoryStore) Postings(index, value string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uids := make([]string, 0, len(s.postings[index][value]))
	for uid := range s.postings[index][value] {
		uids = append(uids, uid)
	}
	return uids
}

func (s *MemoryStore) post(index, value, uid string) {
	byValue, ok := s.postings[index]
	if !ok {
		byValue = make(map[string]map[string]struct{})
		s.postings[index] = byValue
	}
	set, ok := byValue[value]
	if !ok {
		set = make(map[string]struct{})
		byValue[value] = set
	}
	set[uid] = struct{}{}
}

func (s *MemoryStore) unpost(index, value, uid string) {
	set := s.postings[index][value]
	delete(set, uid)
	if len(set) == 0 {
		delete(s.postings[index], value)
	}
}
