package history

import (
	"sync"

	"french_vocab_trainer/generator"
)

// MemoryStore keeps the log in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu  sync.Mutex
	log Log
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{log: Log{}}
}

func (s *MemoryStore) LoadAll() Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Log, len(s.log))
	copy(out, s.log)
	return out
}

func (s *MemoryStore) Prepend(topic string, level generator.Level, entries []generator.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = prepend(s.log, newRecord(topic, level, entries))
}
