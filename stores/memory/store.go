package memory

import (
	"context"
	"sync"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/sirupsen/logrus"
)

type kvStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStore creates a new in-memory key-value store.
func NewStore() core.KeyValueStore {
	return &kvStore{
		values: make(map[string][]byte),
	}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logrus.WithField("key", key)

	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		log.Debug("Key not found")
		return nil, core.ErrKeyNotFound
	}

	log.WithField("data_length", len(value)).Debug("Value retrieved successfully")
	return append([]byte(nil), value...), nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"key":         key,
		"data_length": len(value),
	}).Debug("Value stored successfully")
	return nil
}
