// Package wallpapers persists saved quote compositions.
//
// The whole collection lives under a single key of a core.KeyValueStore as
// one JSON array, newest first. Every mutation reads the full collection,
// modifies it in memory and writes it back. Nothing serializes concurrent
// callers: two overlapping mutations resolve as last-write-wins over the
// whole collection.
package wallpapers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/sirupsen/logrus"
)

// DefaultKey is the storage key of the collection.
const DefaultKey = "savedWallpapers"

type (
	// Store is the wallpaper repository.
	Store struct {
		kv        core.KeyValueStore
		key       string
		now       func() time.Time
		ids       IDGenerator
		observers []Observer
	}

	// Option configures a Store.
	Option func(*Store)
)

// WithClock overrides the time source used for identifiers and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the identifier scheme.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithKey stores the collection under a different key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithObserver registers an observer notified after each successful mutation.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// NewStore creates a wallpaper store on top of kv.
func NewStore(kv core.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		now: time.Now,
		ids: NewULIDs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers o after construction, for observers that need the store
// themselves. It must not run concurrently with mutations.
func (s *Store) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// Create validates and saves a new wallpaper at the head of the collection
// and returns its identifier.
func (s *Store) Create(ctx context.Context, draft core.Draft) (string, error) {
	w := draft.Wallpaper()
	if err := w.Validate(); err != nil {
		return "", err
	}
	w = w.Normalize()

	collection, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	if w.ID, err = s.ids.NewID(now); err != nil {
		logrus.WithError(err).Error("Failed to generate wallpaper identifier")
		return "", fmt.Errorf("generate wallpaper id: %w", err)
	}
	w.CreatedAt = now.UnixMilli()
	w.UpdatedAt = w.CreatedAt

	log := logrus.WithFields(logrus.Fields{
		"wallpaper_id": w.ID,
		"aspect_ratio": w.AspectRatio,
	})
	if _, dup := find(collection, w.ID); dup >= 0 {
		log.Warn("Generated identifier already present in collection")
	}

	collection = append([]core.Wallpaper{w}, collection...)
	if err := s.save(ctx, collection); err != nil {
		log.WithError(err).Error("Failed to save wallpaper")
		return "", err
	}

	log.Info("Wallpaper created successfully")
	s.notify(ctx, Event{Type: EventCreate, ID: w.ID, At: w.CreatedAt})
	return w.ID, nil
}

// ReadAll returns the whole collection, newest first. A collection that was
// never written, or whose blob cannot be decoded, reads as empty.
func (s *Store) ReadAll(ctx context.Context) ([]core.Wallpaper, error) {
	return s.load(ctx)
}

// ReadByID returns the first wallpaper with the given identifier. The boolean
// is false when no such wallpaper exists.
func (s *Store) ReadByID(ctx context.Context, id string) (core.Wallpaper, bool, error) {
	collection, err := s.load(ctx)
	if err != nil {
		return core.Wallpaper{}, false, err
	}
	w, idx := find(collection, id)
	if idx < 0 {
		logrus.WithField("wallpaper_id", id).Debug("Wallpaper not found")
		return core.Wallpaper{}, false, nil
	}
	return w, true, nil
}

// Update merges patch over the wallpaper with the given identifier and
// returns the result. The identifier and creation time are never changed.
func (s *Store) Update(ctx context.Context, id string, patch core.Patch) (core.Wallpaper, error) {
	log := logrus.WithField("wallpaper_id", id)

	collection, err := s.load(ctx)
	if err != nil {
		return core.Wallpaper{}, err
	}
	existing, idx := find(collection, id)
	if idx < 0 {
		log.Warn("Wallpaper not found for update")
		return core.Wallpaper{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	merged := patch.Apply(existing)
	if err := merged.Validate(); err != nil {
		return core.Wallpaper{}, err
	}
	merged = merged.Normalize()
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = max(s.now().UnixMilli(), existing.UpdatedAt, existing.CreatedAt)

	collection[idx] = merged
	if err := s.save(ctx, collection); err != nil {
		log.WithError(err).Error("Failed to save updated wallpaper")
		return core.Wallpaper{}, err
	}

	log.Info("Wallpaper updated successfully")
	s.notify(ctx, Event{Type: EventUpdate, ID: id, At: merged.UpdatedAt})
	return merged, nil
}

// Delete removes every wallpaper with the given identifier. Deleting an
// unknown identifier is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	log := logrus.WithField("wallpaper_id", id)

	collection, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := collection[:0]
	for _, w := range collection {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	removed := len(collection) - len(kept)

	if err := s.save(ctx, kept); err != nil {
		log.WithError(err).Error("Failed to save collection after delete")
		return err
	}

	if removed == 0 {
		log.Debug("Wallpaper not found for deletion, considered successful")
		return nil
	}
	log.WithField("removed", removed).Info("Wallpaper deleted successfully")
	s.notify(ctx, Event{Type: EventDelete, ID: id, At: s.now().UnixMilli()})
	return nil
}

func (s *Store) load(ctx context.Context) ([]core.Wallpaper, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return []core.Wallpaper{}, nil
		}
		return nil, &core.StorageError{Op: "read", Key: s.key, Err: err}
	}

	collection, err := DecodeCollection(data)
	if err != nil {
		logrus.WithError(err).WithField("key", s.key).Warn("Stored wallpapers are unreadable, treating as empty")
		return []core.Wallpaper{}, nil
	}
	return collection, nil
}

func (s *Store) save(ctx context.Context, collection []core.Wallpaper) error {
	data, err := EncodeCollection(collection)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return &core.StorageError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}

func (s *Store) notify(ctx context.Context, ev Event) {
	for _, o := range s.observers {
		o.WallpaperChanged(ctx, ev)
	}
}

func find(collection []core.Wallpaper, id string) (core.Wallpaper, int) {
	for i, w := range collection {
		if w.ID == id {
			return w, i
		}
	}
	return core.Wallpaper{}, -1
}
