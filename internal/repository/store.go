package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ErrKVUnavailable is returned by backends that cannot reach their server.
var ErrKVUnavailable = errors.New("kv backend unavailable")

// KV is a durable key-value area holding string blobs.
type KV interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries as one unit.
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, key string) error
}

// Store wraps a KV with JSON encoding and fallback-to-default reads.
// Reads never fail and writes never fail observably; problems are logged.
type Store struct {
	KV     KV
	Logger echo.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv KV, logger echo.Logger) *Store {
	if logger == nil {
		logger = log.New("store")
	}
	return &Store{KV: kv, Logger: logger, locks: make(map[string]*sync.Mutex)}
}

// Load decodes the JSON blob under key into T. A missing key, a backend
// error or malformed content all yield def.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok, err := s.KV.Get(ctx, key)
	if err != nil {
		s.Logger.Warnj(log.JSON{"op": "store_load", "key": key, "error": err.Error()})
		return def
	}
	if !ok || raw == "" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.Logger.Warnj(log.JSON{"op": "store_load", "key": key, "error": "corrupt entry: " + err.Error()})
		return def
	}
	return out
}

// LoadRaw returns the unencoded string under key, or def.
func (s *Store) LoadRaw(ctx context.Context, key, def string) string {
	raw, ok, err := s.KV.Get(ctx, key)
	if err != nil {
		s.Logger.Warnj(log.JSON{"op": "store_load_raw", "key": key, "error": err.Error()})
		return def
	}
	if !ok || raw == "" {
		return def
	}
	return raw
}

// Save encodes v as JSON and writes it under key. Failures are swallowed.
func (s *Store) Save(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.Logger.Errorj(log.JSON{"op": "store_save", "key": key, "error": err.Error()})
		return
	}
	s.SaveRaw(ctx, key, string(b))
}

// SaveRaw writes value under key without encoding. Failures are swallowed.
func (s *Store) SaveRaw(ctx context.Context, key, value string) {
	if err := s.KV.Set(ctx, key, value); err != nil {
		s.Logger.Errorj(log.JSON{"op": "store_save", "key": key, "error": err.Error()})
	}
}

// SaveAll encodes every value and writes them in a single SetMany.
func (s *Store) SaveAll(ctx context.Context, values map[string]any) {
	entries := make(map[string]string, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			s.Logger.Errorj(log.JSON{"op": "store_save_all", "key": k, "error": err.Error()})
			return
		}
		entries[k] = string(b)
	}
	if err := s.KV.SetMany(ctx, entries); err != nil {
		s.Logger.Errorj(log.JSON{"op": "store_save_all", "keys": len(entries), "error": err.Error()})
	}
}

// Delete removes key. Failures are swallowed.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.KV.Delete(ctx, key); err != nil {
		s.Logger.Errorj(log.JSON{"op": "store_delete", "key": key, "error": err.Error()})
	}
}

// Lock serialises read-modify-write cycles on the given keys within this
// process. Keys are locked in sorted order.
func (s *Store) Lock(keys ...string) (unlock func()) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for i, k := range sorted {
		if i > 0 && sorted[i-1] == k {
			continue
		}
		m := s.keyLock(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}
