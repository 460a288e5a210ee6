// Package cache provides chapter caching backends. A resolved chapter
// is cached under a key derived from the request, not from whichever
// source ultimately served it, so a fallback result shadows the
// original request until it expires.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"horse.fit/manna/internal/bible"
)

// Cache stores resolved chapters keyed by request identity.
type Cache interface {
	Get(ctx context.Context, key string) (*bible.Chapter, bool)
	Set(ctx context.Context, key string, chapter *bible.Chapter, ttl time.Duration) error
}

// Key derives the cache key for a chapter request. The language and
// translation are folded to lowercase so "KJV" and "kjv" share an entry.
func Key(lang, translation, book string, chapter int) string {
	raw := fmt.Sprintf("%s|%s|%s|%d",
		strings.ToLower(lang), strings.ToLower(translation), strings.ToLower(book), chapter)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Noop discards writes and never hits. Used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) (*bible.Chapter, bool) { return nil, false }

func (Noop) Set(context.Context, string, *bible.Chapter, time.Duration) error { return nil }

type memoryEntry struct {
	chapter   *bible.Chapter
	expiresAt time.Time
}

// Memory is an in-process cache with lazy expiry: stale entries are
// dropped on read, not by a background sweeper.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (*bible.Chapter, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return entry.chapter, true
}

func (m *Memory) Set(_ context.Context, key string, chapter *bible.Chapter, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{chapter: chapter, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len reports the number of live and stale entries held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
