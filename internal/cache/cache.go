// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/linkctl/internal/cacheutil"
	"github.com/staranto/linkctl/internal/links"
	"github.com/staranto/linkctl/internal/source"
)

// ErrSourceMissing is matched by the error Get returns when there is no
// cache entry and the link source does not exist.
var ErrSourceMissing = errors.New("link source missing")

// SourceMissingError reports a miss that could not be computed because the
// link source was not found.
type SourceMissingError struct {
	Path string
	Err  error
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("link source not found: %s", e.Path)
}

func (e *SourceMissingError) Unwrap() error {
	return e.Err
}

func (e *SourceMissingError) Is(target error) bool {
	return target == ErrSourceMissing
}

// Cache maps a request context to a stored, normalized sample of links.
type Cache struct {
	store   cacheutil.Store
	source  source.Source
	rng     *rand.Rand
	corrupt CorruptPolicy
}

// Option configures a Cache.
type Option func(*Cache)

// WithSource replaces the file based link source.
func WithSource(s source.Source) Option {
	return func(c *Cache) { c.source = s }
}

// WithRand sets the generator used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(c *Cache) { c.rng = rng }
}

// WithCorruptPolicy sets how unreadable entries are handled.
func WithCorruptPolicy(p CorruptPolicy) Option {
	return func(c *Cache) { c.corrupt = p }
}

// New returns a Cache persisting entries in store.
func New(store cacheutil.Store, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		source:  source.FileSource{},
		corrupt: CorruptEmpty,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = links.NewRand(0)
	}
	return c
}

// Key derives the storage key for a context.
func (c *Cache) Key(contextKey string) string {
	return cacheutil.EncodeKey(contextKey)
}

// Get returns the links stored for contextKey. On a miss it reads
// sourcePath, samples up to limit records, normalizes them, stores the
// result and returns it. A stored entry is never re-sampled.
func (c *Cache) Get(contextKey, sourcePath string, limit int) ([]links.Record, error) {
	key := c.Key(contextKey)
	logger := log.WithField("key", key)

	data, ok, err := c.store.Read(key)
	if err != nil {
		return nil, err
	}

	if ok {
		records, err := decode(data)
		if err == nil {
			logger.Debugf("cache hit, %d links", len(records))
			return records, nil
		}

		logger.WithError(err).Warnf("corrupt cache entry, policy %s", c.corrupt)
		if c.corrupt != CorruptRecompute {
			return []links.Record{}, nil
		}
	}

	logger.Debugf("cache miss, reading %s", sourcePath)

	all, err := c.source.ReadAll(sourcePath)
	if err != nil {
		var nf *source.NotFoundError
		if errors.As(err, &nf) {
			return nil, &SourceMissingError{Path: sourcePath, Err: err}
		}
		return nil, err
	}

	records := links.Normalize(links.Sample(all, limit, c.rng))
	logger.Debugf("sampled %d of %d links", len(records), len(all))

	data, err = encode(records)
	if err != nil {
		return nil, err
	}

	// The sample is still returned when it cannot be stored; the next call
	// will simply miss again.
	if err := c.store.Write(key, data); err != nil {
		logger.WithError(err).Error("failed to store cache entry")
	}

	return records, nil
}

// Invalidate deletes the entry for contextKey so the next Get re-samples.
func (c *Cache) Invalidate(contextKey string) error {
	return c.store.Delete(c.Key(contextKey))
}

// encode renders records as indented JSON without HTML escaping.
func encode(records []links.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return buf.Bytes(), nil
}

// decode parses a stored entry. A literal null is an empty list.
func decode(data []byte) ([]links.Record, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if doc.Type == gjson.Null {
		return []links.Record{}, nil
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", doc.Type)
	}

	records := []links.Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
