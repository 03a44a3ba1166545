// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// LoadHook observes every trip to the artifact source.
// Cache hits do not invoke it.
type LoadHook func(kind ModelKind, duration time.Duration, err error)

// CacheHook observes every Load: hit is false when the cache had no entry.
type CacheHook func(hit bool)

// DefaultLoadTimeout bounds a single source read.
const DefaultLoadTimeout = 2 * time.Minute

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLoadHook registers a hook called after each source load.
func WithLoadHook(hook LoadHook) StoreOption {
	return func(s *Store) {
		s.onLoad = hook
	}
}

// WithCacheHook registers a hook called on every Load of a valid kind.
func WithCacheHook(hook CacheHook) StoreOption {
	return func(s *Store) {
		s.onCache = hook
	}
}

// WithLoadTimeout bounds each source read. Non-positive values are ignored.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// Store loads artifacts from a source and keeps one per kind in memory.
// Artifacts never change after load, so cached entries do not expire.
type Store struct {
	source  ArtifactSource
	logger  zerolog.Logger
	onLoad  LoadHook
	onCache CacheHook

	loadTimeout time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	// gen counts invalidations per kind. A read only caches its artifact
	// if the generation it started under is still current.
	gen     map[ModelKind]uint64
	loaded  map[ModelKind]*Artifact
	hits    atomic.Int64
	misses  atomic.Int64
	sources atomic.Int64
}

// NewStore creates a store reading from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(source ArtifactSource, logger zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		source:      source,
		logger:      logger.With().Str("component", "artifact_store").Logger(),
		loadTimeout: DefaultLoadTimeout,
		gen:         make(map[ModelKind]uint64),
		loaded:      make(map[ModelKind]*Artifact),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the artifact for kind, reading it from the source on first use.
//
// Concurrent first loads of the same kind share one read. The read is not
// tied to any single caller: a caller whose ctx ends stops waiting, and the
// read continues for the others up to the store's load timeout. Failed loads
// are not cached, so a later call retries the source.
func (s *Store) Load(ctx context.Context, kind ModelKind) (*Artifact, error) {
	if !kind.Valid() {
		return nil, &Error{Op: "load", Kind: kind, Err: ErrUnknownModelKind}
	}

	if a, ok := s.cached(kind); ok {
		s.hits.Add(1)
		s.observeCache(true)
		return a, nil
	}
	s.misses.Add(1)
	s.observeCache(false)

	readCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(string(kind), func() (interface{}, error) {
		gen := s.generation(kind)
		// Another flight may have finished between the cache check and here.
		if a, ok := s.cached(kind); ok {
			return a, nil
		}
		rctx, cancel := context.WithTimeout(readCtx, s.loadTimeout)
		defer cancel()
		return s.readSource(rctx, kind, gen)
	})

	select {
	case <-ctx.Done():
		return nil, &Error{Op: "load", Kind: kind, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, &Error{Op: "load", Kind: kind, Err: res.Err}
		}
		return res.Val.(*Artifact), nil
	}
}

// readSource reads kind from the source and caches it unless kind was
// invalidated after generation gen began.
func (s *Store) readSource(ctx context.Context, kind ModelKind, gen uint64) (*Artifact, error) {
	start := time.Now()
	s.sources.Add(1)

	a, err := s.source.Open(ctx, kind)
	if err == nil && a == nil {
		err = fmt.Errorf("%w: source returned no artifact", ErrInvalidArtifact)
	}

	duration := time.Since(start)
	if s.onLoad != nil {
		s.onLoad(kind, duration, err)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind.String()).Msg("artifact load failed")
		return nil, err
	}

	s.mu.Lock()
	current := s.gen[kind] == gen
	if current {
		s.loaded[kind] = a
	}
	s.mu.Unlock()

	if !current {
		s.logger.Info().Str("kind", kind.String()).Msg("artifact invalidated during load, not cached")
		return a, nil
	}

	s.logger.Info().
		Str("kind", kind.String()).
		Int("users", a.UserCount()).
		Int("items", a.ItemCount()).
		Int("dim", a.Dim()).
		Dur("duration", duration).
		Msg("artifact loaded")

	return a, nil
}

func (s *Store) generation(kind ModelKind) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen[kind]
}

func (s *Store) observeCache(hit bool) {
	if s.onCache != nil {
		s.onCache(hit)
	}
}

func (s *Store) cached(kind ModelKind) (*Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.loaded[kind]
	return a, ok
}

// Preload loads every given kind concurrently.
// All kinds are attempted; the returned error joins every failure.
func (s *Store) Preload(ctx context.Context, kinds ...ModelKind) error {
	errs := make([]error, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			_, errs[i] = s.Load(ctx, kind)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines report through errs

	return errors.Join(errs...)
}

// Loaded reports whether kind is currently cached.
func (s *Store) Loaded(kind ModelKind) bool {
	_, ok := s.cached(kind)
	return ok
}

// Invalidate drops the cached artifact for kind so the next Load rereads it.
// A read already in flight still answers its waiters but is not cached.
func (s *Store) Invalidate(kind ModelKind) {
	s.mu.Lock()
	s.gen[kind]++
	delete(s.loaded, kind)
	s.mu.Unlock()
	s.group.Forget(string(kind))
}

// StoreStats summarizes cache behavior.
type StoreStats struct {
	Hits        int64
	Misses      int64
	SourceReads int64
}

// Stats returns cache counters since the store was created.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		SourceReads: s.sources.Load(),
	}
}
