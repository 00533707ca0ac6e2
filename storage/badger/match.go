package badger

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/storage"
)

// MatchCache implements storage.MatchCache for BadgerDB.
type MatchCache struct {
	backend     *Backend
	ownsBackend bool
	namespace   core.ID
	closed      atomic.Bool
	logger      *slog.Logger
}

var _ storage.MatchCache = (*MatchCache)(nil)

// Option configures a MatchCache.
type Option func(*MatchCache) error

// WithNamespace binds the cache to a namespace, normally a taxonomy
// fingerprint. Default is namespace 0.
func WithNamespace(namespace core.ID) Option {
	return func(c *MatchCache) error {
		c.namespace = namespace
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *MatchCache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewMatchCache creates a match cache on an existing backend. The caller keeps
// ownership of backend. Entries left behind by other namespaces are dropped.
func NewMatchCache(backend *Backend, opts ...Option) (storage.MatchCache, error) {
	return newMatchCache(backend, false, opts...)
}

// OpenMatchCache opens a match cache stored in dir. Closing the cache closes
// the underlying database.
func OpenMatchCache(dir string, opts ...Option) (storage.MatchCache, error) {
	backend, err := OpenBackend(dir, false, nil)
	if err != nil {
		return nil, err
	}
	cache, err := newMatchCache(backend, true, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return cache, nil
}

func newMatchCache(backend *Backend, owns bool, opts ...Option) (*MatchCache, error) {
	c := &MatchCache{
		backend:     backend,
		ownsBackend: owns,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.claimNamespace(); err != nil {
		return nil, err
	}
	return c, nil
}

// claimNamespace records the active namespace, dropping stale entries when
// it differs from the one stored.
func (c *MatchCache) claimNamespace() error {
	var stored core.ID
	found := false
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(matchNamespaceKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			stored, err = storage.UnmarshalID(val)
			found = err == nil
			return err
		})
	}, false)
	if err != nil {
		return err
	}
	if found && stored == c.namespace {
		return nil
	}

	if found {
		c.logger.Info("match cache namespace changed, dropping stale entries",
			"previous", stored, "current", c.namespace)
		dropped, err := c.backend.DeletePrefix([]byte(matchPrefix))
		if err != nil {
			return err
		}
		c.logger.Debug("stale matches dropped", "count", dropped)
	}
	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(matchNamespaceKey), storage.MarshalID(c.namespace)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (c *MatchCache) check(ctx context.Context) error {
	if c.closed.Load() || c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}

// Get returns the cached match for title.
func (c *MatchCache) Get(ctx context.Context, title string) (core.Match, error) {
	if err := c.check(ctx); err != nil {
		return core.Match{}, err
	}

	var match core.Match
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMatchKey(c.namespace, core.IDFromContent(title)))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			match, err = storage.UnmarshalMatch(val)
			return err
		})
	}, false)
	return match, err
}

// Put stores the match for title.
func (c *MatchCache) Put(ctx context.Context, title string, match core.Match) error {
	if err := c.check(ctx); err != nil {
		return err
	}
	return c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMatchKey(c.namespace, core.IDFromContent(title))
		if err := tx.Set(key, storage.MarshalMatch(match)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutMany stores entries through a write batch.
func (c *MatchCache) PutMany(ctx context.Context, entries map[string]core.Match) error {
	if err := c.check(ctx); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	wb := c.backend.NewWriteBatch()
	defer wb.Cancel()
	for title, match := range entries {
		key := makeMatchKey(c.namespace, core.IDFromContent(title))
		if err := wb.Set(key, storage.MarshalMatch(match)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Count returns the number of entries in the current namespace.
func (c *MatchCache) Count(ctx context.Context) (int, error) {
	if err := c.check(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeMatchNamespacePrefix(c.namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Clear removes every entry in the current namespace.
func (c *MatchCache) Clear(ctx context.Context) error {
	if err := c.check(ctx); err != nil {
		return err
	}
	_, err := c.backend.DeletePrefix(makeMatchNamespacePrefix(c.namespace))
	return err
}

// Close marks the cache closed and, when the cache opened its own database,
// closes it. Closing twice is a no-op.
func (c *MatchCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.ownsBackend {
		return c.backend.Close()
	}
	return nil
}
