package badger

import "github.com/poiesic/auctionlens/storage"

// NewMemoryMatchCache creates an in-memory match cache for testing.
// Closing the cache releases the in-memory database.
func NewMemoryMatchCache(opts ...Option) (storage.MatchCache, error) {
	backend, err := OpenBackend("", true, nil)
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
