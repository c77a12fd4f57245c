package catalog

import (
	"sync/atomic"

	"wastenot/internal/monitoring"
)

// Store holds the shared catalog reference. The catalog itself is immutable;
// a reload builds a brand-new Catalog and swaps the pointer, so in-flight
// requests keep reading the snapshot they started with.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving the given catalog
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.Swap(c)
	return s
}

// Current returns the active catalog snapshot
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap atomically replaces the active catalog
func (s *Store) Swap(c *Catalog) {
	s.current.Store(c)
	monitoring.SetCatalogSize(c.Size())
}

// Reload builds a fresh catalog from the source path and swaps it in. On
// failure the previous catalog stays active.
func (s *Store) Reload(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	s.Swap(c)
	return nil
}
