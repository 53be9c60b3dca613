// Package inventory holds the record store: the ordered list of inventory
// items, its pure state transitions, and the derived views computed from it.
package inventory

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/search"
	"github.com/arthur-debert/toran/types"
)

// ErrConfirmationRequired is returned when Delete is called without a Confirmer
var ErrConfirmationRequired = errors.New("delete requires a confirmation step")

// Confirmer asks the user a yes/no question before a destructive action
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Store owns the item list and persists the whole list after every mutation
type Store struct {
	kv          storage.KV
	lockManager *storage.LockManager
	logger      *zap.Logger
	seed        func() []types.Item

	items []types.Item
}

// Option is a function that modifies Store configuration
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithSeed replaces the demo records written when no snapshot exists
func WithSeed(seed func() []types.Item) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// Open loads the snapshot from kv. When no snapshot exists the seed records
// are used and persisted immediately. A snapshot that cannot be decoded does
// not fail the open: it is logged and the store starts empty, leaving the
// stored value in place until the next mutation overwrites it.
func Open(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:          kv,
		lockManager: storage.NewLockManager(),
		logger:      zap.NewNop(),
		seed:        types.SeedItems,
	}
	for _, opt := range opts {
		opt(s)
	}

	err := s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.load()
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the snapshot. Caller must hold the write lock.
func (s *Store) load() error {
	raw, found, err := s.kv.Get(types.InventoryKey)
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}

	if !found {
		s.logger.Info("no inventory snapshot, writing seed data")
		seeded := s.seed()
		if err := s.persist(seeded); err != nil {
			return err
		}
		s.items = seeded
		return nil
	}

	items, err := DecodeSnapshot([]byte(raw))
	if err != nil {
		s.logger.Warn("ignoring unreadable inventory snapshot", zap.Error(err))
		s.items = []types.Item{}
		return nil
	}
	s.items = items
	s.logger.Debug("inventory loaded", zap.Int("items", len(items)))
	return nil
}

// persist writes items as the new snapshot. Caller must hold the write lock.
func (s *Store) persist(items []types.Item) error {
	data, err := EncodeSnapshot(items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(types.InventoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// commit persists next and makes it the current state.
// Caller must hold the write lock.
func (s *Store) commit(op string, next []types.Item) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.items = next
	s.logger.Debug("inventory saved", zap.String("op", op), zap.Int("items", len(next)))
	return nil
}

// Save re-serializes the current state, overwriting the stored snapshot
func (s *Store) Save() error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.commit("save", s.items)
	})
}

// Add prepends item. See the Add reducer for the rules.
func (s *Store) Add(item types.Item) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		next, err := Add(s.items, item)
		if err != nil {
			return err
		}
		return s.commit("add", next)
	})
}

// Update replaces the item with the given SKU
func (s *Store) Update(sku string, item types.Item) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		next, err := Update(s.items, sku, item)
		if err != nil {
			return err
		}
		return s.commit("update", next)
	})
}

// Delete removes the item with the given SKU once confirm agrees.
// It reports whether an item was removed. A missing SKU is a no-op and
// does not prompt; a declined confirmation leaves the store untouched.
func (s *Store) Delete(sku string, confirm Confirmer) (bool, error) {
	if confirm == nil {
		return false, ErrConfirmationRequired
	}
	if _, found := s.Get(sku); !found {
		return false, nil
	}

	ok, err := confirm.Confirm("Delete " + sku + "?")
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		s.logger.Debug("delete declined", zap.String("sku", sku))
		return false, nil
	}

	removed := false
	err = s.lockManager.Execute(storage.WriteOperation, func() error {
		next := Delete(s.items, sku)
		if len(next) == len(s.items) {
			// Removed by someone else while the prompt was open
			return nil
		}
		removed = true
		return s.commit("delete", next)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Items returns a copy of the current item list in display order
func (s *Store) Items() []types.Item {
	var items []types.Item
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		items = types.CloneItems(s.items)
		return nil
	})
	return items
}

// Get returns the item with the given SKU
func (s *Store) Get(sku string) (types.Item, bool) {
	var (
		item  types.Item
		found bool
	)
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		item, found = Find(s.items, sku)
		return nil
	})
	return item, found
}

// Filter returns the visible subset for query and category
func (s *Store) Filter(query string, category types.Category) []types.Item {
	return search.Filter(s.Items(), query, category)
}

// Stats computes the summary metrics over every item
func (s *Store) Stats() Stats {
	return ComputeStats(s.Items())
}

// Close closes the underlying storage
func (s *Store) Close() error {
	return s.kv.Close()
}
