package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/geotreasure/internal/concurrency"
	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
)

// Guard inspects an undiscovered item under its lock. A non-nil error
// aborts the claim and leaves the item untouched.
type Guard func(item domain.Item) error

type entry struct {
	lock *concurrency.Lock
	item domain.Item
}

// Registry owns the treasure catalogue. Every entry carries its own FIFO
// lock so claims on unrelated items never contend.
type Registry struct {
	adminID string
	clock   clockwork.Clock
	entries sync.Map // item id -> *entry
	size    atomic.Int64
}

// New creates an empty registry. adminID is the only caller allowed to register items.
func New(adminID string, clock clockwork.Clock) *Registry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Registry{
		adminID: adminID,
		clock:   clock,
	}
}

// Register adds a new undiscovered item to the catalogue
func (r *Registry) Register(ctx context.Context, caller string, item domain.Item) (domain.Item, error) {
	log := logger.FromContext(ctx)

	if r.adminID == "" || caller != r.adminID {
		log.Warn(LogMsgRegisterDenied, "caller", caller, "item_id", item.ID)
		return domain.Item{}, fmt.Errorf("%w: %s may not register items", domain.ErrNotAuthorized, caller)
	}

	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}

	item.Discovered = false
	item.DiscoveredBy = ""
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.clock.Now().UTC()
	}

	if _, loaded := r.entries.LoadOrStore(item.ID, &entry{lock: concurrency.NewLock(), item: item}); loaded {
		log.Warn(LogMsgRegisterDuplicate, "item_id", item.ID)
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.ID)
	}
	r.size.Add(1)

	log.Info(LogMsgItemRegistered,
		"item_id", item.ID,
		"rarity", item.Rarity.String(),
		"required_rank", item.RequiredRank.String(),
		"reward_points", item.RewardPoints)

	return item, nil
}

// Lookup returns a snapshot of the item
func (r *Registry) Lookup(itemID string) (domain.Item, error) {
	e, err := r.get(itemID)
	if err != nil {
		return domain.Item{}, err
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.item, nil
}

// MarkDiscovered flips the discovery flag without any further checks
func (r *Registry) MarkDiscovered(itemID string) error {
	_, err := r.Claim(itemID, "", nil)
	return err
}

// Claim is the single commit point of a discovery. Under the item's lock it
// rejects already-discovered items, runs guard, and on success flips the
// flag and records the finder. Exactly one caller can ever succeed per item.
func (r *Registry) Claim(itemID, finder string, guard Guard) (domain.Item, error) {
	e, err := r.get(itemID)
	if err != nil {
		return domain.Item{}, err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	if e.item.Discovered {
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrAlreadyDiscovered, itemID)
	}
	if guard != nil {
		if err := guard(e.item); err != nil {
			return domain.Item{}, err
		}
	}

	e.item.Discovered = true
	e.item.DiscoveredBy = finder
	return e.item, nil
}

// Unregister removes an undiscovered item. It backs out a registration whose
// persistence failed; discovered items are never removed.
func (r *Registry) Unregister(itemID string) error {
	e, err := r.get(itemID)
	if err != nil {
		return err
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.item.Discovered {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyDiscovered, itemID)
	}
	if r.entries.CompareAndDelete(itemID, e) {
		r.size.Add(-1)
	}
	return nil
}

// List returns a snapshot of every item ordered by id
func (r *Registry) List() []domain.Item {
	items := make([]domain.Item, 0, r.Len())
	r.entries.Range(func(_, value any) bool {
		e := value.(*entry)
		e.lock.Lock()
		items = append(items, e.item)
		e.lock.Unlock()
		return true
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Len returns the number of registered items
func (r *Registry) Len() int {
	return int(r.size.Load())
}

// Restore loads previously persisted items, keeping their discovery state.
// Ids already present are left alone. Returns the number of items added.
func (r *Registry) Restore(ctx context.Context, items []domain.Item) int {
	log := logger.FromContext(ctx)
	added := 0
	for _, item := range items {
		if err := validateItem(item); err != nil {
			log.Warn(LogMsgRestoreSkipInvalid, "item_id", item.ID, "error", err)
			continue
		}
		if _, loaded := r.entries.LoadOrStore(item.ID, &entry{lock: concurrency.NewLock(), item: item}); !loaded {
			r.size.Add(1)
			added++
		}
	}
	log.Info(LogMsgRegistryRestored, "items", added)
	return added
}

func (r *Registry) get(itemID string) (*entry, error) {
	value, ok := r.entries.Load(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}
	return value.(*entry), nil
}

func validateItem(item domain.Item) error {
	switch {
	case strings.TrimSpace(item.ID) == "":
		return fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	case len(item.ID) > MaxItemIDLength:
		return fmt.Errorf("%w: item id longer than %d", domain.ErrInvalidInput, MaxItemIDLength)
	case len(item.Name) > MaxNameLength:
		return fmt.Errorf("%w: name longer than %d", domain.ErrInvalidInput, MaxNameLength)
	case item.LocationRef == "":
		return fmt.Errorf("%w: location reference is required", domain.ErrInvalidInput)
	case len(item.LocationRef) > MaxLocationLength:
		return fmt.Errorf("%w: location reference longer than %d", domain.ErrInvalidInput, MaxLocationLength)
	case item.RewardPoints < 0:
		return fmt.Errorf("%w: reward points must not be negative", domain.ErrInvalidInput)
	case !item.Rarity.Valid():
		return fmt.Errorf("%w: unknown rarity %d", domain.ErrInvalidInput, item.Rarity)
	case !item.RequiredRank.Valid():
		return fmt.Errorf("%w: unknown rank %d", domain.ErrInvalidInput, item.RequiredRank)
	}
	return nil
}
