// Package memory implements the entity store as mutex-guarded in-memory
// collections with secondary indices for every keyed lookup (email, tracking
// number, SKU, customer number). The store exclusively owns entity memory:
// records are cloned on the way in and out, so callers never alias stored
// state. Durability is deliberately absent; Snapshot/Restore is the seam a
// real backing store plugs into.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// DefaultPageLimit applies when a list request carries no limit.
const DefaultPageLimit = 50

// Store holds all five entity collections behind one RWMutex.
type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User
	byEmail      map[string]string // lower(email) -> user id
	byCustomerNo map[string]string

	shipments  map[string]*domain.Shipment
	byTracking map[string]string

	inventory map[string]*domain.InventoryItem
	bySKU     map[string]string

	manifests map[string]*domain.Manifest

	statusUpdates []*domain.StatusUpdate

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		byEmail:      make(map[string]string),
		byCustomerNo: make(map[string]string),
		shipments:    make(map[string]*domain.Shipment),
		byTracking:   make(map[string]string),
		inventory:    make(map[string]*domain.InventoryItem),
		bySKU:        make(map[string]string),
		manifests:    make(map[string]*domain.Manifest),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot copies the whole store for persistence.
func (s *Store) Snapshot() *ports.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &ports.Snapshot{SavedAt: s.now()}
	for _, u := range s.users {
		snap.Users = append(snap.Users, cloneUser(u))
	}
	for _, sh := range s.shipments {
		snap.Shipments = append(snap.Shipments, cloneShipment(sh))
	}
	for _, it := range s.inventory {
		snap.Inventory = append(snap.Inventory, cloneItem(it))
	}
	for _, m := range s.manifests {
		snap.Manifests = append(snap.Manifests, cloneManifest(m))
	}
	for _, su := range s.statusUpdates {
		c := *su
		snap.StatusUpdates = append(snap.StatusUpdates, &c)
	}
	return snap
}

// Restore replaces the store's contents with a snapshot and rebuilds all
// secondary indices.
func (s *Store) Restore(snap *ports.Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*domain.User, len(snap.Users))
	s.byEmail = make(map[string]string, len(snap.Users))
	s.byCustomerNo = make(map[string]string, len(snap.Users))
	for _, u := range snap.Users {
		c := cloneUser(u)
		s.users[c.ID] = c
		s.byEmail[strings.ToLower(c.Email)] = c.ID
		s.byCustomerNo[c.CustomerNumber] = c.ID
	}

	s.shipments = make(map[string]*domain.Shipment, len(snap.Shipments))
	s.byTracking = make(map[string]string, len(snap.Shipments))
	for _, sh := range snap.Shipments {
		c := cloneShipment(sh)
		s.shipments[c.ID] = c
		s.byTracking[c.TrackingNumber] = c.ID
	}

	s.inventory = make(map[string]*domain.InventoryItem, len(snap.Inventory))
	s.bySKU = make(map[string]string, len(snap.Inventory))
	for _, it := range snap.Inventory {
		c := cloneItem(it)
		s.inventory[c.ID] = c
		s.bySKU[c.SKU] = c.ID
	}

	s.manifests = make(map[string]*domain.Manifest, len(snap.Manifests))
	for _, m := range snap.Manifests {
		c := cloneManifest(m)
		s.manifests[c.ID] = c
	}

	s.statusUpdates = make([]*domain.StatusUpdate, 0, len(snap.StatusUpdates))
	for _, su := range snap.StatusUpdates {
		c := *su
		s.statusUpdates = append(s.statusUpdates, &c)
	}
}

// customerNumberTaken must be called with the lock held.
func (s *Store) customerNumberTaken(candidate string) bool {
	_, ok := s.byCustomerNo[candidate]
	return ok
}

// nextCustomerNumber must be called with the lock held.
func (s *Store) nextCustomerNumber() string {
	return idgen.CustomerNumber(len(s.users), s.customerNumberTaken)
}

// clampPage normalizes pagination input. A zero limit falls back to the
// default page size; a negative limit means "no limit".
func clampPage(p ports.Page) ports.Page {
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// paginate slices the window [offset, offset+limit) out of n elements,
// returning start and end indices.
func paginate(n int, p ports.Page) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := n
	if p.Limit >= 0 {
		end = start + p.Limit
		if end > n {
			end = n
		}
	}
	return start, end
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneShipment(sh *domain.Shipment) *domain.Shipment {
	c := *sh
	c.StatusHistory = append([]domain.StatusHistoryEntry(nil), sh.StatusHistory...)
	c.Package.Contents = append([]string(nil), sh.Package.Contents...)
	return &c
}

func cloneItem(it *domain.InventoryItem) *domain.InventoryItem {
	c := *it
	return &c
}

func cloneManifest(m *domain.Manifest) *domain.Manifest {
	c := *m
	c.ShipmentIDs = append([]string(nil), m.ShipmentIDs...)
	return &c
}
