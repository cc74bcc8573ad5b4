// Package slotstore provides the slot persistence implementations. Every
// variant exposes the same contract: TryTransition is the sole mutation
// entry point and applies its mutation only when the slot's current
// status matches the caller's expectation, atomically per slot id.
package slotstore

import (
	"context"
	"sort"
	"sync"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/infra"

	"github.com/google/uuid"
)

// MemoryStore keeps slots in process memory with one lock per slot, so
// concurrent transitions on different slots never serialize against each
// other. It is the non-scalable baseline and the store used in tests.
type MemoryStore struct {
	mu    sync.RWMutex // guards the map structure, not slot contents
	slots map[uuid.UUID]*memoryEntry
}

type memoryEntry struct {
	mu   sync.Mutex
	slot slot.Slot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[uuid.UUID]*memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	entry, ok := s.entry(id)
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	copied := entry.slot
	return &copied, nil
}

func (s *MemoryStore) ListAvailable(_ context.Context) ([]slot.Slot, error) {
	all := s.snapshot()

	available := all[:0]
	for _, sl := range all {
		if sl.IsAvailable() {
			available = append(available, sl)
		}
	}
	sortSlots(available)
	return available, nil
}

func (s *MemoryStore) ListOwnedBy(_ context.Context, userID uuid.UUID) ([]slot.Slot, error) {
	all := s.snapshot()

	owned := all[:0]
	for _, sl := range all {
		if sl.IsBooked() && sl.IsOwnedBy(userID) {
			owned = append(owned, sl)
		}
	}
	sortSlots(owned)
	return owned, nil
}

func (s *MemoryStore) TryTransition(
	_ context.Context,
	id uuid.UUID,
	expected slot.Status,
	mutate func(*slot.Slot) error,
) (*slot.Slot, error) {
	entry, ok := s.entry(id)
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.slot.Status != expected {
		return nil, infra.WrapRepoErr(infra.KindConflict, "slot status changed", nil)
	}

	candidate := entry.slot
	if err := mutate(&candidate); err != nil {
		return nil, infra.WrapRepoErr(infra.KindConflict, "slot transition rejected", err)
	}
	if err := candidate.CheckConsistent(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "mutation broke booking invariant", err)
	}

	entry.slot = candidate
	copied := candidate
	return &copied, nil
}

func (s *MemoryStore) Seed(_ context.Context, slots []slot.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slots) > 0 {
		return nil
	}
	for _, sl := range slots {
		s.slots[sl.ID] = &memoryEntry{slot: sl}
	}
	return nil
}

func (s *MemoryStore) entry(id uuid.UUID) (*memoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.slots[id]
	return entry, ok
}

func (s *MemoryStore) snapshot() []slot.Slot {
	s.mu.RLock()
	entries := make([]*memoryEntry, 0, len(s.slots))
	for _, e := range s.slots {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	all := make([]slot.Slot, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		all = append(all, e.slot)
		e.mu.Unlock()
	}
	return all
}

func sortSlots(slots []slot.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(&slots[j])
	})
}
