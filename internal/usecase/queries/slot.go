// Package queries holds the read side: projections over the slot store
// with no mutation and no caching. Availability reads always hit the
// store, since a stale "available" would funnel callers into conflicts.
package queries

import (
	"context"
	"time"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/pkg/errs"
	"cridaa-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/queries/slot.go -package=queriesmock

// SlotView is the read model returned to the API layer.
type SlotView struct {
	ID       uuid.UUID       `json:"id"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Court    string          `json:"court"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration"`
	Status   string          `json:"status"`
	OwnerID  *uuid.UUID      `json:"ownerId,omitempty"`
	BookedAt *time.Time      `json:"bookedAt,omitempty"`
}

// SlotReader is the read subset of the slot store contract.
type SlotReader interface {
	ListAvailable(ctx context.Context) ([]slot.Slot, error)
	ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]slot.Slot, error)
}

type SlotQueries interface {
	ListAvailable(ctx context.Context) ([]SlotView, error)
	ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]SlotView, error)
}

type slotQueriesImpl struct {
	reader SlotReader
}

func NewSlotQueries(reader SlotReader) SlotQueries {
	return &slotQueriesImpl{reader: reader}
}

func (q *slotQueriesImpl) ListAvailable(ctx context.Context) ([]SlotView, error) {
	slots, err := q.reader.ListAvailable(ctx)
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrStoreUnavailable)
	}
	return viewsOf(slots), nil
}

func (q *slotQueriesImpl) ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]SlotView, error) {
	slots, err := q.reader.ListOwnedBy(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrStoreUnavailable)
	}
	return viewsOf(slots), nil
}

func FromSlot(sl *slot.Slot) *SlotView {
	return &SlotView{
		ID:       sl.ID,
		Date:     sl.Date,
		Time:     sl.Time,
		Court:    sl.Court,
		Price:    sl.Price,
		Duration: sl.Duration,
		Status:   sl.Status.String(),
		OwnerID:  sl.OwnerID,
		BookedAt: sl.BookedAt,
	}
}

func viewsOf(slots []slot.Slot) []SlotView {
	views := make([]SlotView, len(slots))
	for i := range slots {
		views[i] = *FromSlot(&slots[i])
	}
	return views
}
