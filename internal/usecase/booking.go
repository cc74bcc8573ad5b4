package usecase

import (
	"context"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/infra"
	"cridaa-booking/internal/monitoring"
	"cridaa-booking/internal/pkg/clock"
	"cridaa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../tests/mock/usecase/booking.go -package=usecasemock

var (
	ErrSlotNotFound     = errs.New("slot not found")
	ErrAlreadyBooked    = errs.New("slot already booked")
	ErrSlotNotBooked    = errs.New("slot is not booked")
	ErrNotSlotOwner     = errs.New("slot is booked by another user")
	ErrStoreUnavailable = errs.New("store unavailable")
)

// SlotStore is the persistence contract for slots. TryTransition is the
// sole mutation entry point: it applies mutate only when the slot's
// current status equals expected, atomically with respect to other
// transitions on the same id. A mutate error aborts the transition.
type SlotStore interface {
	Get(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	ListAvailable(ctx context.Context) ([]slot.Slot, error)
	ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]slot.Slot, error)
	TryTransition(ctx context.Context, id uuid.UUID, expected slot.Status, mutate func(*slot.Slot) error) (*slot.Slot, error)
	Seed(ctx context.Context, slots []slot.Slot) error
}

type BookingCommands interface {
	Book(ctx context.Context, slotID, userID uuid.UUID) (*slot.Slot, error)
	Cancel(ctx context.Context, slotID, userID uuid.UUID) (*slot.Slot, error)
}

type bookingUseCaseImpl struct {
	store   SlotStore
	clock   clock.Clock
	monitor *monitoring.Monitor
}

func NewBookingUseCase(store SlotStore, clk clock.Clock, monitor *monitoring.Monitor) BookingCommands {
	return &bookingUseCaseImpl{
		store:   store,
		clock:   clk,
		monitor: monitor,
	}
}

// Book claims an available slot for userID. Losing a race is an expected
// outcome, surfaced as ErrAlreadyBooked; callers should re-list
// availability rather than retry the same slot.
func (b *bookingUseCaseImpl) Book(ctx context.Context, slotID, userID uuid.UUID) (*slot.Slot, error) {
	now := b.clock.Now()

	booked, err := b.store.TryTransition(ctx, slotID, slot.StatusAvailable, func(s *slot.Slot) error {
		return s.MarkBooked(userID, now)
	})

	switch {
	case err == nil:
		b.monitor.TrackBooking("book", monitoring.OutcomeSuccess)
		return booked, nil
	case infra.IsKind(err, infra.KindNotFound):
		b.monitor.TrackBooking("book", monitoring.OutcomeNotFound)
		return nil, ErrSlotNotFound
	case infra.IsKind(err, infra.KindConflict):
		b.monitor.TrackBooking("book", monitoring.OutcomeConflict)
		return nil, errs.Mark(err, ErrAlreadyBooked)
	default:
		b.monitor.TrackBooking("book", monitoring.OutcomeError)
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
}

// Cancel releases a booked slot. The ownership check runs before the
// transition for accurate errors, but the transition re-verifies it: the
// store's conflict response is authoritative over the earlier read.
func (b *bookingUseCaseImpl) Cancel(ctx context.Context, slotID, userID uuid.UUID) (*slot.Slot, error) {
	current, err := b.store.Get(ctx, slotID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		b.monitor.TrackBooking("cancel", monitoring.OutcomeNotFound)
		return nil, ErrSlotNotFound
	case err != nil:
		b.monitor.TrackBooking("cancel", monitoring.OutcomeError)
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if !current.IsBooked() {
		b.monitor.TrackBooking("cancel", monitoring.OutcomeConflict)
		return nil, ErrSlotNotBooked
	}
	if !current.IsOwnedBy(userID) {
		b.monitor.TrackBooking("cancel", monitoring.OutcomeDenied)
		return nil, ErrNotSlotOwner
	}

	released, err := b.store.TryTransition(ctx, slotID, slot.StatusBooked, func(s *slot.Slot) error {
		if !s.IsOwnedBy(userID) {
			// Rebooked by someone else between the read and the transition.
			return slot.ErrNotBooked
		}
		return s.MarkAvailable()
	})

	switch {
	case err == nil:
		b.monitor.TrackBooking("cancel", monitoring.OutcomeSuccess)
		return released, nil
	case infra.IsKind(err, infra.KindNotFound):
		b.monitor.TrackBooking("cancel", monitoring.OutcomeNotFound)
		return nil, ErrSlotNotFound
	case infra.IsKind(err, infra.KindConflict):
		// The booking this caller saw no longer exists; nothing to cancel.
		b.monitor.TrackBooking("cancel", monitoring.OutcomeConflict)
		return nil, errs.Mark(err, ErrSlotNotBooked)
	default:
		b.monitor.TrackBooking("cancel", monitoring.OutcomeError)
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
}
