// Package slot holds the bookable-slot entity and its two-state booking
// machine. A slot is either available or booked by exactly one user; the
// owner and booked-at timestamp are set if and only if the slot is booked.
package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate     = errors.New("invalid slot date, expected YYYY-MM-DD")
	ErrInvalidTime     = errors.New("invalid slot time, expected HH:MM")
	ErrEmptyCourt      = errors.New("court is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrAlreadyBooked   = errors.New("slot is already booked")
	ErrNotBooked       = errors.New("slot is not booked")
	ErrBookingState    = errors.New("inconsistent booking state")
	ErrInvalidDuration = errors.New("duration is required")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Slot struct {
	ID       uuid.UUID       `json:"id"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Court    string          `json:"court"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration"`
	Status   Status          `json:"status"`
	OwnerID  *uuid.UUID      `json:"ownerId,omitempty"`
	BookedAt *time.Time      `json:"bookedAt,omitempty"`
}

// New builds an available slot, validating the calendar fields. Date and
// time are kept as zero-padded strings so that lexicographic order matches
// temporal order.
func New(date, timeOfDay, court string, price decimal.Decimal, duration string) (*Slot, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return nil, ErrInvalidTime
	}
	if court == "" {
		return nil, ErrEmptyCourt
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if duration == "" {
		return nil, ErrInvalidDuration
	}

	return &Slot{
		ID:       uuid.New(),
		Date:     date,
		Time:     timeOfDay,
		Court:    court,
		Price:    price,
		Duration: duration,
		Status:   StatusAvailable,
	}, nil
}

func (s *Slot) IsAvailable() bool {
	return s.Status == StatusAvailable
}

func (s *Slot) IsBooked() bool {
	return s.Status == StatusBooked
}

func (s *Slot) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// MarkBooked transitions available -> booked. Callers that need atomicity
// must apply it through the store's conditional transition.
func (s *Slot) MarkBooked(userID uuid.UUID, now time.Time) error {
	if s.Status != StatusAvailable {
		return ErrAlreadyBooked
	}
	owner := userID
	bookedAt := now

	s.Status = StatusBooked
	s.OwnerID = &owner
	s.BookedAt = &bookedAt
	return nil
}

// MarkAvailable transitions booked -> available, clearing ownership.
func (s *Slot) MarkAvailable() error {
	if s.Status != StatusBooked {
		return ErrNotBooked
	}
	s.Status = StatusAvailable
	s.OwnerID = nil
	s.BookedAt = nil
	return nil
}

// CheckConsistent verifies the core invariant: owner and booked-at are
// both present exactly when the slot is booked.
func (s *Slot) CheckConsistent() error {
	switch s.Status {
	case StatusBooked:
		if s.OwnerID == nil || s.BookedAt == nil {
			return ErrBookingState
		}
	case StatusAvailable:
		if s.OwnerID != nil || s.BookedAt != nil {
			return ErrBookingState
		}
	default:
		return ErrBookingState
	}
	return nil
}

// Before orders slots by date then time of day.
func (s *Slot) Before(other *Slot) bool {
	if s.Date != other.Date {
		return s.Date < other.Date
	}
	return s.Time < other.Time
}
