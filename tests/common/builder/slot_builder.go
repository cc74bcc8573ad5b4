//go:build unit || e2e

package builder

import (
	"time"

	"cridaa-booking/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SlotBuilder struct {
	Date     string
	Time     string
	Court    string
	Price    decimal.Decimal
	Duration string
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		Date:     "2026-09-01",
		Time:     "06:00",
		Court:    "Court 1",
		Price:    decimal.NewFromInt(1000),
		Duration: "1 hour",
	}
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	return slot.New(b.Date, b.Time, b.Court, b.Price, b.Duration)
}

// BuildBooked returns a slot already booked by owner.
func (b *SlotBuilder) BuildBooked(owner uuid.UUID, at time.Time) (*slot.Slot, error) {
	s, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := s.MarkBooked(owner, at); err != nil {
		return nil, err
	}
	return s, nil
}

// Fluent builder methods
func (b *SlotBuilder) WithDate(date string) *SlotBuilder {
	b.Date = date
	return b
}

func (b *SlotBuilder) WithTime(timeOfDay string) *SlotBuilder {
	b.Time = timeOfDay
	return b
}

func (b *SlotBuilder) WithCourt(court string) *SlotBuilder {
	b.Court = court
	return b
}

func (b *SlotBuilder) WithPrice(price decimal.Decimal) *SlotBuilder {
	b.Price = price
	return b
}

func (b *SlotBuilder) WithDuration(duration string) *SlotBuilder {
	b.Duration = duration
	return b
}
