package slot

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default schedule seeded into an empty store: morning and evening hours
// across three courts, court price rising with the court number.
var (
	defaultTimes = []string{
		"06:00", "07:00", "08:00", "09:00", "10:00",
		"16:00", "17:00", "18:00", "19:00", "20:00",
	}
	defaultCourts = []string{"Court 1", "Court 2", "Court 3"}
	defaultPrices = []decimal.Decimal{
		decimal.NewFromInt(1000),
		decimal.NewFromInt(1200),
		decimal.NewFromInt(1500),
	}
	defaultDuration = "1 hour"
)

// DefaultSchedule produces the seed slots for `days` consecutive days
// starting at `start`. All slots begin available.
func DefaultSchedule(start time.Time, days int) []Slot {
	if days < 1 {
		days = 1
	}

	slots := make([]Slot, 0, days*len(defaultTimes)*len(defaultCourts))
	for d := range days {
		date := start.AddDate(0, 0, d).Format(DateLayout)
		for _, t := range defaultTimes {
			for i, court := range defaultCourts {
				s, err := New(date, t, court, defaultPrices[i], defaultDuration)
				if err != nil {
					// Inputs are compile-time constants; New cannot fail here.
					continue
				}
				slots = append(slots, *s)
			}
		}
	}
	return slots
}
