package parking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxDurationLimitMinutes = 1440

var (
	tenPercent        = decimal.NewFromInt(10)
	twentyFivePercent = decimal.NewFromInt(25)
)

// Sector is a priced, capacity-bounded zone of spots. It owns the occupancy
// count and the open flag; both change only through IncrementOccupancy and
// DecrementOccupancy, which are called exclusively by Spot occupy/vacate.
type Sector struct {
	id                   string
	basePrice            Money
	maxCapacity          int
	openHour             string
	closeHour            string
	durationLimitMinutes int
	currentOccupancy     int
	open                 bool
}

func NewSector(id string, basePrice Money, maxCapacity int, openHour, closeHour string, durationLimitMinutes int) (*Sector, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, invalidArgf("sector id must not be empty")
	}
	if basePrice.Currency() == "" {
		return nil, invalidArgf("sector %s requires a base price", id)
	}
	if maxCapacity < 1 {
		return nil, invalidArgf("sector %s max capacity must be at least 1, got %d", id, maxCapacity)
	}
	if err := validateWallClock(openHour); err != nil {
		return nil, invalidArgf("sector %s open hour: %v", id, err)
	}
	if err := validateWallClock(closeHour); err != nil {
		return nil, invalidArgf("sector %s close hour: %v", id, err)
	}
	if durationLimitMinutes < 1 || durationLimitMinutes > maxDurationLimitMinutes {
		return nil, invalidArgf("sector %s duration limit must be between 1 and %d minutes, got %d",
			id, maxDurationLimitMinutes, durationLimitMinutes)
	}

	return &Sector{
		id:                   id,
		basePrice:            basePrice,
		maxCapacity:          maxCapacity,
		openHour:             openHour,
		closeHour:            closeHour,
		durationLimitMinutes: durationLimitMinutes,
		currentOccupancy:     0,
		open:                 true,
	}, nil
}

func validateWallClock(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return invalidArgf("%q is not a valid HH:MM wall-clock time", value)
	}
	return nil
}

func (s *Sector) ID() string                { return s.id }
func (s *Sector) BasePrice() Money          { return s.basePrice }
func (s *Sector) MaxCapacity() int          { return s.maxCapacity }
func (s *Sector) OpenHour() string          { return s.openHour }
func (s *Sector) CloseHour() string         { return s.closeHour }
func (s *Sector) DurationLimitMinutes() int { return s.durationLimitMinutes }
func (s *Sector) CurrentOccupancy() int     { return s.currentOccupancy }
func (s *Sector) IsOpen() bool              { return s.open }

func (s *Sector) OccupancyPercentage() float64 {
	if s.maxCapacity == 0 {
		return 0
	}
	return float64(s.currentOccupancy) / float64(s.maxCapacity) * 100
}

func (s *Sector) IsFull() bool {
	return s.currentOccupancy >= s.maxCapacity
}

func (s *Sector) CanAcceptVehicle() bool {
	return s.open && !s.IsFull()
}

// IncrementOccupancy adds one occupant and closes the sector when it
// becomes full.
func (s *Sector) IncrementOccupancy() error {
	if s.IsFull() {
		return invalidArgf("sector %s is already at max capacity %d", s.id, s.maxCapacity)
	}
	s.currentOccupancy++
	if s.IsFull() {
		s.open = false
	}
	return nil
}

// DecrementOccupancy removes one occupant and reopens the sector when it is
// no longer full.
func (s *Sector) DecrementOccupancy() error {
	if s.currentOccupancy <= 0 {
		return invalidArgf("sector %s occupancy is already zero", s.id)
	}
	s.currentOccupancy--
	if !s.open && !s.IsFull() {
		s.open = true
	}
	return nil
}

// DynamicPrice adjusts the base price by the occupancy tier:
// below 25% a 10% discount, below 50% the base price, below 75% a 10%
// increase, from 75% up a 25% increase. Lower bounds are inclusive, upper
// bounds exclusive.
func (s *Sector) DynamicPrice() (Money, error) {
	pct := s.OccupancyPercentage()
	switch {
	case pct < 25:
		return s.basePrice.ApplyDiscount(tenPercent)
	case pct < 50:
		return s.basePrice, nil
	case pct < 75:
		return s.basePrice.ApplyIncrease(tenPercent)
	default:
		return s.basePrice.ApplyIncrease(twentyFivePercent)
	}
}
