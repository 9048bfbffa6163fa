package parking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParkingSession records one vehicle's stay from entry to exit. It owns its
// lifecycle (ENTERED -> PARKED -> EXITED) and references its vehicle and
// spot without owning them. After exit it is an immutable historical record.
type ParkingSession struct {
	id         uuid.UUID
	vehicle    Vehicle
	spot       *Spot
	entryTime  time.Time
	parkedTime time.Time
	exitTime   time.Time
	entryPrice Money
	finalPrice *Money
	status     SessionStatus
}

func NewParkingSession(vehicle Vehicle, entryTime time.Time, entryPrice Money) (*ParkingSession, error) {
	if vehicle.LicensePlate() == "" {
		return nil, invalidArgf("parking session requires a vehicle")
	}
	if entryTime.IsZero() {
		return nil, invalidArgf("parking session requires an entry time")
	}
	if entryPrice.Currency() == "" {
		return nil, invalidArgf("parking session requires an entry price")
	}
	return &ParkingSession{
		id:         uuid.New(),
		vehicle:    vehicle,
		entryTime:  entryTime,
		entryPrice: entryPrice,
		status:     StatusEntered,
	}, nil
}

func (ps *ParkingSession) ID() uuid.UUID         { return ps.id }
func (ps *ParkingSession) Vehicle() Vehicle      { return ps.vehicle }
func (ps *ParkingSession) Spot() *Spot           { return ps.spot }
func (ps *ParkingSession) EntryTime() time.Time  { return ps.entryTime }
func (ps *ParkingSession) ParkedTime() time.Time { return ps.parkedTime }
func (ps *ParkingSession) ExitTime() time.Time   { return ps.exitTime }
func (ps *ParkingSession) EntryPrice() Money     { return ps.entryPrice }
func (ps *ParkingSession) Status() SessionStatus { return ps.status }

func (ps *ParkingSession) FinalPrice() (Money, bool) {
	if ps.finalPrice == nil {
		return Money{}, false
	}
	return *ps.finalPrice, true
}

func (ps *ParkingSession) IsActive() bool {
	return ps.status == StatusEntered || ps.status == StatusParked
}

// ParkAtSpot assigns the spot and transitions to PARKED. The spot is
// occupied before the session mutates, so an occupancy failure leaves the
// session in its previous state.
func (ps *ParkingSession) ParkAtSpot(spot *Spot, parkedTime time.Time) error {
	if spot == nil {
		return invalidArgf("park requires a spot")
	}
	if parkedTime.IsZero() {
		return invalidArgf("park requires a parked time")
	}
	if ps.status != StatusEntered {
		return invalidArgf("session %s cannot park from status %s", ps.id, ps.status)
	}
	if parkedTime.Before(ps.entryTime) {
		return invalidArgf("parked time %s precedes entry time %s", parkedTime, ps.entryTime)
	}
	if err := spot.Occupy(); err != nil {
		return err
	}
	ps.spot = spot
	ps.parkedTime = parkedTime
	ps.status = StatusParked
	return nil
}

// Exit transitions to EXITED, vacates the spot if one was assigned, and
// freezes the final price. The price is computed once here and never
// recomputed.
func (ps *ParkingSession) Exit(exitTime time.Time) error {
	if exitTime.IsZero() {
		return invalidArgf("exit requires an exit time")
	}
	if !ps.IsActive() {
		return invalidArgf("session %s is not active", ps.id)
	}
	if exitTime.Before(ps.entryTime) {
		return invalidArgf("exit time %s precedes entry time %s", exitTime, ps.entryTime)
	}
	if ps.spot != nil {
		if err := ps.spot.Vacate(); err != nil {
			return err
		}
	}
	ps.exitTime = exitTime
	ps.status = StatusExited

	final, err := ps.priceAt(exitTime)
	if err != nil {
		return err
	}
	ps.finalPrice = &final
	return nil
}

// ParkedDurationMinutes is zero when the session never parked; otherwise
// the minutes between the parked time and the exit time, or now while the
// session is still active.
func (ps *ParkingSession) ParkedDurationMinutes(now time.Time) int64 {
	if ps.parkedTime.IsZero() {
		return 0
	}
	return int64(ps.endTime(now).Sub(ps.parkedTime).Minutes())
}

// TotalDurationMinutes measures from the parked time, not the entry time;
// the name is kept for continuity with the billing contract.
func (ps *ParkingSession) TotalDurationMinutes(now time.Time) int64 {
	if ps.parkedTime.IsZero() {
		return 0
	}
	return int64(ps.endTime(now).Sub(ps.parkedTime).Minutes())
}

func (ps *ParkingSession) endTime(now time.Time) time.Time {
	if !ps.exitTime.IsZero() {
		return ps.exitTime
	}
	return now
}

// CurrentPrice returns the frozen final price once the session has exited,
// or the running charge of entryPrice per started hour while it is active.
func (ps *ParkingSession) CurrentPrice(now time.Time) (Money, error) {
	if ps.status == StatusExited && ps.finalPrice != nil {
		return *ps.finalPrice, nil
	}
	return ps.priceAt(now)
}

func (ps *ParkingSession) priceAt(now time.Time) (Money, error) {
	minutes := ps.TotalDurationMinutes(now)
	if minutes <= 0 {
		return ps.entryPrice, nil
	}
	hours := (minutes + 59) / 60
	return ps.entryPrice.Multiply(decimal.NewFromInt(hours))
}
