package parking

import (
	"math"

	"github.com/google/uuid"
)

const earthRadiusMeters = 6371000.0

// Spot is a single physical parking location inside a sector. It holds a
// reference to its owning sector and delegates all occupancy-count changes
// to it; the occupied flag is true iff a session currently holds the spot.
type Spot struct {
	id          uuid.UUID
	coordinates Coordinates
	sector      *Sector
	occupied    bool
}

func NewSpot(coordinates Coordinates, sector *Sector) (*Spot, error) {
	if sector == nil {
		return nil, invalidArgf("spot requires a sector")
	}
	return &Spot{
		id:          uuid.New(),
		coordinates: coordinates,
		sector:      sector,
		occupied:    false,
	}, nil
}

func (s *Spot) ID() uuid.UUID            { return s.id }
func (s *Spot) Coordinates() Coordinates { return s.coordinates }
func (s *Spot) Sector() *Sector          { return s.sector }
func (s *Spot) IsOccupied() bool         { return s.occupied }

func (s *Spot) IsAvailable() bool {
	return !s.occupied && s.sector.CanAcceptVehicle()
}

// Occupy marks the spot taken and increments the sector occupancy. All
// checks precede any mutation, so a failure leaves both the spot and the
// sector untouched.
func (s *Spot) Occupy() error {
	if s.occupied {
		return invalidArgf("spot %s is already occupied", s.id)
	}
	if !s.sector.CanAcceptVehicle() {
		return invalidArgf("sector %s cannot accept vehicles", s.sector.ID())
	}
	if err := s.sector.IncrementOccupancy(); err != nil {
		return err
	}
	s.occupied = true
	return nil
}

func (s *Spot) Vacate() error {
	if !s.occupied {
		return invalidArgf("spot %s is not occupied", s.id)
	}
	if err := s.sector.DecrementOccupancy(); err != nil {
		return err
	}
	s.occupied = false
	return nil
}

// DistanceTo returns the great-circle distance to the other spot in meters.
func (s *Spot) DistanceTo(other *Spot) (float64, error) {
	if other == nil {
		return 0, invalidArgf("cannot compute distance to a nil spot")
	}
	return haversineMeters(s.coordinates, other.coordinates), nil
}

// IsInSameSector compares sector identity, not structure.
func (s *Spot) IsInSameSector(other *Spot) bool {
	if other == nil {
		return false
	}
	return s.sector.ID() == other.sector.ID()
}

func (s *Spot) IsNearLocation(location Coordinates, radiusMeters float64) bool {
	return haversineMeters(s.coordinates, location) <= radiusMeters
}

func haversineMeters(from, to Coordinates) float64 {
	lat1 := from.Latitude() * math.Pi / 180
	lat2 := to.Latitude() * math.Pi / 180
	dLat := (to.Latitude() - from.Latitude()) * math.Pi / 180
	dLon := (to.Longitude() - from.Longitude()) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
