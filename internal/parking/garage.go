package parking

import (
	"sort"

	"github.com/google/uuid"
)

// Garage is the in-memory registry of sectors, spots, and sessions, and the
// front door for the entry -> park -> exit flow. Calls to the same garage
// must be serialized by the caller; there is no internal locking.
type Garage struct {
	currency string
	clock    Clock
	sectors  map[string]*Sector
	spots    map[uuid.UUID]*Spot
	sessions []*ParkingSession
}

func NewGarage(currency string, clock Clock) (*Garage, error) {
	if !isCurrencyCode(currency) {
		return nil, invalidArgf("invalid garage currency %q", currency)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Garage{
		currency: currency,
		clock:    clock,
		sectors:  make(map[string]*Sector),
		spots:    make(map[uuid.UUID]*Spot),
	}, nil
}

func (g *Garage) Currency() string { return g.currency }

// CreateSector registers a new sector priced in the garage currency.
func (g *Garage) CreateSector(id string, basePriceAmount float64, maxCapacity int, openHour, closeHour string, durationLimitMinutes int) (*Sector, error) {
	basePrice, err := NewMoneyFromFloat(basePriceAmount, g.currency)
	if err != nil {
		return nil, err
	}
	sector, err := NewSector(id, basePrice, maxCapacity, openHour, closeHour, durationLimitMinutes)
	if err != nil {
		return nil, err
	}
	if _, exists := g.sectors[sector.ID()]; exists {
		return nil, invalidArgf("sector %s already exists", sector.ID())
	}
	g.sectors[sector.ID()] = sector
	return sector, nil
}

func (g *Garage) AddSpot(sectorID string, latitude, longitude float64) (*Spot, error) {
	sector, err := g.SectorByID(sectorID)
	if err != nil {
		return nil, err
	}
	coordinates, err := NewCoordinates(latitude, longitude)
	if err != nil {
		return nil, err
	}
	spot, err := NewSpot(coordinates, sector)
	if err != nil {
		return nil, err
	}
	g.spots[spot.ID()] = spot
	return spot, nil
}

func (g *Garage) SectorByID(id string) (*Sector, error) {
	sector, ok := g.sectors[id]
	if !ok {
		return nil, notFoundf("sector %s", id)
	}
	return sector, nil
}

func (g *Garage) Sectors() []*Sector {
	sectors := make([]*Sector, 0, len(g.sectors))
	for _, sector := range g.sectors {
		sectors = append(sectors, sector)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].ID() < sectors[j].ID()
	})
	return sectors
}

func (g *Garage) SpotByID(id uuid.UUID) (*Spot, error) {
	spot, ok := g.spots[id]
	if !ok {
		return nil, notFoundf("spot %s", id)
	}
	return spot, nil
}

func (g *Garage) SpotsInSector(sectorID string) ([]*Spot, error) {
	if _, err := g.SectorByID(sectorID); err != nil {
		return nil, err
	}
	var spots []*Spot
	for _, spot := range g.spots {
		if spot.Sector().ID() == sectorID {
			spots = append(spots, spot)
		}
	}
	sort.Slice(spots, func(i, j int) bool {
		return spots[i].ID().String() < spots[j].ID().String()
	})
	return spots, nil
}

// RegisterEntry opens a session for the vehicle against the sector's
// current dynamic price. A plate can hold only one active session.
func (g *Garage) RegisterEntry(plate, sectorID string) (*ParkingSession, error) {
	vehicle, err := NewVehicle(plate)
	if err != nil {
		return nil, err
	}
	sector, err := g.SectorByID(sectorID)
	if err != nil {
		return nil, err
	}
	if !sector.CanAcceptVehicle() {
		return nil, invalidArgf("sector %s cannot accept vehicles", sector.ID())
	}
	if active, _ := g.ActiveSessionByPlate(vehicle.LicensePlate()); active != nil {
		return nil, invalidArgf("vehicle %s already has an active session", vehicle.LicensePlate())
	}

	entryPrice, err := sector.DynamicPrice()
	if err != nil {
		return nil, err
	}
	session, err := NewParkingSession(vehicle, g.clock.Now(), entryPrice)
	if err != nil {
		return nil, err
	}
	g.sessions = append(g.sessions, session)
	return session, nil
}

// ParkVehicle moves the plate's active session onto the given spot.
func (g *Garage) ParkVehicle(plate string, spotID uuid.UUID) (*ParkingSession, error) {
	session, err := g.ActiveSessionByPlate(plate)
	if err != nil {
		return nil, err
	}
	spot, err := g.SpotByID(spotID)
	if err != nil {
		return nil, err
	}
	if err := session.ParkAtSpot(spot, g.clock.Now()); err != nil {
		return nil, err
	}
	return session, nil
}

// RegisterExit closes the plate's active session and freezes its final
// price.
func (g *Garage) RegisterExit(plate string) (*ParkingSession, error) {
	session, err := g.ActiveSessionByPlate(plate)
	if err != nil {
		return nil, err
	}
	if err := session.Exit(g.clock.Now()); err != nil {
		return nil, err
	}
	return session, nil
}

func (g *Garage) ActiveSessionByPlate(plate string) (*ParkingSession, error) {
	vehicle, err := NewVehicle(plate)
	if err != nil {
		return nil, err
	}
	for _, session := range g.sessions {
		if session.IsActive() && session.Vehicle().LicensePlate() == vehicle.LicensePlate() {
			return session, nil
		}
	}
	return nil, notFoundf("no active session for vehicle %s", vehicle.LicensePlate())
}

func (g *Garage) SessionsByPlate(plate string) ([]*ParkingSession, error) {
	vehicle, err := NewVehicle(plate)
	if err != nil {
		return nil, err
	}
	var sessions []*ParkingSession
	for _, session := range g.sessions {
		if session.Vehicle().LicensePlate() == vehicle.LicensePlate() {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (g *Garage) ActiveSessions() []*ParkingSession {
	var active []*ParkingSession
	for _, session := range g.sessions {
		if session.IsActive() {
			active = append(active, session)
		}
	}
	return active
}
