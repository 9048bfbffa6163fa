package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"park-management/internal/parking"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "park-management"
}

// Handler serializes all garage mutations behind a single mutex; the domain
// layer itself carries no locking.
type Handler struct {
	garage *parking.InstrumentedGarage
	mu     sync.Mutex
}

func NewHandler(garage *parking.InstrumentedGarage) *Handler {
	return &Handler{garage: garage}
}

func writeDomainError(ctx context.Context, w http.ResponseWriter, err error, rejectStatus int) {
	switch {
	case errors.Is(err, parking.ErrNotFound):
		WriteError(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, parking.ErrInvalidArgument):
		WriteError(ctx, w, rejectStatus, err.Error())
	default:
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": getServiceName(),
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) CreateSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateSectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sector, err := h.garage.CreateSector(ctx, req.ID, req.BasePrice, req.MaxCapacity,
		req.OpenHour, req.CloseHour, req.DurationLimitMinutes)
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusBadRequest)
		return
	}

	WriteSuccess(ctx, w, "Sector created successfully", sectorResponse(sector))
}

func (h *Handler) ListSectors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	sectors := h.garage.Sectors()
	responses := make([]SectorResponse, 0, len(sectors))
	for _, sector := range sectors {
		responses = append(responses, sectorResponse(sector))
	}

	WriteSuccess(ctx, w, "", responses)
}

func (h *Handler) GetSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	sector, err := h.garage.SectorByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusBadRequest)
		return
	}

	WriteSuccess(ctx, w, "", sectorResponse(sector))
}

func (h *Handler) AddSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AddSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	spot, err := h.garage.AddSpot(ctx, chi.URLParam(r, "id"), req.Latitude, req.Longitude)
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusBadRequest)
		return
	}

	WriteSuccess(ctx, w, "Spot added successfully", spotResponse(spot))
}

func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	spots, err := h.garage.SpotsInSector(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusBadRequest)
		return
	}

	responses := make([]SpotResponse, 0, len(spots))
	for _, spot := range spots {
		responses = append(responses, spotResponse(spot))
	}

	WriteSuccess(ctx, w, "", responses)
}

func (h *Handler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LicensePlate == "" || req.SectorID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "License plate and sector are required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, err := h.garage.RegisterEntry(ctx, req.LicensePlate, req.SectorID)
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusConflict)
		return
	}

	WriteSuccess(ctx, w, "Vehicle entered successfully", sessionResponse(session))
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	spotID, err := uuid.Parse(req.SpotID)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid spot id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, err := h.garage.ParkVehicle(ctx, req.LicensePlate, spotID)
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusConflict)
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", sessionResponse(session))
}

func (h *Handler) RegisterExit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, err := h.garage.RegisterExit(ctx, req.LicensePlate)
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusConflict)
		return
	}

	WriteSuccess(ctx, w, "Vehicle exited successfully", sessionResponse(session))
}

func (h *Handler) SessionsByPlate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.garage.SessionsByPlate(chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(ctx, w, err, http.StatusBadRequest)
		return
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionResponse(session))
	}

	WriteSuccess(ctx, w, "", responses)
}
