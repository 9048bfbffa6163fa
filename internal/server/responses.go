package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"park-management/internal/parking"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type CreateSectorRequest struct {
	ID                   string  `json:"id"`
	BasePrice            float64 `json:"base_price"`
	MaxCapacity          int     `json:"max_capacity"`
	OpenHour             string  `json:"open_hour"`
	CloseHour            string  `json:"close_hour"`
	DurationLimitMinutes int     `json:"duration_limit_minutes"`
}

type AddSpotRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type EntryRequest struct {
	LicensePlate string `json:"license_plate"`
	SectorID     string `json:"sector_id"`
}

type ParkRequest struct {
	LicensePlate string `json:"license_plate"`
	SpotID       string `json:"spot_id"`
}

type ExitRequest struct {
	LicensePlate string `json:"license_plate"`
}

type SectorResponse struct {
	ID                   string   `json:"id"`
	BasePrice            MoneyDTO `json:"base_price"`
	MaxCapacity          int      `json:"max_capacity"`
	OpenHour             string   `json:"open_hour"`
	CloseHour            string   `json:"close_hour"`
	DurationLimitMinutes int      `json:"duration_limit_minutes"`
	CurrentOccupancy     int      `json:"current_occupancy"`
	OccupancyPercentage  float64  `json:"occupancy_percentage"`
	IsOpen               bool     `json:"is_open"`
	DynamicPrice         MoneyDTO `json:"dynamic_price"`
}

type SpotResponse struct {
	ID        string  `json:"id"`
	SectorID  string  `json:"sector_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Occupied  bool    `json:"occupied"`
	Available bool    `json:"available"`
}

type SessionResponse struct {
	ID           string     `json:"id"`
	LicensePlate string     `json:"license_plate"`
	SpotID       string     `json:"spot_id,omitempty"`
	EntryTime    time.Time  `json:"entry_time"`
	ParkedTime   *time.Time `json:"parked_time,omitempty"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
	EntryPrice   MoneyDTO   `json:"entry_price"`
	FinalPrice   *MoneyDTO  `json:"final_price,omitempty"`
	Status       string     `json:"status"`
}

func moneyDTO(m parking.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

func sectorResponse(s *parking.Sector) SectorResponse {
	resp := SectorResponse{
		ID:                   s.ID(),
		BasePrice:            moneyDTO(s.BasePrice()),
		MaxCapacity:          s.MaxCapacity(),
		OpenHour:             s.OpenHour(),
		CloseHour:            s.CloseHour(),
		DurationLimitMinutes: s.DurationLimitMinutes(),
		CurrentOccupancy:     s.CurrentOccupancy(),
		OccupancyPercentage:  s.OccupancyPercentage(),
		IsOpen:               s.IsOpen(),
	}
	if price, err := s.DynamicPrice(); err == nil {
		resp.DynamicPrice = moneyDTO(price)
	}
	return resp
}

func spotResponse(s *parking.Spot) SpotResponse {
	return SpotResponse{
		ID:        s.ID().String(),
		SectorID:  s.Sector().ID(),
		Latitude:  s.Coordinates().Latitude(),
		Longitude: s.Coordinates().Longitude(),
		Occupied:  s.IsOccupied(),
		Available: s.IsAvailable(),
	}
}

func sessionResponse(s *parking.ParkingSession) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID().String(),
		LicensePlate: s.Vehicle().LicensePlate(),
		EntryTime:    s.EntryTime(),
		EntryPrice:   moneyDTO(s.EntryPrice()),
		Status:       s.Status().String(),
	}
	if spot := s.Spot(); spot != nil {
		resp.SpotID = spot.ID().String()
	}
	if parked := s.ParkedTime(); !parked.IsZero() {
		resp.ParkedTime = &parked
	}
	if exit := s.ExitTime(); !exit.IsZero() {
		resp.ExitTime = &exit
	}
	if final, ok := s.FinalPrice(); ok {
		dto := moneyDTO(final)
		resp.FinalPrice = &dto
	}
	return resp
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
