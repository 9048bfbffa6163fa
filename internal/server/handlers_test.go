package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-management/internal/parking"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	telemetry, err := parking.NewTelemetryProvider("park-management-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		// No collector is listening during tests; drop the flush error.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	})

	garage, err := parking.NewInstrumentedGarage("BRL", parking.SystemClock{}, telemetry)
	require.NoError(t, err)

	return newRouter(NewHandler(garage))
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp struct {
		Success bool   `json:"success"`
		Data    T      `json:"data"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	return resp.Data
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestSectorEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/garage/sectors", CreateSectorRequest{
		ID: "A", BasePrice: 10.00, MaxCapacity: 100,
		OpenHour: "08:00", CloseHour: "22:00", DurationLimitMinutes: 240,
	})
	require.Equal(t, http.StatusOK, w.Code)
	sector := decodeData[SectorResponse](t, w)
	assert.Equal(t, "A", sector.ID)
	assert.Equal(t, "10.00", sector.BasePrice.Amount)
	assert.Equal(t, "BRL", sector.BasePrice.Currency)
	assert.True(t, sector.IsOpen)
	assert.Equal(t, "9.00", sector.DynamicPrice.Amount)

	// Duplicate id.
	w = doJSON(t, router, http.MethodPost, "/api/garage/sectors", CreateSectorRequest{
		ID: "A", BasePrice: 10.00, MaxCapacity: 100,
		OpenHour: "08:00", CloseHour: "22:00", DurationLimitMinutes: 240,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/garage/sectors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sectors := decodeData[[]SectorResponse](t, w)
	require.Len(t, sectors, 1)

	w = doJSON(t, router, http.MethodGet, "/api/garage/sectors/A", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/garage/sectors/Z", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpotEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/garage/sectors", CreateSectorRequest{
		ID: "A", BasePrice: 10.00, MaxCapacity: 100,
		OpenHour: "08:00", CloseHour: "22:00", DurationLimitMinutes: 240,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/sectors/A/spots", AddSpotRequest{
		Latitude: -23.5505, Longitude: -46.6333,
	})
	require.Equal(t, http.StatusOK, w.Code)
	spot := decodeData[SpotResponse](t, w)
	assert.Equal(t, "A", spot.SectorID)
	assert.False(t, spot.Occupied)

	w = doJSON(t, router, http.MethodGet, "/api/garage/sectors/A/spots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	spots := decodeData[[]SpotResponse](t, w)
	require.Len(t, spots, 1)
	assert.Equal(t, spot.ID, spots[0].ID)

	// Out-of-range coordinates.
	w = doJSON(t, router, http.MethodPost, "/api/garage/sectors/A/spots", AddSpotRequest{
		Latitude: 91, Longitude: 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/sectors/Z/spots", AddSpotRequest{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/garage/sectors", CreateSectorRequest{
		ID: "A", BasePrice: 10.00, MaxCapacity: 100,
		OpenHour: "08:00", CloseHour: "22:00", DurationLimitMinutes: 240,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/sectors/A/spots", AddSpotRequest{
		Latitude: -23.5505, Longitude: -46.6333,
	})
	require.Equal(t, http.StatusOK, w.Code)
	spot := decodeData[SpotResponse](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/garage/entries", EntryRequest{
		LicensePlate: "ABC1234", SectorID: "A",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeData[SessionResponse](t, w)
	assert.Equal(t, "ENTERED", session.Status)
	assert.Equal(t, "9.00", session.EntryPrice.Amount)

	// Plate already inside.
	w = doJSON(t, router, http.MethodPost, "/api/garage/entries", EntryRequest{
		LicensePlate: "ABC1234", SectorID: "A",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/park", ParkRequest{
		LicensePlate: "ABC1234", SpotID: spot.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeData[SessionResponse](t, w)
	assert.Equal(t, "PARKED", session.Status)
	assert.Equal(t, spot.ID, session.SpotID)
	require.NotNil(t, session.ParkedTime)

	w = doJSON(t, router, http.MethodPost, "/api/garage/park", ParkRequest{
		LicensePlate: "ABC1234", SpotID: "not-a-uuid",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/exits", ExitRequest{
		LicensePlate: "ABC1234",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeData[SessionResponse](t, w)
	assert.Equal(t, "EXITED", session.Status)
	require.NotNil(t, session.FinalPrice)
	assert.Equal(t, "BRL", session.FinalPrice.Currency)

	// No active session left for the plate.
	w = doJSON(t, router, http.MethodPost, "/api/garage/exits", ExitRequest{
		LicensePlate: "ABC1234",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/garage/sessions/ABC1234", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decodeData[[]SessionResponse](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "EXITED", history[0].Status)
}

func TestEntryValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/garage/entries", EntryRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/garage/entries", EntryRequest{
		LicensePlate: "ABC1234", SectorID: "Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
