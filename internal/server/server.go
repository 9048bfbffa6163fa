package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"park-management/internal/logging"
	"park-management/internal/parking"
)

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func NewServer(port string, garage *parking.InstrumentedGarage) *Server {
	handler := NewHandler(garage)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      newRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
	}
}

func newRouter(handler *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TracingMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/garage", func(r chi.Router) {
		r.Post("/sectors", handler.CreateSector)
		r.Get("/sectors", handler.ListSectors)
		r.Get("/sectors/{id}", handler.GetSector)
		r.Post("/sectors/{id}/spots", handler.AddSpot)
		r.Get("/sectors/{id}/spots", handler.ListSpots)
		r.Post("/entries", handler.RegisterEntry)
		r.Post("/park", handler.ParkVehicle)
		r.Post("/exits", handler.RegisterExit)
		r.Get("/sessions/{plate}", handler.SessionsByPlate)
	})

	return r
}

func (s *Server) Start() error {
	logging.Logger().Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Logger().Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
