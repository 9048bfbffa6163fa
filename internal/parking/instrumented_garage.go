package parking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedGarage struct {
	*Garage
	telemetry *TelemetryProvider

	// Metrics
	entryOperations   metric.Int64Counter
	parkOperations    metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	revenueTotal      metric.Float64Counter
}

func NewInstrumentedGarage(currency string, clock Clock, telemetry *TelemetryProvider) (*InstrumentedGarage, error) {
	garage, err := NewGarage(currency, clock)
	if err != nil {
		return nil, err
	}

	meter := telemetry.Meter()

	entryOperations, err := meter.Int64Counter("vehicle_entries_total",
		metric.WithDescription("Total number of vehicle entry operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park-at-spot operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("vehicle_exits_total",
		metric.WithDescription("Total number of vehicle exit operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("garage_occupancy",
		metric.WithDescription("Current number of occupied spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of garage operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	revenueTotal, err := meter.Float64Counter("parking_revenue_total",
		metric.WithDescription("Total revenue charged at session exit"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedGarage{
		Garage:            garage,
		telemetry:         telemetry,
		entryOperations:   entryOperations,
		parkOperations:    parkOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		revenueTotal:      revenueTotal,
	}, nil
}

func (ig *InstrumentedGarage) CreateSector(ctx context.Context, id string, basePriceAmount float64, maxCapacity int, openHour, closeHour string, durationLimitMinutes int) (*Sector, error) {
	tracer := ig.telemetry.Tracer()
	_, span := tracer.Start(ctx, "garage.create_sector",
		trace.WithAttributes(
			attribute.String("sector.id", id),
			attribute.Int("sector.max_capacity", maxCapacity),
		))
	defer span.End()

	sector, err := ig.Garage.CreateSector(id, basePriceAmount, maxCapacity, openHour, closeHour, durationLimitMinutes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.AddEvent("sector_created")
	return sector, nil
}

func (ig *InstrumentedGarage) AddSpot(ctx context.Context, sectorID string, latitude, longitude float64) (*Spot, error) {
	tracer := ig.telemetry.Tracer()
	_, span := tracer.Start(ctx, "garage.add_spot",
		trace.WithAttributes(
			attribute.String("sector.id", sectorID),
		))
	defer span.End()

	spot, err := ig.Garage.AddSpot(sectorID, latitude, longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("spot.id", spot.ID().String()))
	span.AddEvent("spot_added")
	return spot, nil
}

func (ig *InstrumentedGarage) RegisterEntry(ctx context.Context, plate, sectorID string) (*ParkingSession, error) {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.register_entry",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
			attribute.String("sector.id", sectorID),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("quoting_entry_price")

	session, err := ig.Garage.RegisterEntry(plate, sectorID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "register_entry"),
		attribute.String("sector", sectorID),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("session.id", session.ID().String()),
			attribute.String("session.entry_price", session.EntryPrice().String()),
		)
		span.AddEvent("session_opened", trace.WithAttributes(
			attribute.String("session.id", session.ID().String()),
		))
	}

	ig.entryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return session, err
}

func (ig *InstrumentedGarage) ParkVehicle(ctx context.Context, plate string, spotID uuid.UUID) (*ParkingSession, error) {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.park_vehicle",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
			attribute.String("spot.id", spotID.String()),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("assigning_spot")

	session, err := ig.Garage.ParkVehicle(plate, spotID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park_vehicle"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		sectorID := session.Spot().Sector().ID()
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("sector", sectorID),
		)
		span.SetAttributes(attribute.String("sector.id", sectorID))
		span.AddEvent("spot_occupied")
		ig.occupancyGauge.Add(ctx, 1, metric.WithAttributes(attribute.String("sector", sectorID)))
	}

	ig.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return session, err
}

func (ig *InstrumentedGarage) RegisterExit(ctx context.Context, plate string) (*ParkingSession, error) {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.register_exit",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("closing_session")

	session, err := ig.Garage.RegisterExit(plate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "register_exit"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		if spot := session.Spot(); spot != nil {
			sectorID := spot.Sector().ID()
			ig.occupancyGauge.Add(ctx, -1, metric.WithAttributes(attribute.String("sector", sectorID)))
			labels = append(labels, attribute.String("sector", sectorID))
		}
		if final, ok := session.FinalPrice(); ok {
			amount, _ := final.Amount().Float64()
			ig.revenueTotal.Add(ctx, amount, metric.WithAttributes(
				attribute.String("currency", final.Currency()),
			))
			span.SetAttributes(attribute.String("session.final_price", final.String()))
		}
		span.AddEvent("session_closed")
	}

	ig.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return session, err
}
