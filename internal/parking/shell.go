package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Shell struct {
	garage    *InstrumentedGarage
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewShell(garage *InstrumentedGarage, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		garage:    garage,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]

	switch command {
	case "create_sector":
		s.handleCreateSector(ctx, parts)
	case "add_spot":
		s.handleAddSpot(ctx, parts)
	case "enter":
		s.handleEnter(ctx, parts)
	case "park":
		s.handlePark(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "status":
		s.handleStatus()
	case "sessions_for_plate":
		s.handleSessionsForPlate(parts)
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleCreateSector(ctx context.Context, parts []string) {
	if len(parts) != 7 {
		fmt.Println("Usage: create_sector <id> <base_price> <max_capacity> <open_hour> <close_hour> <duration_limit_minutes>")
		return
	}

	basePrice, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Println("Invalid base price")
		return
	}
	maxCapacity, err := strconv.Atoi(parts[3])
	if err != nil {
		fmt.Println("Invalid max capacity")
		return
	}
	durationLimit, err := strconv.Atoi(parts[6])
	if err != nil {
		fmt.Println("Invalid duration limit")
		return
	}

	sector, err := s.garage.CreateSector(ctx, parts[1], basePrice, maxCapacity, parts[4], parts[5], durationLimit)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Created sector %s with capacity %d\n", sector.ID(), sector.MaxCapacity())
}

func (s *Shell) handleAddSpot(ctx context.Context, parts []string) {
	if len(parts) != 4 {
		fmt.Println("Usage: add_spot <sector_id> <latitude> <longitude>")
		return
	}

	latitude, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Println("Invalid latitude")
		return
	}
	longitude, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		fmt.Println("Invalid longitude")
		return
	}

	spot, err := s.garage.AddSpot(ctx, parts[1], latitude, longitude)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Added spot %s to sector %s\n", spot.ID(), spot.Sector().ID())
}

func (s *Shell) handleEnter(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: enter <license_plate> <sector_id>")
		return
	}

	session, err := s.garage.RegisterEntry(ctx, parts[1], parts[2])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Vehicle %s entered, entry price %s\n",
		session.Vehicle().FormattedPlate(), session.EntryPrice())
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: park <license_plate> <spot_id>")
		return
	}

	spotID, err := uuid.Parse(parts[2])
	if err != nil {
		fmt.Println("Invalid spot id")
		return
	}

	session, err := s.garage.ParkVehicle(ctx, parts[1], spotID)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Vehicle %s parked at spot %s\n",
		session.Vehicle().FormattedPlate(), session.Spot().ID())
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: exit <license_plate>")
		return
	}

	session, err := s.garage.RegisterExit(ctx, parts[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	final, _ := session.FinalPrice()
	fmt.Printf("Vehicle %s exited, final price %s\n",
		session.Vehicle().FormattedPlate(), final)
}

func (s *Shell) handleStatus() {
	sectors := s.garage.Sectors()
	if len(sectors) == 0 {
		fmt.Println("No sectors registered")
		return
	}

	fmt.Println("Sector\tOccupied\tCapacity\tOpen\tDynamic Price")
	for _, sector := range sectors {
		price, err := sector.DynamicPrice()
		priceText := "-"
		if err == nil {
			priceText = price.String()
		}
		fmt.Printf("%s\t%d\t\t%d\t\t%t\t%s\n",
			sector.ID(), sector.CurrentOccupancy(), sector.MaxCapacity(), sector.IsOpen(), priceText)
	}
}

func (s *Shell) handleSessionsForPlate(parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: sessions_for_plate <license_plate>")
		return
	}

	sessions, err := s.garage.SessionsByPlate(parts[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return
	}

	for _, session := range sessions {
		line := fmt.Sprintf("%s\t%s\tentered %s", session.ID(), session.Status(), session.EntryTime().Format("15:04"))
		if final, ok := session.FinalPrice(); ok {
			line += "\tcharged " + final.String()
		}
		fmt.Println(line)
	}
}
