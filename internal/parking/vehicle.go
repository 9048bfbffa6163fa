package parking

import (
	"regexp"
	"strings"
)

var (
	oldPlatePattern      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// Vehicle is identified by its license plate, which must follow one of the
// two Brazilian formats: legacy (ABC1234) or Mercosul (ABC1D23).
type Vehicle struct {
	licensePlate string
}

func NewVehicle(licensePlate string) (Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(licensePlate))
	if plate == "" {
		return Vehicle{}, invalidArgf("license plate must not be empty")
	}
	if !isValidLicensePlate(plate) {
		return Vehicle{}, invalidArgf("license plate %q does not follow a Brazilian format", plate)
	}
	return Vehicle{licensePlate: plate}, nil
}

func isValidLicensePlate(plate string) bool {
	return oldPlatePattern.MatchString(plate) || mercosulPlatePattern.MatchString(plate)
}

func (v Vehicle) LicensePlate() string { return v.licensePlate }

func (v Vehicle) IsMercosulFormat() bool {
	return mercosulPlatePattern.MatchString(v.licensePlate)
}

func (v Vehicle) IsOldFormat() bool {
	return oldPlatePattern.MatchString(v.licensePlate)
}

// FormattedPlate inserts the display separator after the third character.
func (v Vehicle) FormattedPlate() string {
	if v.IsMercosulFormat() || v.IsOldFormat() {
		return v.licensePlate[:3] + "-" + v.licensePlate[3:]
	}
	return v.licensePlate
}

// CanPark re-validates the stored plate. Always true for a validly
// constructed Vehicle.
func (v Vehicle) CanPark() bool {
	return isValidLicensePlate(v.licensePlate)
}
