package parking

// SessionStatus is the closed set of parking-session lifecycle states.
type SessionStatus int

const (
	StatusEntered SessionStatus = iota
	StatusParked
	StatusExited
)

var statusNames = map[SessionStatus]string{
	StatusEntered: "ENTERED",
	StatusParked:  "PARKED",
	StatusExited:  "EXITED",
}

var statusValues = map[string]SessionStatus{
	"ENTERED": StatusEntered,
	"PARKED":  StatusParked,
	"EXITED":  StatusExited,
}

func (s SessionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSessionStatus maps a display string back to its status. Unknown
// strings are a domain error.
func ParseSessionStatus(value string) (SessionStatus, error) {
	if status, ok := statusValues[value]; ok {
		return status, nil
	}
	return 0, invalidArgf("unknown parking session status %q", value)
}
