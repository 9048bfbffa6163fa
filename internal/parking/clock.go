package parking

import "time"

// Clock supplies wall-clock time to operations that need a "now". Duration
// and pricing methods take an explicit instant instead, so only the garage
// front door reads the clock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
