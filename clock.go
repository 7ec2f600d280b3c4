package trvsched

import "time"

var localTZ = time.Local

// A Clock supplies the current wall-clock time as minutes since local
// midnight.
type Clock interface {
	MinutesSinceMidnight() MinuteOfDay
}

// LocalClock reads the system clock in local time.
type LocalClock struct{}

// MinutesSinceMidnight implements Clock.
func (LocalClock) MinutesSinceMidnight() MinuteOfDay {
	now := time.Now().In(localTZ)
	return MinuteOfDay(now.Hour()*60 + now.Minute())
}
