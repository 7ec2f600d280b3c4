package trvsched

import (
	"fmt"
	"strconv"
	"strings"
)

// MinsPerDay is the number of minutes in a civil day.
const MinsPerDay = 1440

// A MinuteOfDay is a wall-clock time expressed as minutes since local
// midnight, in [0,1439].
type MinuteOfDay uint16

// String returns the time as "H:MM".
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// Valid tells whether m lies in [0,MinsPerDay).
func (m MinuteOfDay) Valid() bool {
	return m < MinsPerDay
}

// ParseMinuteOfDay parses either a "H:MM" wall-clock time or a plain
// number of minutes since midnight.
func ParseMinuteOfDay(value string) (MinuteOfDay, error) {
	hhmm := strings.SplitN(value, ":", 2)
	if len(hhmm) == 2 {
		hours, err1 := strconv.Atoi(hhmm[0])
		mins, err2 := strconv.Atoi(hhmm[1])
		if err1 != nil || err2 != nil ||
			hours < 0 || hours > 23 || mins < 0 || mins > 59 {
			return 0, fmt.Errorf("bad time `%s'", value)
		}
		return MinuteOfDay(hours*60 + mins), nil
	}

	mins, err := strconv.Atoi(value)
	if err != nil || mins < 0 || mins >= MinsPerDay {
		return 0, fmt.Errorf("bad time `%s'", value)
	}
	return MinuteOfDay(mins), nil
}
