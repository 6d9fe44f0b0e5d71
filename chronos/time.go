package chronos

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Returns current time, if [tz] is "" or "UTC", then returns as UTC
// If [tz] is "LOCAL", returns [time.Time] in current local time
//
// Othwerwise, [tz] can be any valid IANA timezone db file name.
// eg: "America/Chicago"
func Now(tz string) time.Time {
	loc, _ := time.LoadLocation(tz)
	return time.Now().In(loc)
}

func Dur(s string) time.Duration {
	t, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Converts a millisecond count into a [time.Duration]. Saves the
// fmt.Sprintf dance when the count comes from config.
func DurMs(ms int) time.Duration {
	return Dur(fmt.Sprintf("%dms", ms))
}

// Converts a second count into a [time.Duration].
func DurSecs(secs int) time.Duration {
	return Dur(fmt.Sprintf("%ds", secs))
}
