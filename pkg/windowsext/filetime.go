package windowsext

import (
	"time"
)

// The Unix Epoch as a Windows FILETIME.
const unixEpochAsFiletime = 116444736000000000

// TimeToFiletime converts a time.Time to the number of 100 nanosecond
// intervals since January 1, 1601 (UTC). The zero time is converted to
// zero, which Windows interprets as "not specified".
func TimeToFiletime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()/100 + unixEpochAsFiletime
}

// FiletimeToTime converts a Windows FILETIME to a time.Time.
func FiletimeToTime(ft int64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	return time.Unix(0, (ft-unixEpochAsFiletime)*100).UTC()
}
