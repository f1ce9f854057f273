package model

import "time"

// TimeLayout is the fixed rendering pattern of the service: four-digit year,
// zero-padded month, day, hour (24-hour clock), minute and second. No
// timezone suffix, no sub-second digits, no locale variation.
const TimeLayout = "2006-01-02 15:04:05"

// FormattedTime is an instant rendered as YYYY-MM-DD HH:MM:SS. The shape is
// fixed-width and big-endian, so rendering non-decreasing instants yields
// lexicographically non-decreasing strings.
type FormattedTime string

// FormatTime renders t using TimeLayout. The zone conversion must already
// have happened on t; formatting itself cannot fail.
func FormatTime(t time.Time) FormattedTime {
	return FormattedTime(t.Format(TimeLayout))
}

func (f FormattedTime) String() string {
	return string(f)
}
