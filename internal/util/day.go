package util

import "time"

// dayCodes maps time.Weekday to the two-letter recurrence codes used by the
// reminder subscription service (iCal BYDAY style).
var dayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

var dayNames = map[string]string{
	"SU": "Sunday",
	"MO": "Monday",
	"TU": "Tuesday",
	"WE": "Wednesday",
	"TH": "Thursday",
	"FR": "Friday",
	"SA": "Saturday",
}

// UpcomingWeekday returns the recurrence code and full name of the weekday
// two days after now, giving the user a little lead time before the first
// weekly reminder fires.
func UpcomingWeekday(now time.Time) (code, name string) {
	d := now.AddDate(0, 0, 2).Weekday()
	code = dayCodes[d]
	return code, dayNames[code]
}

// FullDayName expands a recurrence code to its full weekday name. Unknown
// codes are returned unchanged so the response stays speakable.
func FullDayName(code string) string {
	if name, ok := dayNames[code]; ok {
		return name
	}
	return code
}
