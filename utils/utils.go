package utils

import (
	"time"
)

// TimestampLayout is the wall-clock format written into every row.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout matches the ISO date strings used for holiday lookups and
// daily CSV file names.
const DateLayout = "2006-01-02"

var istLocation *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Zoneinfo-less containers: IST has had no DST transitions since 1945,
		// so a fixed offset is equivalent.
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	istLocation = loc
}

// ISTLocation returns the exchange reference timezone (Asia/Kolkata).
func ISTLocation() *time.Location {
	return istLocation
}

// NowIST returns the current wall-clock time in the exchange timezone.
func NowIST() time.Time {
	return time.Now().In(istLocation)
}

// FormatTimestamp renders t in IST using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.In(istLocation).Format(TimestampLayout)
}

// FormatDate renders t's date in IST using DateLayout.
func FormatDate(t time.Time) string {
	return t.In(istLocation).Format(DateLayout)
}
