package timeutil

import (
	"log"
	"time"
)

// loc is the restaurant's local time zone. Elapsed-minute math and the
// history window both run on this clock.
var loc = time.UTC

// SetLocation switches the service clock to the given IANA zone.
// Called once at startup from config.
func SetLocation(name string) {
	l, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[Time] Unknown location %q, staying on %s", name, loc)
		return
	}
	loc = l
}

// Now returns the current time in the restaurant's zone.
func Now() time.Time {
	return time.Now().In(loc)
}

// ToLocal converts any time to the restaurant's zone.
func ToLocal(t time.Time) time.Time {
	return t.In(loc)
}

// StartOfDay returns 00:00:00 local for the given time.
func StartOfDay(t time.Time) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999999999 local for the given time.
func EndOfDay(t time.Time) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 23, 59, 59, 999999999, loc)
}

// Common layouts for display formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)
