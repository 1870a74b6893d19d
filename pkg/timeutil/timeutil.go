package timeutil

import (
	"errors"
	"strings"
	"time"
)

const DayKeyLayout = "2006-01-02"

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// zone-less layouts are interpreted in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DayKeyLayout,
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= value < End.
func (w Window) Contains(value time.Time) bool {
	return !value.Before(w.Start) && value.Before(w.End)
}

// Key identifies the calendar day the window covers.
func (w Window) Key() string {
	return w.Start.Format(DayKeyLayout)
}

// UTC returns the same interval expressed in UTC, which is how timestamps are stored.
func (w Window) UTC() Window {
	return Window{Start: w.Start.UTC(), End: w.End.UTC()}
}

func StartOfDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.Local
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayWindowAt returns the local day containing value. End is computed with
// AddDate so days shortened or lengthened by DST still end at midnight.
func DayWindowAt(value time.Time, location *time.Location) Window {
	start := StartOfDay(value, location)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// ParseTimestamp accepts RFC 3339 and a few zone-less layouts sent by mobile clients.
func ParseTimestamp(value string, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if location == nil {
		location = time.Local
	}

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, nil
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// Clock abstracts the system clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// DayResolver computes "today" for a clock in a fixed location.
type DayResolver struct {
	clock    Clock
	location *time.Location
}

func NewDayResolver(clock Clock, location *time.Location) *DayResolver {
	if clock == nil {
		clock = SystemClock()
	}
	if location == nil {
		location = time.Local
	}
	return &DayResolver{clock: clock, location: location}
}

func (r *DayResolver) Now() time.Time {
	return r.clock.Now().In(r.location)
}

func (r *DayResolver) Today() Window {
	return DayWindowAt(r.clock.Now(), r.location)
}

func (r *DayResolver) Location() *time.Location {
	return r.location
}
