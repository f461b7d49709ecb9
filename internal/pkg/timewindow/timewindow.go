// Package timewindow holds the wall-clock and interval arithmetic shared by
// slot enumeration, booking commit and settings validation.
//
// Local times are always interpreted in an explicit *time.Location (the
// provider's zone), never in the server's local zone.
package timewindow

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// SlotLayout renders instants with their UTC offset, e.g. 2030-01-07T09:00:00-04:00.
	SlotLayout = time.RFC3339

	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time of day")
	ErrInvalidZone  = errors.New("invalid timezone")
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Clock is a wall-clock time of day expressed in minutes after local midnight.
type Clock int

func ClockOf(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "HH:MM", the form used by settings input.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:5])
	return ClockOf(h, m), nil
}

// ParseStoredClock accepts "HH:MM" or "HH:MM:SS" as returned by TIME columns.
// Seconds are dropped.
func ParseStoredClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 8 && s[5] == ':' {
		s = s[:5]
	}
	return ParseClock(s)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClock, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseStoredClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

func NewRange(start time.Time, d time.Duration) Range {
	return Range{Start: start, End: start.Add(d)}
}

// Overlaps reports whether [a.Start, a.End) and [b.Start, b.End) intersect.
// Touching end points do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

// OverlapsAny reports whether r overlaps at least one of the given ranges.
func (r Range) OverlapsAny(others []Range) bool {
	for _, o := range others {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

// LoadLocation resolves an IANA zone name. The empty name is rejected instead of
// silently resolving to UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}
	return loc, nil
}

// ParseDate returns local midnight of a YYYY-MM-DD date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(date) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

// DateOf is the calendar date of t as seen in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds spans the local calendar day starting at day: [midnight, next midnight).
// The span is 23 or 25 hours long on DST transition days.
func DayBounds(day time.Time) Range {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekDay is the Sunday-indexed weekday (0=Sunday..6=Saturday) of day in its location.
func WeekDay(day time.Time) int {
	return int(day.Weekday())
}

// At combines the date of day with the wall-clock c in day's location.
func At(day time.Time, c Clock) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location())
}
