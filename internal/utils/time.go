package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
)

// Clock supplies the current instant. Queries accept an explicit day and time
// instead when run in manual mode.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock for the given IANA timezone name ("Local" or empty for system time).
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// DayAndTime splits an instant into the weekday name and a zero-padded HH:MM string.
func DayAndTime(t time.Time) (models.Day, string) {
	return models.DayFromWeekday(t.Weekday()), t.Format(constants.TimeFormat)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime formats minutes from midnight as HH:MM.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime accepts "H:MM" or "HH:MM" and returns the zero-padded HH:MM form
// that lexicographic comparisons rely on.
func NormalizeTime(timeStr string) (string, error) {
	t, err := ParseTime(strings.TrimSpace(timeStr))
	if err != nil {
		return "", fmt.Errorf("invalid time %q, use HH:MM", timeStr)
	}
	return t.Format(constants.TimeFormat), nil
}

// MinutesUntil returns the whole minutes from one HH:MM to another, or 0 when either is malformed.
func MinutesUntil(from, to string) int {
	a, err := ParseTimeToMinutes(from)
	if err != nil {
		return 0
	}
	b, err := ParseTimeToMinutes(to)
	if err != nil {
		return 0
	}
	return b - a
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
