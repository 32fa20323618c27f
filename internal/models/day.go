package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day is a weekday name as it appears in timetable sources, e.g. "Monday"
type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

// SchoolDays lists the days a timetable may schedule lectures on, in week order
var SchoolDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var dayMap = map[string]Day{
	"sun":       Sunday,
	"sunday":    Sunday,
	"mon":       Monday,
	"monday":    Monday,
	"tue":       Tuesday,
	"tuesday":   Tuesday,
	"wed":       Wednesday,
	"wednesday": Wednesday,
	"thu":       Thursday,
	"thursday":  Thursday,
	"fri":       Friday,
	"friday":    Friday,
	"sat":       Saturday,
	"saturday":  Saturday,
}

// ParseDay accepts full or three-letter day names in any case, or a number (0=Sunday, 6=Saturday).
func ParseDay(s string) (Day, error) {
	key := strings.TrimSpace(strings.ToLower(s))
	if d, ok := dayMap[key]; ok {
		return d, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 0 && num <= 6 {
		return DayFromWeekday(time.Weekday(num)), nil
	}
	return "", fmt.Errorf("invalid day: %s", s)
}

// DayFromWeekday converts a time.Weekday to a Day
func DayFromWeekday(wd time.Weekday) Day {
	return Day(wd.String())
}

// IsSchoolDay reports whether d is Monday through Saturday
func (d Day) IsSchoolDay() bool {
	for _, sd := range SchoolDays {
		if sd == d {
			return true
		}
	}
	return false
}

func (d Day) String() string { return string(d) }
