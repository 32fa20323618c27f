package models

import (
	"strconv"

	"github.com/julianstephens/lectern/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingDayStart:
			settings.DayStart = value
		case constants.SettingDayEnd:
			settings.DayEnd = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingTimetableSource:
			settings.TimetableSource = value
		case constants.SettingTeachersSource:
			settings.TeachersSource = value
		case constants.SettingRoomsSource:
			settings.RoomsSource = value
		case constants.SettingReportOptOut:
			settings.ReportOptOut, _ = strconv.ParseBool(value)
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDayStart:        settings.DayStart,
		constants.SettingDayEnd:          settings.DayEnd,
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingTimetableSource: settings.TimetableSource,
		constants.SettingTeachersSource:  settings.TeachersSource,
		constants.SettingRoomsSource:     settings.RoomsSource,
		constants.SettingReportOptOut:    strconv.FormatBool(settings.ReportOptOut),
	}
}

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DayStart == "" {
		settings.DayStart = constants.DefaultDayStart
	}
	if settings.DayEnd == "" {
		settings.DayEnd = constants.DefaultDayEnd
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.TimetableSource == "" {
		settings.TimetableSource = constants.DefaultTimetableSource
	}
	if settings.TeachersSource == "" {
		settings.TeachersSource = constants.DefaultTeachersSource
	}
	if settings.RoomsSource == "" {
		settings.RoomsSource = constants.DefaultRoomsSource
	}
}
