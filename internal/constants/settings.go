package constants

const (
	// General Settings
	SettingDayStart        = "day_start"
	SettingDayEnd          = "day_end"
	SettingTimezone        = "timezone"
	SettingTimetableSource = "timetable_source"
	SettingTeachersSource  = "teachers_source"
	SettingRoomsSource     = "rooms_source"
	SettingReportOptOut    = "report_opt_out"

	// Default Settings Values
	DefaultDayStart        = "08:00"
	DefaultDayEnd          = "17:00"
	DefaultTimezone        = "Local" // Use system local timezone by default
	DefaultTimetableSource = "timetable.json"
	DefaultTeachersSource  = "teachers.json"
	DefaultRoomsSource     = "rooms.json"

	// Environment variables
	EnvTimetable    = "LECTERN_TIMETABLE"
	EnvTeachers     = "LECTERN_TEACHERS"
	EnvRooms        = "LECTERN_ROOMS"
	EnvTimezone     = "LECTERN_TIMEZONE"
	EnvDBConnection = "LECTERN_DB_CONNECTION"
)
