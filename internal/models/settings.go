package models

// Settings represents application-wide settings
type Settings struct {
	DayStart        string `json:"day_start"`        // start of operating hours, e.g. "08:00"
	DayEnd          string `json:"day_end"`          // end of operating hours (exclusive), e.g. "17:00"
	Timezone        string `json:"timezone"`         // IANA timezone name or "Local"
	TimetableSource string `json:"timetable_source"` // path or URL of the lecture table
	TeachersSource  string `json:"teachers_source"`  // path or URL of the teacher table
	RoomsSource     string `json:"rooms_source"`     // path or URL of the room table
	ReportOptOut    bool   `json:"report_opt_out"`   // report opted-out choices as CHOICE_MADE_NONE
}
