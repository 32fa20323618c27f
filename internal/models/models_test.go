package models

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    Day
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"mon", Monday, false},
		{"  TUE ", Tuesday, false},
		{"saturday", Saturday, false},
		{"0", Sunday, false},
		{"6", Saturday, false},
		{"7", "", true},
		{"funday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayFromWeekday(t *testing.T) {
	if got := DayFromWeekday(time.Wednesday); got != Wednesday {
		t.Errorf("DayFromWeekday(Wednesday) = %q", got)
	}
	if Sunday.IsSchoolDay() {
		t.Error("Sunday should not be a school day")
	}
	if !Saturday.IsSchoolDay() {
		t.Error("Saturday should be a school day")
	}
}

func TestLectureActiveAt(t *testing.T) {
	lec := Lecture{Day: Monday, StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		day  Day
		time string
		want bool
	}{
		{Monday, "08:59", false},
		{Monday, "09:00", true},
		{Monday, "09:59", true},
		{Monday, "10:00", false},
		{Tuesday, "09:30", false},
	}
	for _, tt := range tests {
		if got := lec.ActiveAt(tt.day, tt.time); got != tt.want {
			t.Errorf("ActiveAt(%s, %s) = %v, want %v", tt.day, tt.time, got, tt.want)
		}
	}
}

func TestProfileCloneIsIndependent(t *testing.T) {
	p := Profile{Division: "A", Choices: map[string]string{"elective_G1": "Physics"}}
	c := p.Clone()
	c.Choices["elective_G1"] = "NONE"

	if v, _ := p.Choice("elective_G1"); v != "Physics" {
		t.Errorf("original profile mutated through clone: %q", v)
	}
	if _, ok := (Profile{}).Choice("anything"); ok {
		t.Error("zero profile should have no choices")
	}
}

func TestSettingsRoundTripThroughMap(t *testing.T) {
	s := DefaultSettings()
	s.Timezone = "Asia/Kolkata"
	s.ReportOptOut = true
	if got := MapToSettings(SettingsToMap(s)); got != s {
		t.Errorf("settings map conversion lost data: %+v", got)
	}
	if s.DayStart != "08:00" || s.DayEnd != "17:00" {
		t.Errorf("unexpected default operating hours %s-%s", s.DayStart, s.DayEnd)
	}
}
