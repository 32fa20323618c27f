package models

import "slices"

// LectureType tags lectures that need special applicability handling
type LectureType string

const (
	LectureTypeNone     LectureType = ""
	LectureTypeLab      LectureType = "lab"
	LectureTypeTutorial LectureType = "tutorial"
	LectureTypeElective LectureType = "elective"
	LectureTypeMinor    LectureType = "minor"
)

// Lecture is one scheduled teaching slot. StartTime and EndTime are zero-padded
// HH:MM strings describing the half-open interval [StartTime, EndTime).
type Lecture struct {
	Day           Day         `json:"day" yaml:"day" validate:"required,schoolday"`
	StartTime     string      `json:"startTime" yaml:"startTime" validate:"required,hhmm"`
	EndTime       string      `json:"endTime" yaml:"endTime" validate:"required,hhmm"`
	Divisions     []string    `json:"divisions" yaml:"divisions" validate:"required,min=1,dive,required"`
	Subject       string      `json:"subject" yaml:"subject" validate:"required"`
	TeacherID     string      `json:"teacherId,omitempty" yaml:"teacherId"`
	RoomID        []string    `json:"roomId" yaml:"roomId" validate:"required,min=1,dive,required"`
	Type          LectureType `json:"type,omitempty" yaml:"type" validate:"omitempty,oneof=lab tutorial elective minor"`
	Batches       []string    `json:"batches,omitempty" yaml:"batches" validate:"required_if=Type tutorial,dive,required"`
	ElectiveGroup string      `json:"electiveGroup,omitempty" yaml:"electiveGroup" validate:"required_if=Type elective"`
	MinorGroup    string      `json:"minorGroup,omitempty" yaml:"minorGroup" validate:"required_if=Type minor"`
	CustomGroup   string      `json:"customGroup,omitempty" yaml:"customGroup"`

	// Seq is the record's position in the source table, used for stable tie-breaks
	Seq int `json:"-" yaml:"-"`
}

// HasDivision reports whether the lecture serves division
func (l Lecture) HasDivision(division string) bool {
	return slices.Contains(l.Divisions, division)
}

// HasBatch reports whether batch is listed in the lecture's batches
func (l Lecture) HasBatch(batch string) bool {
	return slices.Contains(l.Batches, batch)
}

// HasRoom reports whether roomID is one of the lecture's (candidate) rooms
func (l Lecture) HasRoom(roomID string) bool {
	return slices.Contains(l.RoomID, roomID)
}

// RoomIsAmbiguous reports whether the lecture lists more than one candidate room
func (l Lecture) RoomIsAmbiguous() bool {
	return len(l.RoomID) > 1
}

// ActiveAt reports whether t (HH:MM) falls in [StartTime, EndTime)
func (l Lecture) ActiveAt(day Day, t string) bool {
	return l.Day == day && l.StartTime <= t && t < l.EndTime
}
