package models

// RoomType distinguishes teaching rooms from laboratories
type RoomType string

const (
	RoomTypeClassroom RoomType = "Classroom"
	RoomTypeLab       RoomType = "Lab"
)

// Room is a static room record
type Room struct {
	ID    string   `json:"id" yaml:"id" validate:"required"`
	Floor int      `json:"floor" yaml:"floor"`
	Type  RoomType `json:"type" yaml:"type" validate:"omitempty,oneof=Classroom Lab"`
}

// Teacher is a static teacher record
type Teacher struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	CabinRoomID string `json:"cabinRoomId" yaml:"cabinRoomId"`
}
