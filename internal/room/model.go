package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidStudio   = errors.New("invalid studio_id")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrNotOwner        = errors.New("only the studio owner may do this")
)

// RoomType classifies what a room is equipped for.
type RoomType string

const (
	TypeRecording RoomType = "RECORDING"
	TypeRehearsal RoomType = "REHEARSAL"
	TypeLive      RoomType = "LIVE"
	TypeMixing    RoomType = "MIXING"
	TypeMastering RoomType = "MASTERING"
)

// ValidRoomTypes lists every accepted RoomType value.
var ValidRoomTypes = []RoomType{TypeRecording, TypeRehearsal, TypeLive, TypeMixing, TypeMastering}

// Room is a bookable unit inside a studio. It must be Active to accept
// reservations; its studio's operating hours bound when it can be booked.
type Room struct {
	ID          string // UUID
	StudioID    string
	Name        string
	Description *string
	HourlyRate  float64
	Capacity    *int
	RoomType    RoomType
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
