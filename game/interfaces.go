package game

import (
	"time"
)

type NetworkSession interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// Player is the room's view of a connection: an identity and a send sink.
type Player interface {
	ID() string
	Send(data []byte) error
}

type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

type TimerCreator interface {
	Create(d time.Duration) <-chan time.Time
}

// roomRegistry is the part of the lobby a room talks back to.
type roomRegistry interface {
	UpdateDescription(desc RoomDescription)
	RemoveRoom(roomID string)
}
