package game

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/rs/zerolog/log"
)

const maxNameLength = 20

// Lobby is the room manager. It maps room ids to running rooms; every
// room-level decision is made by the room's own loop.
type Lobby struct {
	locker       sync.RWMutex
	rooms        map[string]*Room
	descriptions map[string]RoomDescription

	idGenerator  UniqueIdGenerator
	timers       TimerCreator
	dice         domain.DiceRoller
	forfeitDelay time.Duration
}

func NewLobby(idgen UniqueIdGenerator, timers TimerCreator, dice domain.DiceRoller, forfeitDelay time.Duration) *Lobby {
	return &Lobby{
		rooms:        make(map[string]*Room),
		descriptions: make(map[string]RoomDescription),
		idGenerator:  idgen,
		timers:       timers,
		dice:         dice,
		forfeitDelay: forfeitDelay,
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

func (l *Lobby) room(roomID string) (*Room, bool) {
	l.locker.RLock()
	defer l.locker.RUnlock()
	r, ok := l.rooms[roomID]
	return r, ok
}

// CreateRoom seats host as the first color of a new room and starts its loop.
func (l *Lobby) CreateRoom(host Player, hostName string, capacity int) (string, domain.Color, error) {
	if capacity < MinPlayers || capacity > MaxPlayers {
		return "", 0, domain.ErrCapacityOutOfRange
	}
	hostName, err := normalizeName(hostName)
	if err != nil {
		return "", 0, err
	}

	id := l.idGenerator.Generate()
	r := NewRoom(id, capacity, host, hostName, roomOptions{
		registry:     l,
		timers:       l.timers,
		dice:         l.dice,
		forfeitDelay: l.forfeitDelay,
	})

	l.locker.Lock()
	l.rooms[id] = r
	l.descriptions[id] = r.Description()
	l.locker.Unlock()

	r.welcomeHost()
	go r.Loop()

	log.Info().Str("room", id).Str("conn", host.ID()).Int("capacity", capacity).Msg("room created")
	return id, domain.Red, nil
}

func (l *Lobby) JoinRoom(ctx context.Context, roomID string, p Player, name string) (domain.Color, error) {
	name, err := normalizeName(name)
	if err != nil {
		return 0, err
	}
	r, ok := l.room(roomID)
	if !ok {
		return 0, domain.ErrRoomNotFound
	}
	return r.RequestJoin(ctx, p, name)
}

// Dispatch queues a start, roll or move command on the room's loop.
func (l *Lobby) Dispatch(ctx context.Context, roomID string, env ClientPacketEnvelope) error {
	r, ok := l.room(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	return r.Send(ctx, env)
}

func (l *Lobby) RemovePlayer(roomID string, color domain.Color, playerID string) {
	r, ok := l.room(roomID)
	if !ok {
		return
	}
	r.RequestRemoval(color, playerID)
}

func (l *Lobby) Snapshot(ctx context.Context, roomID string) (RoomSnapshot, error) {
	r, ok := l.room(roomID)
	if !ok {
		return RoomSnapshot{}, domain.ErrRoomNotFound
	}
	return r.Snapshot(ctx)
}

// Rooms lists every live room ordered by id.
func (l *Lobby) Rooms() []RoomDescription {
	l.locker.RLock()
	descs := make([]RoomDescription, 0, len(l.descriptions))
	for _, d := range l.descriptions {
		descs = append(descs, d)
	}
	l.locker.RUnlock()

	slices.SortFunc(descs, func(a, b RoomDescription) int {
		return strings.Compare(a.ID, b.ID)
	})
	return descs
}

func (l *Lobby) UpdateDescription(desc RoomDescription) {
	l.locker.Lock()
	defer l.locker.Unlock()
	if _, ok := l.rooms[desc.ID]; ok {
		l.descriptions[desc.ID] = desc
	}
}

func (l *Lobby) RemoveRoom(roomID string) {
	l.locker.Lock()
	defer l.locker.Unlock()
	delete(l.rooms, roomID)
	delete(l.descriptions, roomID)
	l.idGenerator.Dispose(roomID)
}
