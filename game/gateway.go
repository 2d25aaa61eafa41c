package game

import (
	"context"
	"errors"
	"sync"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/rs/zerolog/log"
)

const defaultPlayerCount = 2

type RoomManager interface {
	CreateRoom(host Player, name string, capacity int) (string, domain.Color, error)
	JoinRoom(ctx context.Context, roomID string, p Player, name string) (domain.Color, error)
	Dispatch(ctx context.Context, roomID string, env ClientPacketEnvelope) error
	RemovePlayer(roomID string, color domain.Color, playerID string)
}

// SeatRef is where a connection sits.
type SeatRef struct {
	RoomID string
	Color  domain.Color
}

// Gateway routes decoded commands from connections to rooms and remembers
// which seat each connection holds.
type Gateway struct {
	lobby RoomManager

	locker   sync.Mutex
	sessions map[string]SeatRef
}

func NewGateway(lobby RoomManager) *Gateway {
	return &Gateway{
		lobby:    lobby,
		sessions: make(map[string]SeatRef),
	}
}

func (g *Gateway) seatOf(connID string) (SeatRef, bool) {
	g.locker.Lock()
	defer g.locker.Unlock()
	ref, ok := g.sessions[connID]
	return ref, ok
}

func (g *Gateway) bind(connID string, ref SeatRef) {
	g.locker.Lock()
	g.sessions[connID] = ref
	g.locker.Unlock()
}

func (g *Gateway) unbind(connID string) (SeatRef, bool) {
	g.locker.Lock()
	defer g.locker.Unlock()
	ref, ok := g.sessions[connID]
	delete(g.sessions, connID)
	return ref, ok
}

// Sessions reports how many connections currently hold a seat.
func (g *Gateway) Sessions() int {
	g.locker.Lock()
	defer g.locker.Unlock()
	return len(g.sessions)
}

func (g *Gateway) reply(p Player, err error) {
	log.Debug().Err(err).Str("conn", p.ID()).Msg("command rejected")
	if sendErr := p.Send(MakePacketError(err)); sendErr != nil {
		log.Warn().Err(sendErr).Str("conn", p.ID()).Msg("failed to queue packet")
	}
}

func (g *Gateway) HandlePacket(ctx context.Context, p Player, data []byte) {
	packet, err := DecodeClientPacket(data)
	if err != nil {
		log.Warn().Err(err).Str("conn", p.ID()).Msg("dropping client packet")
		return
	}

	switch packet.Type {
	case CmdCreateRoom:
		g.createRoom(p, packet)
	case CmdJoinRoom:
		g.joinRoom(ctx, p, packet)
	default:
		g.forward(ctx, p, packet)
	}
}

func (g *Gateway) createRoom(p Player, packet ClientPacket) {
	if _, seated := g.seatOf(p.ID()); seated {
		g.reply(p, domain.ErrAlreadySeated)
		return
	}
	capacity := packet.PlayerCount
	if capacity == 0 {
		capacity = defaultPlayerCount
	}
	roomID, color, err := g.lobby.CreateRoom(p, packet.PlayerName, capacity)
	if err != nil {
		g.reply(p, err)
		return
	}
	g.bind(p.ID(), SeatRef{RoomID: roomID, Color: color})
}

func (g *Gateway) joinRoom(ctx context.Context, p Player, packet ClientPacket) {
	if _, seated := g.seatOf(p.ID()); seated {
		g.reply(p, domain.ErrAlreadySeated)
		return
	}
	color, err := g.lobby.JoinRoom(ctx, packet.RoomID, p, packet.PlayerName)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		g.reply(p, err)
		return
	}
	g.bind(p.ID(), SeatRef{RoomID: packet.RoomID, Color: color})
}

func (g *Gateway) forward(ctx context.Context, p Player, packet ClientPacket) {
	ref, seated := g.seatOf(p.ID())
	if !seated {
		g.reply(p, domain.ErrNotSeated)
		return
	}
	err := g.lobby.Dispatch(ctx, ref.RoomID, ClientPacketEnvelope{packet: packet, from: p, color: ref.Color})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRoomNotFound):
		g.unbind(p.ID())
		g.reply(p, err)
	case errors.Is(err, context.Canceled):
	default:
		g.reply(p, err)
	}
}

// Disconnect frees the seat held by p, if any.
func (g *Gateway) Disconnect(p Player) {
	ref, ok := g.unbind(p.ID())
	if !ok {
		return
	}
	log.Info().Str("conn", p.ID()).Str("room", ref.RoomID).Stringer("color", ref.Color).Msg("connection closed")
	g.lobby.RemovePlayer(ref.RoomID, ref.Color, p.ID())
}
