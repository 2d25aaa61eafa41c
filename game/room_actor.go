package game

import (
	"context"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/rs/zerolog/log"
)

// Loop owns every mutation of the room. It returns once the last seat is
// vacated, after unregistering the room from the lobby.
func (r *Room) Loop() {
	defer close(r.done)

	for {
		select {
		case env := <-r.inbox:
			r.handleEnvelope(env)

		case req := <-r.joinRequests:
			r.handleJoinRequest(req)

		case req := <-r.removalRequests:
			if r.handleRemovePlayer(req) {
				if r.registry != nil {
					r.registry.RemoveRoom(r.id)
				}
				log.Info().Str("room", r.id).Msg("room closed")
				return
			}

		case resp := <-r.snapshotRequests:
			resp <- r.snapshot()

		case <-r.forfeitTimer:
			r.handleForfeitCheck()
		}
	}
}

func (r *Room) RequestJoin(ctx context.Context, p Player, name string) (domain.Color, error) {
	req := roomJoinRequest{player: p, name: name, reply: make(chan joinResult, 1)}
	select {
	case r.joinRequests <- req:
	case <-r.done:
		return 0, domain.ErrRoomNotFound
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	res := <-req.reply
	return res.color, res.err
}

// Send queues env on the room's inbox. A closed room is reported as
// ErrRoomNotFound even though its buffered inbox could still accept env.
func (r *Room) Send(ctx context.Context, env ClientPacketEnvelope) error {
	select {
	case <-r.done:
		return domain.ErrRoomNotFound
	default:
	}
	select {
	case r.inbox <- env:
		return nil
	case <-r.done:
		return domain.ErrRoomNotFound
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Room) RequestRemoval(color domain.Color, playerID string) {
	select {
	case <-r.done:
		return
	default:
	}
	select {
	case r.removalRequests <- removalRequest{color: color, playerID: playerID}:
	case <-r.done:
	}
}

func (r *Room) Snapshot(ctx context.Context) (RoomSnapshot, error) {
	resp := make(chan RoomSnapshot, 1)
	select {
	case r.snapshotRequests <- resp:
	case <-r.done:
		return RoomSnapshot{}, domain.ErrRoomNotFound
	case <-ctx.Done():
		return RoomSnapshot{}, ctx.Err()
	}
	return <-resp, nil
}
