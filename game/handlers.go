package game

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// RoomLister is the read side of the lobby served over HTTP.
type RoomLister interface {
	Rooms() []RoomDescription
	Snapshot(ctx context.Context, roomID string) (RoomSnapshot, error)
}

type GameHandler struct {
	rooms    RoomLister
	gateway  PacketHandler
	upgrader websocket.Upgrader

	pingInterval time.Duration
}

func NewGameHandler(rooms RoomLister, gateway PacketHandler) *GameHandler {
	return &GameHandler{
		rooms:   rooms,
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origins are enforced by the server middleware
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingInterval: pingInterval,
	}
}

func (h *GameHandler) WebsocketHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(uuid.NewString(), NewWebsocketConnection(conn))
	log.Debug().Str("conn", client.ID()).Str("ip", ctx.ClientIP()).Msg("connection opened")

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	go client.WritePump(ticker.C)
	client.ReadPump(h.gateway)
}

func (h *GameHandler) ListRoomsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"rooms": h.rooms.Rooms()})
}

func (h *GameHandler) RoomHandler(ctx *gin.Context) {
	roomID := strings.ToUpper(ctx.Param("id"))
	snap, err := h.rooms.Snapshot(ctx.Request.Context(), roomID)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, snap)
	case errors.Is(err, domain.ErrRoomNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": domain.ErrRoomNotFound.Error()})
	default:
		log.Error().Err(err).Str("room", roomID).Msg("room snapshot failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
	}
}
