package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/rs/zerolog/log"
)

type CommandType string

const (
	CmdCreateRoom CommandType = "create_room"
	CmdJoinRoom   CommandType = "join_room"
	CmdStartGame  CommandType = "start_game"
	CmdRollDice   CommandType = "roll_dice"
	CmdMoveToken  CommandType = "move_token"
)

// ClientPacket is one decoded client command.
type ClientPacket struct {
	Type        CommandType `json:"type"`
	PlayerName  string      `json:"playerName,omitempty"`
	PlayerCount int         `json:"playerCount,omitempty"`
	RoomID      string      `json:"roomId,omitempty"`
	TokenID     *int        `json:"tokenId,omitempty"`
}

func DecodeClientPacket(data []byte) (ClientPacket, error) {
	var p ClientPacket
	if err := json.Unmarshal(data, &p); err != nil {
		return ClientPacket{}, fmt.Errorf("%w: %w", ErrMalformedPacket, err)
	}
	switch p.Type {
	case CmdCreateRoom, CmdStartGame, CmdRollDice:
	case CmdJoinRoom:
		p.RoomID = strings.ToUpper(strings.TrimSpace(p.RoomID))
	case CmdMoveToken:
		if p.TokenID == nil {
			return ClientPacket{}, fmt.Errorf("%w: move_token without tokenId", ErrMalformedPacket)
		}
	default:
		return ClientPacket{}, fmt.Errorf("%w: %q", ErrUnknownCommand, p.Type)
	}
	return p, nil
}

type PlayerInfo struct {
	Name   string       `json:"name"`
	Color  domain.Color `json:"color"`
	IsHost bool         `json:"isHost"`
}

type roomCreatedPacket struct {
	Type   string       `json:"type"`
	RoomID string       `json:"roomId"`
	Color  domain.Color `json:"color"`
}

type playersPacket struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

type gameStartedPacket struct {
	Type      string           `json:"type"`
	GameState domain.GameState `json:"gameState"`
	Players   []PlayerInfo     `json:"players"`
}

type diceRolledPacket struct {
	Type        string       `json:"type"`
	DiceValue   int          `json:"diceValue"`
	CurrentTurn domain.Color `json:"currentTurn"`
}

type tokenMovedPacket struct {
	Type      string                 `json:"type"`
	Color     domain.Color           `json:"color"`
	TokenID   int                    `json:"tokenId"`
	DiceValue int                    `json:"diceValue"`
	Captured  []domain.CapturedToken `json:"captured,omitempty"`
	GameState domain.GameState       `json:"gameState"`
}

type turnChangedPacket struct {
	Type        string           `json:"type"`
	CurrentTurn domain.Color     `json:"currentTurn"`
	GameState   domain.GameState `json:"gameState"`
}

type gameOverPacket struct {
	Type   string       `json:"type"`
	Winner domain.Color `json:"winner"`
}

type errorPacket struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

var unexpectedErrorPacket = []byte(`{"type":"error","message":"Unexpected error"}`)

func marshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal server packet")
		return unexpectedErrorPacket
	}
	return data
}

func MakePacketRoomCreated(roomID string, color domain.Color) []byte {
	return marshal(roomCreatedPacket{Type: "room_created", RoomID: roomID, Color: color})
}

func MakePacketRoomJoined(roomID string, color domain.Color) []byte {
	return marshal(roomCreatedPacket{Type: "room_joined", RoomID: roomID, Color: color})
}

func MakePacketPlayerJoined(players []PlayerInfo) []byte {
	return marshal(playersPacket{Type: "player_joined", Players: players})
}

func MakePacketPlayerLeft(players []PlayerInfo) []byte {
	return marshal(playersPacket{Type: "player_left", Players: players})
}

func MakePacketGameStarted(gs domain.GameState, players []PlayerInfo) []byte {
	return marshal(gameStartedPacket{Type: "game_started", GameState: gs, Players: players})
}

func MakePacketDiceRolled(value int, currentTurn domain.Color) []byte {
	return marshal(diceRolledPacket{Type: "dice_rolled", DiceValue: value, CurrentTurn: currentTurn})
}

func MakePacketTokenMoved(res domain.MoveResult, gs domain.GameState) []byte {
	return marshal(tokenMovedPacket{
		Type:      "token_moved",
		Color:     res.Color,
		TokenID:   res.TokenID,
		DiceValue: res.Dice,
		Captured:  res.Captured,
		GameState: gs,
	})
}

func MakePacketTurnChanged(gs domain.GameState) []byte {
	return marshal(turnChangedPacket{Type: "turn_changed", CurrentTurn: gs.CurrentTurn, GameState: gs})
}

func MakePacketGameOver(winner domain.Color) []byte {
	return marshal(gameOverPacket{Type: "game_over", Winner: winner})
}

func MakePacketError(err error) []byte {
	return marshal(errorPacket{Type: "error", Message: domain.Message(err)})
}
