package game

import (
	"encoding/json"
	"testing"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClientPacket(t *testing.T) {
	t.Parallel()
	two := 2
	testCases := []struct {
		name     string
		data     string
		expected ClientPacket
		err      error
	}{
		{
			name:     "create room",
			data:     `{"type":"create_room","playerName":"alice","playerCount":3}`,
			expected: ClientPacket{Type: CmdCreateRoom, PlayerName: "alice", PlayerCount: 3},
		},
		{
			name:     "join room normalizes the id",
			data:     `{"type":"join_room","playerName":"bob","roomId":" ab12cd "}`,
			expected: ClientPacket{Type: CmdJoinRoom, PlayerName: "bob", RoomID: "AB12CD"},
		},
		{name: "start", data: `{"type":"start_game"}`, expected: ClientPacket{Type: CmdStartGame}},
		{name: "roll", data: `{"type":"roll_dice"}`, expected: ClientPacket{Type: CmdRollDice}},
		{name: "move", data: `{"type":"move_token","tokenId":2}`, expected: ClientPacket{Type: CmdMoveToken, TokenID: &two}},
		{name: "move without token", data: `{"type":"move_token"}`, err: ErrMalformedPacket},
		{name: "garbage", data: `not json`, err: ErrMalformedPacket},
		{name: "wrong field type", data: `{"type":"create_room","playerCount":"four"}`, err: ErrMalformedPacket},
		{name: "unknown type", data: `{"type":"chat"}`, err: ErrUnknownCommand},
		{name: "missing type", data: `{}`, err: ErrUnknownCommand},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeClientPacket([]byte(tc.data))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestServerPackets(t *testing.T) {
	t.Parallel()
	players := []PlayerInfo{{Name: "alice", Color: domain.Red, IsHost: true}, {Name: "bob", Color: domain.Blue}}
	dice := 3

	testCases := []struct {
		name     string
		packet   []byte
		expected string
	}{
		{
			name:     "room created",
			packet:   MakePacketRoomCreated("AB12CD", domain.Red),
			expected: `{"type":"room_created","roomId":"AB12CD","color":"red"}`,
		},
		{
			name:     "room joined",
			packet:   MakePacketRoomJoined("AB12CD", domain.Yellow),
			expected: `{"type":"room_joined","roomId":"AB12CD","color":"yellow"}`,
		},
		{
			name:   "player joined",
			packet: MakePacketPlayerJoined(players),
			expected: `{"type":"player_joined","players":[
				{"name":"alice","color":"red","isHost":true},
				{"name":"bob","color":"blue","isHost":false}]}`,
		},
		{
			name:     "player left",
			packet:   MakePacketPlayerLeft(players[:1]),
			expected: `{"type":"player_left","players":[{"name":"alice","color":"red","isHost":true}]}`,
		},
		{
			name:     "dice rolled",
			packet:   MakePacketDiceRolled(5, domain.Green),
			expected: `{"type":"dice_rolled","diceValue":5,"currentTurn":"green"}`,
		},
		{
			name:     "game over",
			packet:   MakePacketGameOver(domain.Blue),
			expected: `{"type":"game_over","winner":"blue"}`,
		},
		{
			name:     "known error",
			packet:   MakePacketError(domain.ErrNotYourTurn),
			expected: `{"type":"error","message":"Not your turn"}`,
		},
		{
			name:     "unknown error",
			packet:   MakePacketError(assert.AnError),
			expected: `{"type":"error","message":"Unexpected error"}`,
		},
		{
			name: "turn changed",
			packet: MakePacketTurnChanged(domain.GameState{
				Players:     map[domain.Color]domain.PlayerState{},
				Colors:      []domain.Color{domain.Red, domain.Blue},
				CurrentTurn: domain.Blue,
				DiceValue:   &dice,
			}),
			expected: `{"type":"turn_changed","currentTurn":"blue","gameState":{
				"players":{},"colors":["red","blue"],"currentTurn":"blue",
				"diceValue":3,"gameOver":false,"winner":null}}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.JSONEq(t, tc.expected, string(tc.packet))
		})
	}
}

func TestTokenMovedPacket(t *testing.T) {
	t.Parallel()
	res := domain.MoveResult{
		Color:    domain.Green,
		TokenID:  1,
		Dice:     4,
		Captured: []domain.CapturedToken{{Color: domain.Red, TokenID: 3}},
	}
	var packet map[string]any
	require.NoError(t, json.Unmarshal(MakePacketTokenMoved(res, domain.GameState{}), &packet))

	assert.Equal(t, "token_moved", packet["type"])
	assert.Equal(t, "green", packet["color"])
	assert.Equal(t, float64(1), packet["tokenId"])
	assert.Equal(t, float64(4), packet["diceValue"])
	assert.Equal(t, []any{map[string]any{"color": "red", "tokenId": float64(3)}}, packet["captured"])
	assert.Contains(t, packet, "gameState")
}

func TestMarshalFailureFallsBack(t *testing.T) {
	t.Parallel()
	assert.Equal(t, unexpectedErrorPacket, MakePacketGameOver(domain.Color(9)))
}
