package domain

import "errors"

// Room errors
var (
	ErrRoomNotFound       = errors.New("room-not-found")
	ErrRoomFull           = errors.New("room-full")
	ErrGameAlreadyStarted = errors.New("game-already-started")
	ErrNotHost            = errors.New("not-host")
	ErrNotEnoughPlayers   = errors.New("not-enough-players")
	ErrCapacityOutOfRange = errors.New("capacity-out-of-range")
	ErrInvalidName        = errors.New("invalid-name")
)

// Turn errors
var (
	ErrGameNotStarted     = errors.New("game-not-started")
	ErrGameOver           = errors.New("game-over")
	ErrNotYourTurn        = errors.New("not-your-turn")
	ErrRollAlreadyPending = errors.New("roll-already-pending")
	ErrNoDicePending      = errors.New("no-dice-pending")
	ErrIllegalMove        = errors.New("illegal-move")
)

// Session errors
var (
	ErrAlreadySeated = errors.New("already-seated")
	ErrNotSeated     = errors.New("not-seated")
)

var messages = map[error]string{
	ErrRoomNotFound:       "Room not found",
	ErrRoomFull:           "Room is full",
	ErrGameAlreadyStarted: "Game already started",
	ErrNotHost:            "Only the host can start the game",
	ErrNotEnoughPlayers:   "At least 2 players are needed to start",
	ErrCapacityOutOfRange: "Player count must be between 2 and 4",
	ErrInvalidName:        "Player name must be 1 to 20 characters",
	ErrGameNotStarted:     "Game has not started",
	ErrGameOver:           "Game is over",
	ErrNotYourTurn:        "Not your turn",
	ErrRollAlreadyPending: "You already rolled, move a token",
	ErrNoDicePending:      "Roll the dice first",
	ErrIllegalMove:        "That token cannot move",
	ErrAlreadySeated:      "You are already in a room",
	ErrNotSeated:          "You are not in a room",
}

// Message returns the human readable text sent to clients for err.
func Message(err error) string {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return "Unexpected error"
}
