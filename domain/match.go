package domain

import (
	"fmt"
	"math/rand/v2"
)

// Position is a token's progress relative to its color's entry cell.
// 0..51 is the shared ring, 52..56 the private home stretch.
type Position int

const (
	InBase   Position = -1
	Finished Position = FinishStep
)

func (p Position) OnRing() bool {
	return p >= 0 && p < RingSize
}

func (p Position) InHomeStretch() bool {
	return p >= HomeStretchStart && p < FinishStep
}

// InPlay reports whether the token is on the board (ring or home stretch).
func (p Position) InPlay() bool {
	return p.OnRing() || p.InHomeStretch()
}

type Token struct {
	ID       int
	Position Position
}

type DiceRoller interface {
	Roll() int
}

// DiceFunc adapts a function to DiceRoller.
type DiceFunc func() int

func (f DiceFunc) Roll() int { return f() }

type RandomDice struct{}

func (RandomDice) Roll() int { return rand.IntN(6) + 1 }

// Participant is a color and display name handed to NewMatch in seating order.
type Participant struct {
	Color Color
	Name  string
}

type player struct {
	name   string
	score  int
	tokens [TokensPerColor]Token
}

// Match holds the authoritative state of one game. It is not safe for
// concurrent use; the owning room serializes every call.
type Match struct {
	colors      []Color
	players     [ColorsCount]*player
	currentTurn Color
	dice        int
	rollSeq     uint64
	gameOver    bool
	winner      Color
	roller      DiceRoller
}

type CapturedToken struct {
	Color   Color `json:"color"`
	TokenID int   `json:"tokenId"`
}

type MoveResult struct {
	Color       Color
	TokenID     int
	From        Position
	To          Position
	Dice        int
	Captured    []CapturedToken
	Finished    bool
	TurnChanged bool
	GameOver    bool
}

// NewMatch starts a match with every token in base and the first
// participant to play.
func NewMatch(participants []Participant, roller DiceRoller) (*Match, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if len(participants) > ColorsCount {
		return nil, ErrCapacityOutOfRange
	}
	if roller == nil {
		roller = RandomDice{}
	}

	m := &Match{
		colors:      make([]Color, 0, len(participants)),
		currentTurn: participants[0].Color,
		roller:      roller,
	}
	for _, p := range participants {
		if !p.Color.Valid() {
			return nil, fmt.Errorf("invalid color %d", uint8(p.Color))
		}
		if m.players[p.Color] != nil {
			return nil, fmt.Errorf("color %s seated twice", p.Color)
		}
		pl := &player{name: p.Name}
		for i := range pl.tokens {
			pl.tokens[i] = Token{ID: i, Position: InBase}
		}
		m.players[p.Color] = pl
		m.colors = append(m.colors, p.Color)
	}
	return m, nil
}

func (m *Match) Colors() []Color {
	return append([]Color(nil), m.colors...)
}

func (m *Match) CurrentTurn() Color {
	return m.currentTurn
}

// Dice returns the pending dice value, if any.
func (m *Match) Dice() (int, bool) {
	return m.dice, m.dice != 0
}

// RollSeq increments on every accepted roll.
func (m *Match) RollSeq() uint64 {
	return m.rollSeq
}

func (m *Match) GameOver() bool {
	return m.gameOver
}

func (m *Match) Winner() (Color, bool) {
	return m.winner, m.gameOver
}

func (m *Match) Score(color Color) int {
	if pl := m.player(color); pl != nil {
		return pl.score
	}
	return 0
}

func (m *Match) Token(color Color, id int) (Token, bool) {
	pl := m.player(color)
	if pl == nil || id < 0 || id >= TokensPerColor {
		return Token{}, false
	}
	return pl.tokens[id], true
}

func (m *Match) player(color Color) *player {
	if !color.Valid() {
		return nil
	}
	return m.players[color]
}

func (m *Match) checkTurn(actor Color) error {
	if m.gameOver {
		return ErrGameOver
	}
	if actor != m.currentTurn {
		return ErrNotYourTurn
	}
	return nil
}

func (m *Match) RollDice(actor Color) (int, error) {
	if err := m.checkTurn(actor); err != nil {
		return 0, err
	}
	if m.dice != 0 {
		return 0, ErrRollAlreadyPending
	}
	value := m.roller.Roll()
	if value < 1 || value > 6 {
		return 0, fmt.Errorf("dice roller returned %d", value)
	}
	m.dice = value
	m.rollSeq++
	return value, nil
}

func canAdvance(p Position, dice int) bool {
	switch {
	case p == InBase:
		return dice == 6
	case p.InPlay():
		return int(p)+dice <= FinishStep
	}
	return false
}

// CanMove reports whether one token may move by dice.
func (m *Match) CanMove(color Color, tokenID, dice int) bool {
	tok, ok := m.Token(color, tokenID)
	return ok && canAdvance(tok.Position, dice)
}

func (m *Match) HasLegalMove(color Color, dice int) bool {
	pl := m.player(color)
	if pl == nil {
		return false
	}
	for _, tok := range pl.tokens {
		if canAdvance(tok.Position, dice) {
			return true
		}
	}
	return false
}

func (m *Match) MoveToken(actor Color, tokenID int) (MoveResult, error) {
	if err := m.checkTurn(actor); err != nil {
		return MoveResult{}, err
	}
	if m.dice == 0 {
		return MoveResult{}, ErrNoDicePending
	}
	if !m.CanMove(actor, tokenID, m.dice) {
		return MoveResult{}, ErrIllegalMove
	}

	pl := m.players[actor]
	tok := &pl.tokens[tokenID]
	dice := m.dice
	m.dice = 0

	res := MoveResult{Color: actor, TokenID: tokenID, From: tok.Position, Dice: dice}
	switch next := tok.Position + Position(dice); {
	case tok.Position == InBase:
		tok.Position = 0
		res.Captured = m.resolveCapture(actor, tok.Position)
	case next == Finished:
		tok.Position = Finished
		pl.score++
		res.Finished = true
	default:
		tok.Position = next
		res.Captured = m.resolveCapture(actor, tok.Position)
	}
	res.To = tok.Position

	if pl.score == TokensPerColor {
		m.gameOver = true
		m.winner = actor
		res.GameOver = true
		return res, nil
	}
	if dice != 6 {
		m.AdvanceTurn()
		res.TurnChanged = true
	}
	return res, nil
}

// resolveCapture sends every opposing token sharing the mover's non-safe
// ring cell back to base.
func (m *Match) resolveCapture(mover Color, at Position) []CapturedToken {
	idx, ok := RingIndex(mover, at)
	if !ok || IsSafeCell(idx) {
		return nil
	}
	var captured []CapturedToken
	for _, c := range m.colors {
		if c == mover {
			continue
		}
		pl := m.players[c]
		for i := range pl.tokens {
			other, ok := RingIndex(c, pl.tokens[i].Position)
			if ok && other == idx {
				pl.tokens[i].Position = InBase
				captured = append(captured, CapturedToken{Color: c, TokenID: i})
			}
		}
	}
	return captured
}

// AdvanceTurn passes the turn to the next color in seating order.
func (m *Match) AdvanceTurn() {
	m.dice = 0
	for i, c := range m.colors {
		if c == m.currentTurn {
			m.currentTurn = m.colors[(i+1)%len(m.colors)]
			return
		}
	}
}

// ForfeitIfStuck passes the turn when the roll identified by seq is still
// pending and the current color cannot use it.
func (m *Match) ForfeitIfStuck(seq uint64) bool {
	if m.gameOver || m.dice == 0 || seq != m.rollSeq {
		return false
	}
	if m.HasLegalMove(m.currentTurn, m.dice) {
		return false
	}
	m.AdvanceTurn()
	return true
}
