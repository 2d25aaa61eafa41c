package domain

type TokenState struct {
	ID       int  `json:"id"`
	Position int  `json:"position"`
	InBase   bool `json:"inBase"`
	IsHome   bool `json:"isHome"`
}

type PlayerState struct {
	Name   string       `json:"name"`
	Color  Color        `json:"color"`
	Score  int          `json:"score"`
	Tokens []TokenState `json:"tokens"`
}

// GameState is the full match snapshot carried by every state event.
type GameState struct {
	Players     map[Color]PlayerState `json:"players"`
	Colors      []Color               `json:"colors"`
	CurrentTurn Color                 `json:"currentTurn"`
	DiceValue   *int                  `json:"diceValue"`
	GameOver    bool                  `json:"gameOver"`
	Winner      *Color                `json:"winner"`
}

func (m *Match) Snapshot() GameState {
	gs := GameState{
		Players:     make(map[Color]PlayerState, len(m.colors)),
		Colors:      m.Colors(),
		CurrentTurn: m.currentTurn,
		GameOver:    m.gameOver,
	}
	if m.dice != 0 {
		dice := m.dice
		gs.DiceValue = &dice
	}
	if m.gameOver {
		winner := m.winner
		gs.Winner = &winner
	}
	for _, c := range m.colors {
		pl := m.players[c]
		ps := PlayerState{
			Name:   pl.name,
			Color:  c,
			Score:  pl.score,
			Tokens: make([]TokenState, 0, TokensPerColor),
		}
		for _, tok := range pl.tokens {
			ps.Tokens = append(ps.Tokens, TokenState{
				ID:       tok.ID,
				Position: int(tok.Position),
				InBase:   tok.Position == InBase,
				IsHome:   tok.Position == Finished,
			})
		}
		gs.Players[c] = ps
	}
	return gs
}
