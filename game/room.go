package game

import (
	"time"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/rs/zerolog/log"
)

const (
	MinPlayers = 2
	MaxPlayers = domain.ColorsCount
)

type seat struct {
	player Player
	name   string
	color  domain.Color
}

type roomJoinRequest struct {
	player Player
	name   string
	reply  chan joinResult
}

type joinResult struct {
	color domain.Color
	err   error
}

type removalRequest struct {
	color    domain.Color
	playerID string
}

// ClientPacketEnvelope carries a command together with the seat that sent it.
type ClientPacketEnvelope struct {
	packet ClientPacket
	from   Player
	color  domain.Color
}

type RoomDescription struct {
	ID           string `json:"roomId"`
	PlayersCount int    `json:"playersCount"`
	Capacity     int    `json:"capacity"`
	Started      bool   `json:"started"`
}

type RoomSnapshot struct {
	RoomDescription
	Players   []PlayerInfo      `json:"players"`
	GameState *domain.GameState `json:"gameState"`
}

type roomOptions struct {
	registry     roomRegistry
	timers       TimerCreator
	dice         domain.DiceRoller
	forfeitDelay time.Duration
}

type Room struct {
	// Identity / metadata
	id       string
	capacity int
	hostID   string

	// Players, kept in color order
	seats []*seat

	// Runtime state
	match        *domain.Match
	forfeitTimer <-chan time.Time
	forfeitSeq   uint64

	// Dependencies
	registry     roomRegistry
	timers       TimerCreator
	dice         domain.DiceRoller
	forfeitDelay time.Duration

	// Communication
	inbox            chan ClientPacketEnvelope
	joinRequests     chan roomJoinRequest
	removalRequests  chan removalRequest
	snapshotRequests chan chan RoomSnapshot
	done             chan struct{}
}

func NewRoom(id string, capacity int, host Player, hostName string, opts roomOptions) *Room {
	r := &Room{
		id:               id,
		capacity:         capacity,
		hostID:           host.ID(),
		seats:            make([]*seat, 0, capacity),
		registry:         opts.registry,
		timers:           opts.timers,
		dice:             opts.dice,
		forfeitDelay:     opts.forfeitDelay,
		inbox:            make(chan ClientPacketEnvelope, 256),
		joinRequests:     make(chan roomJoinRequest),
		removalRequests:  make(chan removalRequest, 64),
		snapshotRequests: make(chan chan RoomSnapshot),
		done:             make(chan struct{}),
	}
	r.seats = append(r.seats, &seat{player: host, name: hostName, color: domain.Red})
	return r
}

func (r *Room) Description() RoomDescription {
	return RoomDescription{
		ID:           r.id,
		PlayersCount: len(r.seats),
		Capacity:     r.capacity,
		Started:      r.match != nil,
	}
}

func (r *Room) players() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(r.seats))
	for _, s := range r.seats {
		infos = append(infos, PlayerInfo{Name: s.name, Color: s.color, IsHost: s.player.ID() == r.hostID})
	}
	return infos
}

func (r *Room) snapshot() RoomSnapshot {
	snap := RoomSnapshot{RoomDescription: r.Description(), Players: r.players()}
	if r.match != nil {
		gs := r.match.Snapshot()
		snap.GameState = &gs
	}
	return snap
}

func (r *Room) seatOf(color domain.Color) (int, *seat) {
	for i, s := range r.seats {
		if s.color == color {
			return i, s
		}
	}
	return -1, nil
}

func (r *Room) nextFreeColor() domain.Color {
	for _, c := range domain.AllColors {
		if _, s := r.seatOf(c); s == nil {
			return c
		}
	}
	return domain.Yellow
}

func (r *Room) broadcast(data []byte) {
	for _, s := range r.seats {
		r.sendTo(s.player, data)
	}
}

func (r *Room) sendTo(p Player, data []byte) {
	if err := p.Send(data); err != nil {
		log.Warn().Err(err).Str("room", r.id).Str("conn", p.ID()).Msg("failed to queue packet")
	}
}

func (r *Room) reject(p Player, err error) {
	log.Debug().Err(err).Str("room", r.id).Str("conn", p.ID()).Msg("command rejected")
	r.sendTo(p, MakePacketError(err))
}

func (r *Room) publishDescription() {
	if r.registry != nil {
		r.registry.UpdateDescription(r.Description())
	}
}

// welcomeHost greets the creator before the room loop starts.
func (r *Room) welcomeHost() {
	host := r.seats[0]
	r.sendTo(host.player, MakePacketRoomCreated(r.id, host.color))
	r.sendTo(host.player, MakePacketPlayerJoined(r.players()))
}

func (r *Room) handleJoinRequest(req roomJoinRequest) {
	color, err := r.addPlayer(req.player, req.name)
	req.reply <- joinResult{color: color, err: err}
}

func (r *Room) addPlayer(p Player, name string) (domain.Color, error) {
	if r.match != nil {
		return 0, domain.ErrGameAlreadyStarted
	}
	if len(r.seats) >= r.capacity {
		return 0, domain.ErrRoomFull
	}

	color := r.nextFreeColor()
	joined := &seat{player: p, name: name, color: color}
	// keep seats in color order so seating order and turn order agree
	at := len(r.seats)
	for i, s := range r.seats {
		if s.color > color {
			at = i
			break
		}
	}
	r.seats = append(r.seats, nil)
	copy(r.seats[at+1:], r.seats[at:])
	r.seats[at] = joined

	log.Info().Str("room", r.id).Str("conn", p.ID()).Stringer("color", color).Msg("player joined")

	r.sendTo(p, MakePacketRoomJoined(r.id, color))
	r.broadcast(MakePacketPlayerJoined(r.players()))
	r.publishDescription()
	return color, nil
}

// handleRemovePlayer frees a seat and reports whether the room is now empty.
func (r *Room) handleRemovePlayer(req removalRequest) bool {
	i, s := r.seatOf(req.color)
	if s == nil || s.player.ID() != req.playerID {
		return len(r.seats) == 0
	}
	r.seats = append(r.seats[:i], r.seats[i+1:]...)
	log.Info().Str("room", r.id).Str("conn", req.playerID).Stringer("color", req.color).Msg("player left")

	if len(r.seats) == 0 {
		return true
	}
	if s.player.ID() == r.hostID {
		r.hostID = r.seats[0].player.ID()
		log.Info().Str("room", r.id).Str("conn", r.hostID).Msg("host transferred")
	}
	r.broadcast(MakePacketPlayerLeft(r.players()))
	r.publishDescription()
	return false
}

func (r *Room) handleEnvelope(env ClientPacketEnvelope) {
	if _, s := r.seatOf(env.color); s == nil || s.player.ID() != env.from.ID() {
		r.reject(env.from, domain.ErrNotSeated)
		return
	}

	var err error
	switch env.packet.Type {
	case CmdStartGame:
		err = r.handleStartGame(env.from)
	case CmdRollDice:
		err = r.handleRollDice(env.color)
	case CmdMoveToken:
		err = r.handleMoveToken(env.color, *env.packet.TokenID)
	default:
		err = ErrUnknownCommand
	}
	if err != nil {
		r.reject(env.from, err)
	}
}

func (r *Room) handleStartGame(from Player) error {
	if from.ID() != r.hostID {
		return domain.ErrNotHost
	}
	if r.match != nil {
		return domain.ErrGameAlreadyStarted
	}
	if len(r.seats) < MinPlayers {
		return domain.ErrNotEnoughPlayers
	}

	participants := make([]domain.Participant, 0, len(r.seats))
	for _, s := range r.seats {
		participants = append(participants, domain.Participant{Color: s.color, Name: s.name})
	}
	match, err := domain.NewMatch(participants, r.dice)
	if err != nil {
		return err
	}
	r.match = match

	log.Info().Str("room", r.id).Int("players", len(r.seats)).Msg("game started")
	r.broadcast(MakePacketGameStarted(match.Snapshot(), r.players()))
	r.publishDescription()
	return nil
}

func (r *Room) handleRollDice(color domain.Color) error {
	if r.match == nil {
		return domain.ErrGameNotStarted
	}
	value, err := r.match.RollDice(color)
	if err != nil {
		return err
	}
	r.broadcast(MakePacketDiceRolled(value, r.match.CurrentTurn()))

	r.forfeitSeq = r.match.RollSeq()
	r.forfeitTimer = r.timers.Create(r.forfeitDelay)
	return nil
}

func (r *Room) handleMoveToken(color domain.Color, tokenID int) error {
	if r.match == nil {
		return domain.ErrGameNotStarted
	}
	res, err := r.match.MoveToken(color, tokenID)
	if err != nil {
		return err
	}
	// the move resolved the roll, a pending forfeit check is moot
	r.forfeitTimer = nil

	gs := r.match.Snapshot()
	r.broadcast(MakePacketTokenMoved(res, gs))
	switch {
	case res.GameOver:
		log.Info().Str("room", r.id).Stringer("winner", res.Color).Msg("game over")
		r.broadcast(MakePacketGameOver(res.Color))
	case res.TurnChanged:
		r.broadcast(MakePacketTurnChanged(gs))
	}
	return nil
}

func (r *Room) handleForfeitCheck() {
	r.forfeitTimer = nil
	if r.match == nil || !r.match.ForfeitIfStuck(r.forfeitSeq) {
		return
	}
	log.Debug().Str("room", r.id).Stringer("turn", r.match.CurrentTurn()).Msg("turn forfeited")
	r.broadcast(MakePacketTurnChanged(r.match.Snapshot()))
}
