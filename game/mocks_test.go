package game

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- NetworkSession ---

type MockWebsocketConnection struct {
	mock.Mock
}

func (m *MockWebsocketConnection) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockWebsocketConnection) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockWebsocketConnection) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockWebsocketConnection) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueIdGenerator) Dispose(id string) {
	m.Called(id)
}

// --- TimerCreator ---

type MockTimerCreator struct {
	mock.Mock
}

func (m *MockTimerCreator) Create(d time.Duration) <-chan time.Time {
	args := m.Called(d)
	return args.Get(0).(chan time.Time)
}

// --- roomRegistry ---

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) UpdateDescription(desc RoomDescription) {
	m.Called(desc)
}

func (m *MockRegistry) RemoveRoom(roomID string) {
	m.Called(roomID)
}

// --- RoomManager ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) CreateRoom(host Player, name string, capacity int) (string, domain.Color, error) {
	args := m.Called(host, name, capacity)
	return args.String(0), args.Get(1).(domain.Color), args.Error(2)
}

func (m *MockLobby) JoinRoom(ctx context.Context, roomID string, p Player, name string) (domain.Color, error) {
	args := m.Called(ctx, roomID, p, name)
	return args.Get(0).(domain.Color), args.Error(1)
}

func (m *MockLobby) Dispatch(ctx context.Context, roomID string, env ClientPacketEnvelope) error {
	args := m.Called(ctx, roomID, env)
	return args.Error(0)
}

func (m *MockLobby) RemovePlayer(roomID string, color domain.Color, playerID string) {
	m.Called(roomID, color, playerID)
}

func (m *MockLobby) Rooms() []RoomDescription {
	args := m.Called()
	return args.Get(0).([]RoomDescription)
}

func (m *MockLobby) Snapshot(ctx context.Context, roomID string) (RoomSnapshot, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(RoomSnapshot), args.Error(1)
}

// --- PacketHandler ---

type MockPacketHandler struct {
	mock.Mock
}

func (m *MockPacketHandler) HandlePacket(ctx context.Context, p Player, data []byte) {
	m.Called(ctx, p, data)
}

func (m *MockPacketHandler) Disconnect(p Player) {
	m.Called(p)
}

// --- Player ---

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

// recordingPlayer keeps every packet it is sent, decoded.
type recordingPlayer struct {
	id     string
	locker sync.Mutex
	got    []map[string]any
	signal chan struct{}
}

func newRecordingPlayer(id string) *recordingPlayer {
	return &recordingPlayer{id: id, signal: make(chan struct{}, 1024)}
}

func (p *recordingPlayer) ID() string {
	return p.id
}

func (p *recordingPlayer) Send(data []byte) error {
	var packet map[string]any
	if err := json.Unmarshal(data, &packet); err != nil {
		return err
	}
	p.locker.Lock()
	p.got = append(p.got, packet)
	p.locker.Unlock()
	select {
	case p.signal <- struct{}{}:
	default:
	}
	return nil
}

// take returns and forgets everything received so far.
func (p *recordingPlayer) take() []map[string]any {
	p.locker.Lock()
	defer p.locker.Unlock()
	got := p.got
	p.got = nil
	return got
}

func (p *recordingPlayer) types() []string {
	got := p.take()
	types := make([]string, 0, len(got))
	for _, packet := range got {
		types = append(types, packet["type"].(string))
	}
	return types
}

// waitFor blocks until a packet of the given type arrives and returns it,
// discarding anything received before it.
func (p *recordingPlayer) waitFor(t *testing.T, packetType string) map[string]any {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		p.locker.Lock()
		for i, packet := range p.got {
			if packet["type"] == packetType {
				p.got = p.got[i+1:]
				p.locker.Unlock()
				return packet
			}
		}
		p.locker.Unlock()

		select {
		case <-p.signal:
		case <-deadline:
			require.FailNow(t, "timed out waiting for packet", packetType)
			return nil
		}
	}
}
