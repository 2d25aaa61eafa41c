package game

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const (
	outboxSize   = 256
	commandRate  = 5
	commandBurst = 5
)

// PacketHandler receives everything a connection reads, in order.
type PacketHandler interface {
	HandlePacket(ctx context.Context, p Player, data []byte)
	Disconnect(p Player)
}

// Client is one websocket connection session. It is the Player rooms see.
type Client struct {
	id          string
	socket      NetworkSession
	rateLimiter *rate.Limiter
	outbox      chan []byte

	ctx       context.Context
	cancelCtx context.CancelFunc
	closeOnce sync.Once
}

func NewClient(id string, socket NetworkSession) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:          id,
		socket:      socket,
		rateLimiter: rate.NewLimiter(commandRate, commandBurst),
		outbox:      make(chan []byte, outboxSize),
		ctx:         ctx,
		cancelCtx:   cancel,
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send queues data for the write pump. It never blocks.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}
	select {
	case c.outbox <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) close(errCode string) {
	c.closeOnce.Do(func() {
		c.cancelCtx()
		c.socket.Close(errCode)
	})
}
