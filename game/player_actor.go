package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ReadPump feeds every inbound frame to handler until the socket fails,
// then unseats the client and releases the connection.
func (c *Client) ReadPump(handler PacketHandler) {
	defer func() {
		handler.Disconnect(c)
		c.close("")
	}()

	for {
		data, err := c.socket.Read()
		if err != nil {
			log.Debug().Err(err).Str("conn", c.id).Msg("read failed")
			return
		}
		if !c.rateLimiter.Allow() {
			log.Warn().Str("conn", c.id).Msg("command dropped, rate limit exceeded")
			continue
		}
		handler.HandlePacket(c.ctx, c, data)
	}
}

// WritePump drains the outbox and pings on every tick of pings.
func (c *Client) WritePump(pings <-chan time.Time) {
	defer c.close("")

	for {
		select {
		case data := <-c.outbox:
			if err := c.socket.Write(data); err != nil {
				log.Debug().Err(err).Str("conn", c.id).Msg("write failed")
				return
			}
		case _, ok := <-pings:
			if !ok {
				return
			}
			if err := c.socket.Ping(); err != nil {
				log.Debug().Err(err).Str("conn", c.id).Msg("ping failed")
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
