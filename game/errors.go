package game

import "errors"

var (
	ErrMalformedPacket = errors.New("malformed-packet")
	ErrUnknownCommand  = errors.New("unknown-command")
)

var (
	ErrSendBufferFull   = errors.New("send-buffer-full")
	ErrConnectionClosed = errors.New("connection-closed")
)
