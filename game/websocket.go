package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait     = time.Minute
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	closeWait    = 20 * time.Second

	maxMessageSize = 4096
)

type websocketConnection struct {
	socket *websocket.Conn
	// gorilla allows a single concurrent writer
	writeLock sync.Mutex
}

func (wc *websocketConnection) Write(data []byte) error {
	wc.writeLock.Lock()
	defer wc.writeLock.Unlock()
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.TextMessage, data)
}

func (wc *websocketConnection) Ping() error {
	wc.writeLock.Lock()
	defer wc.writeLock.Unlock()
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.PingMessage, nil)
}

func (wc *websocketConnection) Read() ([]byte, error) {
	_, p, err := wc.socket.ReadMessage()
	return p, err
}

func (wc *websocketConnection) Close(errCode string) {
	wc.writeLock.Lock()
	wc.socket.SetWriteDeadline(time.Now().Add(closeWait))
	wc.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, errCode))
	wc.writeLock.Unlock()
	wc.socket.Close()
}

func NewWebsocketConnection(conn *websocket.Conn) *websocketConnection {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &websocketConnection{socket: conn}
}
