package connectionhub

import (
	wsmodels "fleet-tools-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(userID string)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	clients map[string]clientSession //map[userID]
}

func (i *impl) DeleteClient(userID string) {
	sess, ok := i.clients[userID]
	if !ok {
		return
	}
	delete(i.clients, userID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	userID := msg.ToUserID
	sess, ok := i.clients[userID]
	if ok {
		sess.sendCh <- msg
	}
}

func (i *impl) SendClose(userID string) {
	sess, ok := i.clients[userID]
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	sess, ok := i.clients[userID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}
