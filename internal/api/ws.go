package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationsHandler upgrades the connection and streams hub notifications
// (submission acknowledgments and verdicts) until the client goes away.
func (app *App) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	connection, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	connection.SetReadLimit(512)
	connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	connection.SetPongHandler(func(appData string) error {
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	app.Hub.Register(connection)
	defer app.Hub.Unregister(connection)

	for {
		if _, _, err := connection.ReadMessage(); err != nil {
			return
		}
	}
}
