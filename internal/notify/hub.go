package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Notification is one user-facing message pushed to connected browsers, e.g.
// the optimistic "Submission sent" acknowledgment or a judge verdict.
type Notification struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Color   string    `json:"color,omitempty"`
	Time    time.Time `json:"time"`
}

// Hub fans notifications out to every connected WebSocket client. Run must be
// started once; Notify never blocks and drops messages when the hub is
// saturated rather than stalling a submission flow.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Notification client connected. Total: %d", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Notification client disconnected. Total: %d", total)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					log.Printf("Error sending notification: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) Register(client *websocket.Conn) {
	h.register <- client
}

func (h *Hub) Unregister(client *websocket.Conn) {
	h.unregister <- client
}

// Notify implements dres.Notifier.
func (h *Hub) Notify(title, message, color string) {
	data, err := json.Marshal(Notification{
		Title:   title,
		Message: message,
		Color:   color,
		Time:    time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Error encoding notification: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("Notification dropped: hub saturated")
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
