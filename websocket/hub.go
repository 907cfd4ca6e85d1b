package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Event types pushed to room subscribers.
const (
	EventMessageCreated = "message_created"
	EventMessageDeleted = "message_deleted"
	EventRoomUpdated    = "room_updated"
	EventRoomDeleted    = "room_deleted"
)

// Event is the frame written to subscribers.
type Event struct {
	Type    string      `json:"type"`
	RoomID  uint        `json:"room_id"`
	Payload interface{} `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Rooms mapping (roomID -> clients)
	rooms map[uint]map[*Client]bool

	// Guards clients and rooms
	mu sync.Mutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed once Run returns
	done chan struct{}
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint]map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, ok := h.rooms[client.roomID]; !ok {
				h.rooms[client.roomID] = make(map[*Client]bool)
			}
			h.rooms[client.roomID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// removeLocked drops a client and closes its send channel. Callers hold mu.
func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if clients, ok := h.rooms[client.roomID]; ok {
		delete(clients, client)
		// Clean up empty rooms
		if len(clients) == 0 {
			delete(h.rooms, client.roomID)
		}
	}
}

func (h *Hub) enqueue(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) dequeue(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// RoomSize reports how many clients are subscribed to a room.
func (h *Hub) RoomSize(roomID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// broadcastToRoom sends a frame to all clients in a room. Clients whose
// buffer is full are disconnected.
func (h *Hub) broadcastToRoom(roomID uint, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[roomID] {
		select {
		case client.send <- message:
		default:
			h.removeLocked(client)
		}
	}
}

// BroadcastToRoom sends an event to all clients in a room
func (h *Hub) BroadcastToRoom(roomID uint, eventType string, payload interface{}) {
	msgBytes, err := json.Marshal(Event{
		Type:    eventType,
		RoomID:  roomID,
		Payload: payload,
	})
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	h.broadcastToRoom(roomID, msgBytes)
}
