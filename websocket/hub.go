package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	EventPaymentSettled = "payment_settled"
	EventDamageDecided  = "damage_decided"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Event is pushed to the affected user when money settles or a damage claim
// is decided, so the client does not have to poll.
type Event struct {
	Type     string `json:"type"`
	EntityID string `json:"entity_id"`
	Status   string `json:"status"`
}

type userEvent struct {
	UserID uuid.UUID
	Event  Event
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan userEvent, 64)

func init() {
	go RunHub()
}

// Notify queues an event for a user. Dropping on a full queue is acceptable;
// pushes are a convenience layer over the persisted state.
func Notify(userID uuid.UUID, event Event) {
	select {
	case events <- userEvent{UserID: userID, Event: event}:
	default:
		log.Printf("Event queue full, dropping %s push for user %s", event.Type, userID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case ue := <-events:
			clientsMu.RLock()
			conn, ok := clients[ue.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(ue.Event); err != nil {
				log.Printf("Error pushing event to client %s: %v", ue.UserID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[ue.UserID]; ok && current == conn {
					delete(clients, ue.UserID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
