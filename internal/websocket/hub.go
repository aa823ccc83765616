package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/engine"
)

// Hub fans scoreboard frames out to every connected display. Displays
// are read-only; all mutations arrive over HTTP and the handlers push
// the resulting state here.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow display; drop the frame rather than stall
					// everyone else.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop gracefully shuts down the hub. It blocks until Run() has exited
// and every client connection is closed.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, handling the case where the
// hub may be stopped.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
		// Hub stopped between check and send - that's ok
	}
}

// BroadcastGame pushes the current scoreboard state to every display.
func (h *Hub) BroadcastGame(game *domain.Game) {
	msg, err := NewMessage(MessageTypeGameUpdate, GameUpdatePayload{
		Game:      game,
		HomeBonus: engine.Bonus(game.AwayFouls),
		AwayBonus: engine.Bonus(game.HomeFouls),
	})
	if err != nil {
		log.Printf("failed to build game update: %v", err)
		return
	}
	h.send(msg)
}

// BroadcastGameDeleted tells displays the game they were showing is gone.
func (h *Hub) BroadcastGameDeleted(gameID string) {
	msg, err := NewMessage(MessageTypeGameDeleted, GameDeletedPayload{GameID: gameID})
	if err != nil {
		log.Printf("failed to build game deleted message: %v", err)
		return
	}
	h.send(msg)
}

func (h *Hub) send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- data:
	default:
	}
}
