package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message - то, что получает подписчик комнаты.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	RoomID  string `json:"room_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBuffer      = 256
	broadcastBuffer = 1024
)

type roomMessage struct {
	room string
	data []byte
}

// Hub держит websocket-подписчиков, разложенных по комнатам.
// Все изменения комнат происходят в горутине Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, broadcastBuffer),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		logger:     logger,
	}
}

// Run обслуживает регистрацию и рассылку, пока не отменён ctx.
// После выхода все соединения получают close frame.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("websocket hub stopping")
			return nil

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.room]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.room] = room
			}
			room[client] = struct{}{}
			size := len(room)
			h.mu.Unlock()
			h.logger.Debug("client registered",
				slog.String("client_id", client.id.String()),
				slog.String("room", client.room),
				slog.Int("room_size", size))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.data:
				default:
					h.logger.Warn("client send buffer full, dropping message",
						slog.String("client_id", client.id.String()),
						slog.String("room", msg.room))
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.room)
	}
	h.logger.Debug("client unregistered",
		slog.String("client_id", client.id.String()),
		slog.String("room", client.room))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, name)
	}
}

// Publish ставит событие в очередь рассылки и никогда не блокирует вызывающего.
func (h *Hub) Publish(room, eventType string, payload any) {
	data, err := json.Marshal(Message{Type: eventType, Payload: payload, RoomID: room})
	if err != nil {
		h.logger.Error("failed to marshal event", slog.String("type", eventType), slog.Any("error", err))
		return
	}

	select {
	case <-h.done:
	case h.broadcast <- roomMessage{room: room, data: data}:
	default:
		h.logger.Warn("event queue full, dropping event", slog.String("room", room), slog.String("type", eventType))
	}
}

// RoomSize returns the number of subscribers currently in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Serve регистрирует уже апгрейженное соединение в комнате и запускает его насосы.
func (h *Hub) Serve(conn *websocket.Conn, room string) {
	client := &Client{
		id:   uuid.New(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
