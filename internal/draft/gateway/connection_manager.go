package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/engine"
	"github.com/mcdev12/draftroom/internal/models"
)

// PickSubmitter accepts pick intents from connected clients. The engine
// implements it; tests substitute fakes.
type PickSubmitter interface {
	SubmitPick(ctx context.Context, in engine.SubmitPickInput) (*models.PickSlot, error)
}

// ConnectionManager owns the WebSocket connections of all rooms, fans
// sequenced events out to them, and routes pick submissions to the engine.
type ConnectionManager struct {
	roomConnections map[uuid.UUID]map[*Connection]bool
	mu              sync.RWMutex

	upgrader  websocket.Upgrader
	config    ConnectionConfig
	sequencer *Sequencer
	submitter PickSubmitter

	broadcastCh chan broadcastMessage
}

// Connection represents one WebSocket client subscribed to a room.
type Connection struct {
	ID      string
	EntryID uuid.UUID
	RoomID  uuid.UUID
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for WebSocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

type broadcastMessage struct {
	RoomID  uuid.UUID
	Event   *RoomEvent
	EntryID uuid.UUID // optional: deliver only to this entry's connections
}

// DefaultConnectionConfig returns default WebSocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewConnectionManager creates a WebSocket connection manager.
func NewConnectionManager(config ConnectionConfig, sequencer *Sequencer, submitter PickSubmitter) *ConnectionManager {
	return &ConnectionManager{
		roomConnections: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		sequencer:   sequencer,
		submitter:   submitter,
		broadcastCh: make(chan broadcastMessage, 1000),
	}
}

// Start begins processing broadcast messages.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a WebSocket subscription on
// a room. lastSeq is the client's last-seen sequence number; retained events
// after it are replayed before live delivery.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, entryID, roomID uuid.UUID, lastSeq uint64) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection, replayed := cm.newConnection(conn, entryID, roomID, lastSeq)
	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("entry_id", entryID.String()).
		Str("room_id", roomID.String()).
		Int("replayed", replayed).
		Msg("WebSocket connection established")

	return nil
}

// liveSendBuffer is the headroom kept in a connection's send channel for
// live events beyond the queued backfill.
const liveSendBuffer = 256

// newConnection builds the connection with its backfill already queued. The
// send channel is sized to hold the entire replay plus live headroom, so
// queueing can never block no matter how large the sequencer's replay
// window is configured; the write pump has not started yet at this point.
func (cm *ConnectionManager) newConnection(conn *websocket.Conn, entryID, roomID uuid.UUID, lastSeq uint64) (*Connection, int) {
	missed, ok := cm.sequencer.Replay(roomID, lastSeq)

	connection := &Connection{
		ID:          uuid.New().String(),
		EntryID:     entryID,
		RoomID:      roomID,
		Conn:        conn,
		Send:        make(chan []byte, len(missed)+liveSendBuffer),
		Manager:     cm,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	if !ok {
		log.Warn().
			Str("connection_id", connection.ID).
			Str("room_id", roomID.String()).
			Uint64("last_seq", lastSeq).
			Msg("replay window exceeded; client must resync state")
	}
	for i := range missed {
		data, err := json.Marshal(&missed[i])
		if err != nil {
			continue
		}
		connection.Send <- data
	}
	return connection, len(missed)
}

func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.roomConnections[conn.RoomID] == nil {
		cm.roomConnections[conn.RoomID] = make(map[*Connection]bool)
	}
	cm.roomConnections[conn.RoomID][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("room_id", conn.RoomID.String()).
		Int("total_connections", len(cm.roomConnections[conn.RoomID])).
		Msg("connection registered")
}

func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if connections, exists := cm.roomConnections[conn.RoomID]; exists {
		if _, exists := connections[conn]; exists {
			delete(connections, conn)
			close(conn.Send)

			if len(connections) == 0 {
				delete(cm.roomConnections, conn.RoomID)
			}

			log.Info().
				Str("connection_id", conn.ID).
				Str("room_id", conn.RoomID.String()).
				Msg("connection unregistered")
		}
	}
}

// BroadcastToRoom sends an event to all connections of a room.
func (cm *ConnectionManager) BroadcastToRoom(roomID uuid.UUID, event *RoomEvent) {
	select {
	case cm.broadcastCh <- broadcastMessage{RoomID: roomID, Event: event}:
	default:
		log.Warn().Str("room_id", roomID.String()).Msg("broadcast channel full, dropping message")
	}
}

// BroadcastToEntry sends an event only to a specific entry's connections.
func (cm *ConnectionManager) BroadcastToEntry(roomID, entryID uuid.UUID, event *RoomEvent) {
	select {
	case cm.broadcastCh <- broadcastMessage{RoomID: roomID, Event: event, EntryID: entryID}:
	default:
		log.Warn().
			Str("room_id", roomID.String()).
			Str("entry_id", entryID.String()).
			Msg("broadcast channel full, dropping entry message")
	}
}

func (cm *ConnectionManager) handleBroadcast(message broadcastMessage) {
	cm.mu.RLock()
	connections, exists := cm.roomConnections[message.RoomID]
	if !exists {
		cm.mu.RUnlock()
		return
	}

	var targets []*Connection
	for conn := range connections {
		if message.EntryID != uuid.Nil && conn.EntryID != message.EntryID {
			continue
		}
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	eventData, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, conn := range targets {
		select {
		case conn.Send <- eventData:
		default:
			// Slow or dead client; drop it rather than stall the room.
			log.Warn().
				Str("connection_id", conn.ID).
				Msg("connection send buffer full, closing connection")
			cm.unregisterConnection(conn)
			conn.Conn.Close()
		}
	}

	log.Debug().
		Str("event_type", string(message.Event.Type)).
		Str("room_id", message.RoomID.String()).
		Uint64("seq", message.Event.Seq).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// GetConnectionStats returns statistics about active connections.
func (cm *ConnectionManager) GetConnectionStats() (totalConnections, activeRooms int) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for _, connections := range cm.roomConnections {
		totalConnections += len(connections)
	}
	return totalConnections, len(cm.roomConnections)
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			c.LastPing = time.Now()
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage processes a command from the client. Pick submissions
// run synchronously against the engine and the verdict goes back on this
// connection only; the resulting PickMade (if any) arrives through the
// normal sequenced event flow.
func (c *Connection) handleClientMessage(message []byte) {
	var cmd ClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		log.Debug().
			Str("connection_id", c.ID).
			Msg("ignoring malformed client message")
		return
	}

	switch cmd.Action {
	case "submit_pick":
		c.handleSubmitPick(cmd)
	default:
		log.Debug().
			Str("connection_id", c.ID).
			Str("action", cmd.Action).
			Msg("unknown client action")
	}
}

func (c *Connection) handleSubmitPick(cmd ClientCommand) {
	result := PickResultPayload{Status: "rejected"}

	playerID, err := uuid.Parse(cmd.PlayerID)
	if err != nil {
		result.Reason = "invalid player_id"
		c.sendPickResult(result)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	committed, err := c.Manager.submitter.SubmitPick(ctx, engine.SubmitPickInput{
		RoomID:   c.RoomID,
		EntryID:  c.EntryID,
		PlayerID: playerID,
	})
	if err != nil {
		result.Reason = engine.RejectionReason(err)
		c.sendPickResult(result)
		return
	}

	result.Status = "committed"
	result.PlayerID = playerID.String()
	result.OverallPick = committed.OverallPick
	c.sendPickResult(result)
}

func (c *Connection) sendPickResult(payload PickResultPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event := RoomEvent{
		ID:        uuid.New().String(),
		RoomID:    c.RoomID.String(),
		Type:      EventTypePickResult,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	eventData, err := json.Marshal(&event)
	if err != nil {
		return
	}
	select {
	case c.Send <- eventData:
	default:
	}
}
