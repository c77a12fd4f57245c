package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"wastenot/internal/recommend"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSConnection maintains a live query session with one client
type WSConnection struct {
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.Mutex
	engine *recommend.Engine
}

// QueryMessage is a client request over the WebSocket: a single food lookup
// ("recommend") or a whole menu ("menu").
type QueryMessage struct {
	Type     string   `json:"type"`
	FoodName string   `json:"food_name,omitempty"`
	Menu     []string `json:"menu,omitempty"`
}

// handleWebSocket upgrades the connection and starts the session pumps
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &WSConnection{
		conn:   conn,
		send:   make(chan []byte, 256),
		engine: s.engine,
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the handler
func (c *WSConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one client query
func (c *WSConnection) handleMessage(message []byte) {
	var req QueryMessage
	if err := json.Unmarshal(message, &req); err != nil {
		c.sendError("invalid message")
		return
	}

	switch req.Type {
	case "recommend":
		result, err := c.engine.Find(req.FoodName)
		if errors.Is(err, recommend.ErrEmptyQuery) {
			c.sendError("Food name must not be empty")
			return
		}
		if errors.Is(err, recommend.ErrNotFound) {
			c.sendError("Food not found")
			return
		}
		if err != nil {
			c.sendError("internal error")
			return
		}
		c.sendResult(result)
	case "menu":
		c.sendResult(gin.H{"menu_alternatives": c.engine.FindMenu(req.Menu)})
	default:
		c.sendError("unknown message type: " + req.Type)
	}
}

// sendResult sends a query result to the client
func (c *WSConnection) sendResult(result interface{}) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error marshaling result: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client
func (c *WSConnection) sendError(message string) {
	data, _ := json.Marshal(map[string]string{"error": message})

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping error message")
	}
}
