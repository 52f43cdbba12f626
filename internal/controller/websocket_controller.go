package controller

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serialises writes; broadcasts from other requests and replies
// from the read loop share one socket.
type lockedConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *lockedConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

type selectPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type resultPayload struct {
	Result model.MoveResult `json:"result"`
	Move   model.SimpleMove `json:"move"`
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)
	conn := &lockedConn{Conn: c}

	if !wsc.register(conn, gameID, clientID) {
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error from client %s: %v", clientID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, errors.Wrap(err, "malformed message"))
			continue
		}
		if err := wsc.handleMessage(conn, gameID, msg); err != nil {
			wsc.sendError(conn, err)
		}
	}
}

// register subscribes conn to the game. On failure the client is told why
// and the connection is closed.
func (wsc *WebSocketController) register(conn service.Conn, gameID, clientID string) bool {
	if err := wsc.gameService.RegisterConnection(gameID, clientID, conn); err != nil {
		log.Printf("failed to register connection: %v", err)
		wsc.sendError(conn, err)
		conn.Close()
		return false
	}
	return true
}

// handleMessage applies one client message. Successful state changes reach
// this client through the broadcast like every other watcher.
func (wsc *WebSocketController) handleMessage(conn service.Conn, gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return errors.Wrap(err, "malformed move")
		}
		result, _, err := wsc.gameService.HandleMove(gameID, move)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeResult, resultPayload{Result: result, Move: move})
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID)
		return err

	case ws.MessageTypeSelect:
		var sel selectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return errors.Wrap(err, "malformed selection")
		}
		_, err := wsc.gameService.Select(gameID, sel.X, sel.Y)
		return err
	}
	return errors.Errorf("unknown message type: %s", msg.Type)
}

func (wsc *WebSocketController) sendError(conn service.Conn, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("failed to send error: %v", err)
	}
}
