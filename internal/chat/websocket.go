package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	Type      string `json:"type"`       // "persona", "provider", "message" or "reset"
	SessionID string `json:"session_id"` // empty starts a new session
	ID        string `json:"id"`         // persona or provider id
	Content   string `json:"content"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Type      string   `json:"type"` // "state", "response" or "error"
	SessionID string   `json:"session_id"`
	Content   string   `json:"content,omitempty"`
	Message   *Message `json:"message,omitempty"`
	State     *State   `json:"state,omitempty"`
}

// conn serializes writes from the read loop and pending sends.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(resp wsResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteJSON(resp); err != nil {
		slog.Debug("chat: websocket write", "error", err)
	}
}

func (c *conn) sendError(sessionID, message string) {
	c.send(wsResponse{Type: "error", SessionID: sessionID, Content: message})
}

func (c *conn) sendState(s *Session) {
	st := s.State()
	c.send(wsResponse{Type: "state", SessionID: s.ID(), State: &st})
}

func handleWebSocket(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("chat: websocket upgrade", "error", err)
			return
		}
		defer ws.Close()

		// The connection outlives request timeouts; closing it cancels
		// pending sends.
		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		defer cancel()

		c := &conn{ws: ws}
		var inflight sync.WaitGroup
		defer inflight.Wait()

		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Warn("chat: websocket read", "error", err)
				}
				cancel()
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				c.sendError("", "invalid message format")
				continue
			}

			s, err := sessionFor(m, req.SessionID)
			if err != nil {
				c.sendError(req.SessionID, err.Error())
				continue
			}

			switch req.Type {
			case "persona":
				s.SelectPersona(req.ID)
				c.sendState(s)
			case "provider":
				s.SelectProvider(req.ID)
				c.sendState(s)
			case "reset":
				s.Reset()
				c.sendState(s)
			case "message":
				// Sends run beside the read loop so a switch can arrive
				// while the reply is pending.
				inflight.Add(1)
				go func() {
					defer inflight.Done()
					reply, err := s.Send(ctx, req.Content)
					if errors.Is(err, ErrSuperseded) {
						return
					}
					if err != nil {
						c.sendError(s.ID(), err.Error())
						return
					}
					c.send(wsResponse{Type: "response", SessionID: s.ID(), Content: reply.Content, Message: &reply})
				}()
			default:
				c.sendError(s.ID(), "unknown message type: "+req.Type)
			}
		}
	}
}

func sessionFor(m *Manager, id string) (*Session, error) {
	if id == "" {
		return m.Create("", ""), nil
	}
	return m.Get(id)
}
