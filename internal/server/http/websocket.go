package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"centre/internal/engine"
	"centre/internal/game"
)

type messageType string

const (
	msgGameState messageType = "gameState"
	msgMove      messageType = "move"
	msgAIMove    messageType = "aiMove"
	msgError     messageType = "error"
)

type wsMessage struct {
	Type    messageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t messageType, payload any) wsMessage {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ws] marshal %s: %v", t, err)
		return wsMessage{Type: msgError}
	}
	return wsMessage{Type: t, Payload: raw}
}

func errorMessage(err error) wsMessage {
	return newMessage(msgError, ErrorResponse{Error: err.Error()})
}

// 同一连接的写操作要串行
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) send(msg wsMessage) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(msg)
}

// hub 按对局 ID 分组的连接
type hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{rooms: make(map[string]map[*client]struct{})}
}

func (h *hub) join(id string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[id]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[id] = room
	}
	room[cl] = struct{}{}
}

func (h *hub) leave(id string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[id]
	delete(room, cl)
	if len(room) == 0 {
		delete(h.rooms, id)
	}
}

func (h *hub) broadcast(id string, msg wsMessage) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[id]))
	for cl := range h.rooms[id] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			log.Printf("[ws] send %s to %s: %v", msg.Type, id, err)
		}
	}
}

func (s *Server) handleSocket(c *websocket.Conn) {
	id := c.Params("game_id")
	cl := &client{conn: c}
	sess, err := s.games.Get(id)
	if err != nil {
		_ = cl.send(errorMessage(err))
		c.Close()
		return
	}

	s.hub.join(id, cl)
	defer s.hub.leave(id, cl)
	log.Printf("[ws] client joined %s", id)

	if err := cl.send(newMessage(msgGameState, snapshotToDTO(sess.Snapshot()))); err != nil {
		log.Printf("[ws] initial state %s: %v", id, err)
		return
	}
	s.maybeRunAI(sess)

	for {
		mt, data, err := c.ReadMessage()
		if err != nil {
			log.Printf("[ws] read %s: %v", id, err)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = cl.send(errorMessage(fmt.Errorf("bad message: %w", err)))
			continue
		}
		if err := s.handleMessage(cl, sess, msg); err != nil {
			_ = cl.send(errorMessage(err))
		}
	}
}

func (s *Server) handleMessage(cl *client, sess *game.Session, msg wsMessage) error {
	switch msg.Type {
	case msgGameState:
		return cl.send(newMessage(msgGameState, snapshotToDTO(sess.Snapshot())))

	case msgMove:
		var dto MoveDTO
		if err := json.Unmarshal(msg.Payload, &dto); err != nil {
			return fmt.Errorf("bad move: %w", err)
		}
		mv, err := dtoToMove(dto)
		if err != nil {
			return err
		}
		if err := sess.Play(mv); err != nil {
			return err
		}
		s.hub.broadcast(sess.ID, newMessage(msgGameState, snapshotToDTO(sess.Snapshot())))
		s.maybeRunAI(sess)
		return nil

	case msgAIMove:
		if st := sess.Status(); st.Over() {
			return game.ErrGameOver
		}
		go s.runAI(sess)
		return nil
	}
	return fmt.Errorf("unknown message type: %q", msg.Type)
}

// 人机对局轮到电脑时在后台搜索，走完推送给该局所有连接
func (s *Server) maybeRunAI(sess *game.Session) {
	if sess.AITurn() {
		go s.runAI(sess)
	}
}

func (s *Server) runAI(sess *game.Session) {
	ctx, cancel := s.searchContext(0)
	defer cancel()

	res, err := sess.AIMove(ctx, engine.NewEngine())
	if err != nil {
		if errors.Is(err, game.ErrAIThinking) {
			return
		}
		log.Printf("[ws] ai move in %s: %v", sess.ID, err)
		s.hub.broadcast(sess.ID, errorMessage(err))
		return
	}
	log.Printf("[ws] ai played %v in %s (score %d, %d nodes, %v)", res.Move, sess.ID, res.Search.Score, res.Search.Nodes, res.Search.TimeUsed)
	s.hub.broadcast(sess.ID, newMessage(msgGameState, snapshotToDTO(sess.Snapshot())))
}
