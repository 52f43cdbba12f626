package service

import (
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session is one hosted game. The engine is not safe for concurrent use, so
// every access to the game goes through the session mutex.
type Session struct {
	ID          string
	Variant     model.Variant
	CreatedAt   time.Time
	mu          sync.Mutex
	game        *model.Game
	updatedAt   time.Time
	connections *GameConnections
}

// withGame runs fn while holding the session lock and returns a snapshot
// taken before the lock is released.
func (s *Session) withGame(fn func(g *model.Game) error) (model.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.game)
	return s.game.Snapshot(), err
}

// update is withGame for calls that change the game. When fn reports a
// change the new state is published before the lock is released, so
// watchers receive states in the order they were reached.
func (s *Session) update(fn func(g *model.Game) (bool, error), publish func(model.GameState)) (model.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := fn(s.game)
	state := s.game.Snapshot()
	if err == nil && changed {
		s.updatedAt = time.Now()
		publish(state)
	}
	return state, err
}

func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

type GameManager struct {
	games map[string]*Session
	opts  []model.Option
	mu    sync.RWMutex
}

// NewGameManager returns an empty registry. opts are applied to every game it
// creates.
func NewGameManager(opts ...model.Option) *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
		opts:  opts,
	}
}

func (gm *GameManager) CreateGame(variant model.Variant) (*Session, error) {
	game, err := model.NewGameOfVariant(variant, gm.opts...)
	if err != nil {
		return nil, err
	}
	if variant == "" {
		variant = model.VariantStandard
	}

	now := time.Now()
	session := &Session{
		ID:          uuid.NewString(),
		Variant:     variant,
		CreatedAt:   now,
		game:        game,
		updatedAt:   now,
		connections: NewGameConnections(),
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[session.ID] = session
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	return session, nil
}

func (gm *GameManager) HasGame(gameID string) bool {
	_, err := gm.GetGame(gameID)
	return err == nil
}

// List returns the ids of all hosted games in sorted order.
func (gm *GameManager) List() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	ids := maps.Keys(gm.games)
	slices.Sort(ids)
	return ids
}

func (gm *GameManager) RegisterConnection(gameID, clientID string, conn Conn) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	session.connections.mu.Lock()
	if _, exists := session.connections.connections[clientID]; exists {
		session.connections.mu.Unlock()
		return errors.Wrapf(ErrAlreadyConnected, "client %s", clientID)
	}
	session.connections.connections[clientID] = conn
	session.connections.mu.Unlock()
	log.Printf("registered connection for client %s on game %s", clientID, gameID)

	session.mu.Lock()
	defer session.mu.Unlock()
	gm.broadcast(session, session.game.Snapshot())
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID, clientID string) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	session.connections.mu.Lock()
	defer session.connections.mu.Unlock()
	if _, exists := session.connections.connections[clientID]; exists {
		log.Printf("unregistering connection for client %s on game %s", clientID, gameID)
		delete(session.connections.connections, clientID)
	}
}

// broadcast sends the state to every connection watching the session.
// Connections that fail to take the write are dropped. Callers hold the
// session lock.
func (gm *GameManager) broadcast(session *Session, state model.GameState) {
	session.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(session.connections.connections))
	for clientID, conn := range session.connections.connections {
		activeConnections[clientID] = conn
	}
	session.connections.mu.RUnlock()

	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Printf("failed to encode state of game %s: %v", session.ID, err)
		return
	}
	for clientID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("failed to send state to client %s: %v", clientID, err)
			session.connections.mu.Lock()
			delete(session.connections.connections, clientID)
			session.connections.mu.Unlock()
		}
	}
}

// Close forgets every game and closes all open connections, returning every
// close error.
func (gm *GameManager) Close() error {
	gm.mu.Lock()
	sessions := maps.Values(gm.games)
	gm.games = make(map[string]*Session)
	gm.mu.Unlock()

	var result error
	for _, session := range sessions {
		session.connections.mu.Lock()
		for clientID, conn := range session.connections.connections {
			if err := conn.Close(); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "close client %s on game %s", clientID, session.ID))
			}
		}
		session.connections.connections = make(map[string]Conn)
		session.connections.mu.Unlock()
	}
	return result
}
