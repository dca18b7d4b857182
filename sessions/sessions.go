package sessions

import "sync"

// Session represents a negotiated MCP session. Implementations MUST be safe
// for concurrent use.
type Session interface {
	SessionID() string
	UserID() string
	// ProtocolVersion is the negotiated MCP protocol version baked into the session.
	ProtocolVersion() string
	// ClientInfo identifies the connected client as reported during initialize.
	ClientInfo() ClientInfo
}

// ClientInfo identifies the client connecting to the server.
type ClientInfo struct {
	Name    string
	Version string
}

// State tracks where a session is in the initialize handshake.
type State string

const (
	StatePending State = "pending"
	StateOpen    State = "open"
	StateClosed  State = "closed"
)

// Local is an in-process Session for single-connection transports. The
// handshake state is the only mutable part.
type Local struct {
	id              string
	userID          string
	protocolVersion string
	client          ClientInfo

	mu    sync.RWMutex
	state State
}

var _ Session = (*Local)(nil)

// NewLocal creates a pending session.
func NewLocal(id, userID, protocolVersion string, client ClientInfo) *Local {
	return &Local{
		id:              id,
		userID:          userID,
		protocolVersion: protocolVersion,
		client:          client,
		state:           StatePending,
	}
}

func (s *Local) SessionID() string       { return s.id }
func (s *Local) UserID() string          { return s.userID }
func (s *Local) ProtocolVersion() string { return s.protocolVersion }
func (s *Local) ClientInfo() ClientInfo  { return s.client }

// State returns the current handshake state.
func (s *Local) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Open marks the session open. It is idempotent and reports whether the state
// changed.
func (s *Local) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePending {
		return false
	}
	s.state = StateOpen
	return true
}

// Close marks the session closed.
func (s *Local) Close() {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
}
