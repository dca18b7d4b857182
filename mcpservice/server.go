package mcpservice

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/sessions"
)

// ServerOption configures a concrete ServerCapabilities implementation.
type ServerOption func(*server)

type server struct {
	info            mcp.ImplementationInfo
	protocolVersion string
	instructions    string
	hasInstructions bool
	tools           ToolsCapability
	logging         LoggingCapability
}

// NewServer builds a ServerCapabilities using functional options. Capabilities
// that are not configured are not advertised.
func NewServer(opts ...ServerOption) ServerCapabilities {
	s := &server{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithServerInfo sets the implementation info returned from initialize.
func WithServerInfo(info mcp.ImplementationInfo) ServerOption {
	return func(s *server) { s.info = info }
}

// WithProtocolVersion pins the protocol version instead of negotiating from
// the client's request.
func WithProtocolVersion(version string) ServerOption {
	return func(s *server) { s.protocolVersion = version }
}

// WithInstructions sets human-readable instructions returned during initialize.
func WithInstructions(instr string) ServerOption {
	return func(s *server) {
		s.instructions = instr
		s.hasInstructions = instr != ""
	}
}

// WithToolsCapability wires a ToolsCapability used for all sessions.
func WithToolsCapability(cap ToolsCapability) ServerOption {
	return func(s *server) { s.tools = cap }
}

// WithLoggingCapability wires a LoggingCapability used for all sessions.
func WithLoggingCapability(cap LoggingCapability) ServerOption {
	return func(s *server) { s.logging = cap }
}

func (s *server) GetServerInfo(ctx context.Context, session sessions.Session) (mcp.ImplementationInfo, error) {
	return s.info, nil
}

func (s *server) GetPreferredProtocolVersion(ctx context.Context) (string, bool, error) {
	if s.protocolVersion == "" {
		return "", false, nil
	}
	return s.protocolVersion, true, nil
}

func (s *server) GetInstructions(ctx context.Context, session sessions.Session) (string, bool, error) {
	return s.instructions, s.hasInstructions, nil
}

func (s *server) GetToolsCapability(ctx context.Context, session sessions.Session) (ToolsCapability, bool, error) {
	if s.tools == nil {
		return nil, false, nil
	}
	return s.tools, true, nil
}

func (s *server) GetLoggingCapability(ctx context.Context, session sessions.Session) (LoggingCapability, bool, error) {
	if s.logging == nil {
		return nil, false, nil
	}
	return s.logging, true, nil
}
