// Package mcpservice defines the capability interfaces that the stdio
// transport consumes, plus helpers for building them: a functional-options
// server, typed tools with reflected input schemas, a static tools container
// and an slog-backed logging capability.
//
// The transport discovers capabilities at runtime on a per-session basis and
// translates method calls on these interfaces into MCP JSON-RPC messages.
// Implementations MUST be safe for concurrent use and respect the provided
// context for cancellation.
//
// Conventions:
//   - Capability discovery methods return (cap, ok, err). A false ok means the
//     capability is not supported for the session; err is reserved for
//     unexpected failures while determining support.
//   - Pagination uses Page[T]; a nil cursor requests the first page.
package mcpservice

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/sessions"
)

type ServerCapabilities interface {
	// GetServerInfo returns implementation information surfaced in the
	// initialize result.
	GetServerInfo(ctx context.Context, session sessions.Session) (mcp.ImplementationInfo, error)

	// GetPreferredProtocolVersion returns the server's preferred MCP protocol
	// version. If ok is false, the transport negotiates from the client's
	// requested version.
	GetPreferredProtocolVersion(ctx context.Context) (version string, ok bool, err error)

	// GetInstructions returns optional human-readable instructions surfaced to
	// the client during initialization.
	GetInstructions(ctx context.Context, session sessions.Session) (instructions string, ok bool, err error)

	// GetToolsCapability returns the tools capability if supported for the
	// session. If ok is false, tools are not advertised.
	GetToolsCapability(ctx context.Context, session sessions.Session) (cap ToolsCapability, ok bool, err error)

	// GetLoggingCapability returns the logging capability if supported for
	// the session. If ok is false, logging/setLevel is not advertised.
	GetLoggingCapability(ctx context.Context, session sessions.Session) (cap LoggingCapability, ok bool, err error)
}

// ToolsCapability defines the server's tools surface area.
type ToolsCapability interface {
	// ListTools returns a (possibly paginated) list of tools available to the session.
	// A nil cursor requests the first page. When more results are available,
	// Page.NextCursor SHOULD be set.
	ListTools(ctx context.Context, session sessions.Session, cursor *string) (Page[mcp.Tool], error)

	// CallTool invokes a named tool with the provided request payload. Tool
	// failures SHOULD be reported as a CallToolResult with IsError set; a Go
	// error is reserved for protocol-level failures such as an unknown tool.
	CallTool(ctx context.Context, session sessions.Session, req *mcp.CallToolRequestReceived) (*mcp.CallToolResult, error)
}

// LoggingCapability allows the client to adjust the server's logging level.
type LoggingCapability interface {
	// SetLevel updates the server's logging level.
	SetLevel(ctx context.Context, session sessions.Session, level mcp.LoggingLevel) error
}
