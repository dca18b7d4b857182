package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ggoodman/gitbook-mcp/internal/jsonrpc"
	"github.com/ggoodman/gitbook-mcp/internal/logctx"
	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
	"github.com/ggoodman/gitbook-mcp/sessions"
	"github.com/google/uuid"
)

// Handler is a single-connection stdio transport that reads JSON-RPC messages
// from an io.Reader and writes responses to an io.Writer. By default, it uses
// os.Stdin and os.Stdout. It identifies the peer using a UserProvider, which
// defaults to the current OS user.
//
// The handler is transport-only; it delegates all MCP semantics to the provided
// mcpservice.ServerCapabilities.
type Handler struct {
	srv          mcpservice.ServerCapabilities
	r            io.Reader
	w            io.Writer
	l            *slog.Logger
	userProvider UserProvider

	writeMu sync.Mutex

	mu       sync.Mutex
	session  *sessions.Local
	inflight map[string]context.CancelFunc
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(srv mcpservice.ServerCapabilities, opts ...Option) *Handler {
	h := &Handler{
		srv:          srv,
		r:            os.Stdin,
		w:            os.Stdout,
		l:            slog.New(logctx.Handler{Handler: slog.NewJSONHandler(os.Stderr, nil)}),
		userProvider: OSUserProvider{},
		inflight:     make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the stdio event loop until EOF on the reader or the context is
// canceled. It is safe to call at most once per Handler. Serve is responsible for:
//   - JSON-RPC message framing (newline-delimited)
//   - initialize/initialized lifecycle with the provided ServerCapabilities
//   - routing requests and notifications to the capabilities
//   - writing JSON-RPC responses to the writer
//
// Requests run concurrently; Serve waits for in-flight requests before it
// returns. EOF yields a nil error and context cancellation yields ctx.Err().
func (h *Handler) Serve(ctx context.Context) error {
	userID, err := h.userProvider.CurrentUserID()
	if err != nil {
		return fmt.Errorf("stdio: resolve user: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go h.readLines(ctx, lines, readErr)

	h.l.InfoContext(ctx, "stdio.serve.start", slog.String("user_id", userID))

	for {
		select {
		case <-ctx.Done():
			h.closeSession()
			h.l.InfoContext(ctx, "stdio.serve.stop", slog.String("reason", ctx.Err().Error()))
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				h.closeSession()
				if err := <-readErr; err != nil {
					h.l.ErrorContext(ctx, "stdio.serve.fail", slog.String("err", err.Error()))
					return fmt.Errorf("stdio: read: %w", err)
				}
				h.l.InfoContext(ctx, "stdio.serve.stop", slog.String("reason", "eof"))
				return nil
			}
			h.handleLine(ctx, userID, line, &wg)
		}
	}
}

// readLines frames the input stream on newlines. A final line without a
// trailing newline is still delivered.
func (h *Handler) readLines(ctx context.Context, out chan<- []byte, errc chan<- error) {
	defer close(out)
	br := bufio.NewReader(h.r)
	for {
		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			select {
			case out <- line:
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			errc <- err
			return
		}
	}
}

func (h *Handler) handleLine(ctx context.Context, userID string, line []byte, wg *sync.WaitGroup) {
	line = bytes.TrimSpace(line)
	if !json.Valid(line) {
		h.l.WarnContext(ctx, "stdio.message.parse_error")
		h.writeError(ctx, nil, jsonrpc.ErrorCodeParseError, "parse error")
		return
	}

	var msg jsonrpc.AnyMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		h.l.WarnContext(ctx, "stdio.message.invalid", slog.String("err", err.Error()))
		h.writeError(ctx, nil, jsonrpc.ErrorCodeInvalidRequest, "invalid request")
		return
	}

	switch msg.Type() {
	case jsonrpc.MessageTypeResponse:
		// The server never issues client requests, so responses are unsolicited.
		h.l.DebugContext(ctx, "stdio.response.ignored", slog.String("id", msg.ID.String()))
	case jsonrpc.MessageTypeNotification:
		h.handleNotification(ctx, msg.AsRequest())
	case jsonrpc.MessageTypeRequest:
		req := msg.AsRequest()
		if req.Method == string(mcp.InitializeMethod) {
			// Handled inline so every later request observes the session.
			h.respond(ctx, req, func(ctx context.Context) (any, *jsonrpc.Error) {
				return h.initialize(ctx, userID, req)
			})
			return
		}
		key := req.ID.String()
		reqCtx, cancel := context.WithCancel(ctx)
		h.mu.Lock()
		h.inflight[key] = cancel
		h.mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				h.mu.Lock()
				delete(h.inflight, key)
				h.mu.Unlock()
				cancel()
			}()
			h.respond(reqCtx, req, func(ctx context.Context) (any, *jsonrpc.Error) {
				return h.dispatch(ctx, req)
			})
		}()
	}
}

func (h *Handler) handleNotification(ctx context.Context, req *jsonrpc.Request) {
	switch mcp.Method(req.Method) {
	case mcp.InitializedNotificationMethod:
		h.mu.Lock()
		sess := h.session
		h.mu.Unlock()
		if sess == nil {
			h.l.WarnContext(ctx, "stdio.initialized.before_initialize")
			return
		}
		if sess.Open() {
			h.l.InfoContext(h.sessionContext(ctx, sess), "stdio.session.open")
		}
	case mcp.CancelledNotificationMethod:
		var note mcp.CancelledNotification
		if err := json.Unmarshal(req.Params, &note); err != nil {
			h.l.WarnContext(ctx, "stdio.cancelled.invalid", slog.String("err", err.Error()))
			return
		}
		var id jsonrpc.RequestID
		if err := json.Unmarshal(note.RequestID, &id); err != nil {
			h.l.WarnContext(ctx, "stdio.cancelled.invalid", slog.String("err", err.Error()))
			return
		}
		h.mu.Lock()
		cancel := h.inflight[id.String()]
		h.mu.Unlock()
		if cancel != nil {
			cancel()
			h.l.InfoContext(ctx, "stdio.request.cancelled", slog.String("id", id.String()), slog.String("reason", note.Reason))
		}
	default:
		h.l.DebugContext(ctx, "stdio.notification.ignored", slog.String("method", req.Method))
	}
}

// respond runs fn and writes its outcome. A request whose context was
// canceled by the peer gets no response.
func (h *Handler) respond(ctx context.Context, req *jsonrpc.Request, fn func(context.Context) (any, *jsonrpc.Error)) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{
		Method: req.Method,
		ID:     req.ID.String(),
		Type:   string(jsonrpc.MessageTypeRequest),
	})
	if sess := h.currentSession(); sess != nil {
		ctx = h.sessionContext(ctx, sess)
	}

	start := time.Now()
	result, rpcErr := fn(ctx)
	dur := time.Since(start).Milliseconds()

	if ctx.Err() != nil {
		h.l.InfoContext(ctx, "stdio.request.abandoned", slog.Int64("dur_ms", dur))
		return
	}
	if rpcErr != nil {
		h.l.WarnContext(ctx, "stdio.request.fail", slog.Int64("dur_ms", dur), slog.Int("code", int(rpcErr.Code)), slog.String("err", rpcErr.Message))
		h.writeError(ctx, req.ID, rpcErr.Code, rpcErr.Message)
		return
	}
	res, err := jsonrpc.NewResultResponse(req.ID, result)
	if err != nil {
		h.l.ErrorContext(ctx, "stdio.request.fail", slog.Int64("dur_ms", dur), slog.String("err", err.Error()))
		h.writeError(ctx, req.ID, jsonrpc.ErrorCodeInternalError, "internal error")
		return
	}
	h.l.InfoContext(ctx, "stdio.request.ok", slog.Int64("dur_ms", dur))
	h.write(ctx, res)
}

func (h *Handler) initialize(ctx context.Context, userID string, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	var params mcp.InitializeRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid initialize params: %v", err)
	}

	h.mu.Lock()
	already := h.session != nil
	h.mu.Unlock()
	if already {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidRequest, "session already initialized")
	}

	version := mcp.LatestProtocolVersion
	if mcp.IsSupportedProtocolVersion(params.ProtocolVersion) {
		version = params.ProtocolVersion
	}
	if pinned, ok, err := h.srv.GetPreferredProtocolVersion(ctx); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "protocol version: %v", err)
	} else if ok {
		version = pinned
	}

	sess := sessions.NewLocal(uuid.NewString(), userID, version, sessions.ClientInfo{
		Name:    params.ClientInfo.Name,
		Version: params.ClientInfo.Version,
	})
	ctx = h.sessionContext(ctx, sess)

	info, err := h.srv.GetServerInfo(ctx, sess)
	if err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "server info: %v", err)
	}
	result := &mcp.InitializeResult{ProtocolVersion: version, ServerInfo: info}

	if instr, ok, err := h.srv.GetInstructions(ctx, sess); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "instructions: %v", err)
	} else if ok {
		result.Instructions = instr
	}
	if _, ok, err := h.srv.GetToolsCapability(ctx, sess); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "tools capability: %v", err)
	} else if ok {
		result.Capabilities.Tools = &struct {
			ListChanged bool `json:"listChanged"`
		}{}
	}
	if _, ok, err := h.srv.GetLoggingCapability(ctx, sess); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "logging capability: %v", err)
	} else if ok {
		result.Capabilities.Logging = &struct{}{}
	}

	h.mu.Lock()
	h.session = sess
	h.mu.Unlock()

	h.l.InfoContext(ctx, "stdio.session.initialize",
		slog.String("client_name", params.ClientInfo.Name),
		slog.String("client_version", params.ClientInfo.Version),
		slog.String("requested_version", params.ProtocolVersion),
	)
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	method := mcp.Method(req.Method)
	if method == mcp.PingMethod {
		return &mcp.EmptyResult{}, nil
	}

	sess := h.currentSession()
	if sess == nil {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidRequest, "session not initialized")
	}

	switch method {
	case mcp.ToolsListMethod:
		return h.listTools(ctx, sess, req)
	case mcp.ToolsCallMethod:
		return h.callTool(ctx, sess, req)
	case mcp.LoggingSetLevelMethod:
		return h.setLevel(ctx, sess, req)
	default:
		return nil, rpcError(jsonrpc.ErrorCodeMethodNotFound, "method not found: %s", req.Method)
	}
}

func (h *Handler) listTools(ctx context.Context, sess sessions.Session, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	tools, ok, err := h.srv.GetToolsCapability(ctx, sess)
	if err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "tools capability: %v", err)
	}
	if !ok {
		return nil, rpcError(jsonrpc.ErrorCodeMethodNotFound, "method not found: %s", req.Method)
	}

	var params mcp.ListToolsRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid params: %v", err)
		}
	}
	var cursor *string
	if params.Cursor != "" {
		cursor = &params.Cursor
	}

	page, err := tools.ListTools(ctx, sess, cursor)
	if err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "list tools: %v", err)
	}
	result := &mcp.ListToolsResult{Tools: page.Items}
	if result.Tools == nil {
		result.Tools = []mcp.Tool{}
	}
	if page.NextCursor != nil {
		result.NextCursor = *page.NextCursor
	}
	return result, nil
}

func (h *Handler) callTool(ctx context.Context, sess sessions.Session, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	tools, ok, err := h.srv.GetToolsCapability(ctx, sess)
	if err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "tools capability: %v", err)
	}
	if !ok {
		return nil, rpcError(jsonrpc.ErrorCodeMethodNotFound, "method not found: %s", req.Method)
	}

	var params mcp.CallToolRequestReceived
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid params: %v", err)
	}
	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: params.Name})

	res, err := tools.CallTool(ctx, sess, &params)
	if err != nil {
		var nf *mcpservice.ErrToolNotFound
		if errors.As(err, &nf) {
			return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "unknown tool: %s", nf.Name)
		}
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "call tool: %v", err)
	}
	if res.Content == nil {
		res.Content = []mcp.ContentBlock{}
	}
	if res.IsError {
		h.l.InfoContext(ctx, "stdio.tool.error_result")
	}
	return res, nil
}

func (h *Handler) setLevel(ctx context.Context, sess sessions.Session, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	logging, ok, err := h.srv.GetLoggingCapability(ctx, sess)
	if err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "logging capability: %v", err)
	}
	if !ok {
		return nil, rpcError(jsonrpc.ErrorCodeMethodNotFound, "method not found: %s", req.Method)
	}

	var params mcp.SetLevelRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid params: %v", err)
	}
	if !mcp.IsValidLoggingLevel(params.Level) {
		return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid logging level: %q", params.Level)
	}
	if err := logging.SetLevel(ctx, sess, params.Level); err != nil {
		if errors.Is(err, mcpservice.ErrInvalidLoggingLevel) {
			return nil, rpcError(jsonrpc.ErrorCodeInvalidParams, "invalid logging level: %q", params.Level)
		}
		return nil, rpcError(jsonrpc.ErrorCodeInternalError, "set level: %v", err)
	}
	return &mcp.EmptyResult{}, nil
}

func (h *Handler) currentSession() *sessions.Local {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *Handler) closeSession() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.Close()
	}
}

func (h *Handler) sessionContext(ctx context.Context, sess sessions.Session) context.Context {
	return logctx.WithSessionData(ctx, &logctx.SessionData{
		SessionID:       sess.SessionID(),
		UserID:          sess.UserID(),
		ProtocolVersion: sess.ProtocolVersion(),
	})
}

func (h *Handler) writeError(ctx context.Context, id *jsonrpc.RequestID, code jsonrpc.ErrorCode, msg string) {
	h.write(ctx, jsonrpc.NewErrorResponse(id, code, msg, nil))
}

func (h *Handler) write(ctx context.Context, res *jsonrpc.Response) {
	b, err := json.Marshal(res)
	if err != nil {
		h.l.ErrorContext(ctx, "stdio.write.fail", slog.String("err", err.Error()))
		return
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if _, err := h.w.Write(append(b, '\n')); err != nil {
		h.l.ErrorContext(ctx, "stdio.write.fail", slog.String("err", err.Error()))
	}
}

func rpcError(code jsonrpc.ErrorCode, format string, a ...any) *jsonrpc.Error {
	return &jsonrpc.Error{Code: code, Message: fmt.Sprintf(format, a...)}
}
