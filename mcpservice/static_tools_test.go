package mcpservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/sessions"
)

type greetArgs struct {
	Name   string   `json:"name" jsonschema:"description=Who to greet"`
	Style  string   `json:"style,omitempty" jsonschema:"enum=plain,enum=loud"`
	Limit  *float64 `json:"limit,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

func greetTool() StaticTool {
	return NewTool("greet", func(ctx context.Context, s sessions.Session, w ToolResponseWriter, r *ToolRequest[greetArgs]) error {
		msg := "hello " + r.Args().Name
		if r.Args().Style == "loud" {
			msg = strings.ToUpper(msg)
		}
		return w.AppendText(msg)
	},
		WithToolDescription("Greets someone"),
		WithToolAnnotations(mcp.ToolAnnotations{ReadOnlyHint: ptr(true)}),
	)
}

func ptr[T any](v T) *T { return &v }

func call(t *testing.T, st *ToolsContainer, name, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := st.CallTool(context.Background(), nil, &mcp.CallToolRequestReceived{Name: name, Arguments: json.RawMessage(args)})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func TestNewToolSchema(t *testing.T) {
	tool := greetTool()
	d := tool.Descriptor
	if d.Name != "greet" || d.Description != "Greets someone" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if d.Annotations == nil || d.Annotations.ReadOnlyHint == nil || !*d.Annotations.ReadOnlyHint {
		t.Fatalf("expected readOnly annotation, got %+v", d.Annotations)
	}
	s := d.InputSchema
	if s.Type != "object" || s.AdditionalProperties {
		t.Fatalf("unexpected schema root: %+v", s)
	}
	if len(s.Required) != 1 || s.Required[0] != "name" {
		t.Fatalf("required = %v, want [name]", s.Required)
	}
	if got := s.Properties["name"].Description; got != "Who to greet" {
		t.Fatalf("name description = %q", got)
	}
	if got := s.Properties["limit"].Type; got != "number" {
		t.Fatalf("limit type = %q, want number", got)
	}
	if got := s.Properties["labels"]; got.Type != "array" || got.Items == nil || got.Items.Type != "string" {
		t.Fatalf("labels schema = %+v", got)
	}
	if got := s.Properties["style"].Enum; len(got) != 2 {
		t.Fatalf("style enum = %v", got)
	}
}

func TestNewToolValidation(t *testing.T) {
	st := NewToolsContainer(greetTool())

	tests := []struct {
		name    string
		args    string
		isError bool
		text    string
	}{
		{name: "ok", args: `{"name":"ada"}`, text: "hello ada"},
		{name: "enum ok", args: `{"name":"ada","style":"loud"}`, text: "HELLO ADA"},
		{name: "missing required", args: `{}`, isError: true, text: `missing required field "name"`},
		{name: "null args", args: `null`, isError: true, text: `missing required field "name"`},
		{name: "null required", args: `{"name":null}`, isError: true, text: `missing required field "name"`},
		{name: "bad enum", args: `{"name":"ada","style":"quiet"}`, isError: true, text: `field "style" must be one of`},
		{name: "unknown field", args: `{"name":"ada","extra":1}`, isError: true, text: "unknown field"},
		{name: "wrong type", args: `{"name":42}`, isError: true, text: "invalid arguments"},
		{name: "not an object", args: `[1]`, isError: true, text: "arguments must be a JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, st, "greet", tt.args)
			if res.IsError != tt.isError {
				t.Fatalf("isError = %v, want %v (%+v)", res.IsError, tt.isError, res.Content)
			}
			if len(res.Content) != 1 || !strings.Contains(res.Content[0].Text, tt.text) {
				t.Fatalf("content = %+v, want text containing %q", res.Content, tt.text)
			}
		})
	}
}

func TestToolsContainerPagination(t *testing.T) {
	var defs []StaticTool
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		defs = append(defs, StaticTool{Descriptor: mcp.Tool{Name: n}})
	}
	st := NewToolsContainer(defs...)
	st.SetPageSize(2)

	var names []string
	var cursor *string
	for pages := 0; ; pages++ {
		if pages > 5 {
			t.Fatal("pagination did not terminate")
		}
		page, err := st.ListTools(context.Background(), nil, cursor)
		if err != nil {
			t.Fatalf("ListTools: %v", err)
		}
		for _, tool := range page.Items {
			names = append(names, tool.Name)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}
	if got := strings.Join(names, ","); got != "a,b,c,d,e" {
		t.Fatalf("names = %s", got)
	}

	bogus := "not-a-number"
	page, _ := st.ListTools(context.Background(), nil, &bogus)
	if len(page.Items) != 2 || page.Items[0].Name != "a" {
		t.Fatalf("bogus cursor should restart, got %+v", page.Items)
	}
}

func TestToolsContainerReplaceAndAdd(t *testing.T) {
	st := NewToolsContainer(
		StaticTool{Descriptor: mcp.Tool{Name: "x", Description: "first"}},
		StaticTool{Descriptor: mcp.Tool{Name: "y"}},
		StaticTool{Descriptor: mcp.Tool{Name: "x", Description: "second"}},
	)
	snap := st.Snapshot()
	if len(snap) != 2 || snap[0].Name != "x" || snap[0].Description != "second" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if st.Add(StaticTool{Descriptor: mcp.Tool{Name: "y"}}) {
		t.Fatal("Add should reject duplicate names")
	}
	if !st.Add(greetTool()) {
		t.Fatal("Add should accept a new name")
	}
	if len(st.Snapshot()) != 3 {
		t.Fatalf("expected 3 tools")
	}
}

func TestToolsContainerUnknownTool(t *testing.T) {
	st := NewToolsContainer(greetTool())
	_, err := st.CallTool(context.Background(), nil, &mcp.CallToolRequestReceived{Name: "nope"})
	var nf *ErrToolNotFound
	if !errors.As(err, &nf) || nf.Name != "nope" {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestToolResponseWriter(t *testing.T) {
	w := newToolResponseWriter(context.Background())
	if err := w.AppendText(""); err != nil {
		t.Fatal(err)
	}
	w.SetError(true)
	w.SetMeta("k", "v")
	res := w.Result()
	if !res.IsError || len(res.Content) != 1 || res.Meta["k"] != "v" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := w.AppendText("late"); !errors.Is(err, ErrFinalized) {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}

	empty := newToolResponseWriter(context.Background()).Result()
	if empty.Content == nil {
		t.Fatal("content must be non-nil so it encodes as []")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newToolResponseWriter(ctx).AppendText("x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSlogLevelVarLogging(t *testing.T) {
	var lv slog.LevelVar
	lc := NewSlogLevelVarLogging(&lv)
	cases := map[mcp.LoggingLevel]slog.Level{
		mcp.LoggingLevelDebug:     slog.LevelDebug,
		mcp.LoggingLevelNotice:    slog.LevelInfo,
		mcp.LoggingLevelWarning:   slog.LevelWarn,
		mcp.LoggingLevelEmergency: slog.LevelError,
	}
	for in, want := range cases {
		if err := lc.SetLevel(context.Background(), nil, in); err != nil {
			t.Fatalf("SetLevel(%s): %v", in, err)
		}
		if lv.Level() != want {
			t.Fatalf("SetLevel(%s) -> %v, want %v", in, lv.Level(), want)
		}
	}
	if err := lc.SetLevel(context.Background(), nil, "verbose"); !errors.Is(err, ErrInvalidLoggingLevel) {
		t.Fatalf("expected ErrInvalidLoggingLevel, got %v", err)
	}
}

func TestNewServerCapabilities(t *testing.T) {
	ctx := context.Background()
	bare := NewServer(WithServerInfo(mcp.ImplementationInfo{Name: "s", Version: "1"}))
	if _, ok, _ := bare.GetToolsCapability(ctx, nil); ok {
		t.Fatal("tools should be absent when not configured")
	}
	if _, ok, _ := bare.GetPreferredProtocolVersion(ctx); ok {
		t.Fatal("protocol version should be negotiated by default")
	}

	srv := NewServer(
		WithToolsCapability(NewToolsContainer()),
		WithLoggingCapability(NewSlogLevelVarLogging(new(slog.LevelVar))),
		WithInstructions("use tools"),
	)
	if _, ok, _ := srv.GetToolsCapability(ctx, nil); !ok {
		t.Fatal("tools should be present")
	}
	if _, ok, _ := srv.GetLoggingCapability(ctx, nil); !ok {
		t.Fatal("logging should be present")
	}
	if s, ok, _ := srv.GetInstructions(ctx, nil); !ok || s != "use tools" {
		t.Fatalf("instructions = %q, %v", s, ok)
	}
}
