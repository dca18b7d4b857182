package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ggoodman/gitbook-mcp/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "gitbook-mcp ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestToolsCommand(t *testing.T) {
	t.Setenv("GITBOOK_API_TOKEN", "")
	out, _, err := run(t, "", "tools")
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 39 {
		t.Fatalf("want 39 catalog lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "get_space ") || !strings.Contains(lines[0], "Get details of a GitBook space by its ID") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestServe_MissingToken(t *testing.T) {
	t.Setenv("GITBOOK_API_TOKEN", "")
	_, _, err := run(t, "")
	if !errors.Is(err, config.ErrMissingToken) {
		t.Fatalf("want ErrMissingToken, got %v", err)
	}
}

func TestServe_EndToEnd(t *testing.T) {
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/spaces/abc" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"abc","title":"Handbook"}`)
	}))
	defer api.Close()

	t.Setenv("GITBOOK_API_TOKEN", "secret")
	t.Setenv("GITBOOK_API_BASE_URL", api.URL+"/v1")
	t.Setenv("GITBOOK_DEFAULT_ORG_ID", "org1")
	t.Setenv("GITBOOK_MCP_LOG_LEVEL", "debug")

	stdin := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_space","arguments":{"spaceId":"abc"}}}`,
	}, "\n") + "\n"

	out, errOut, err := run(t, stdin)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if !strings.Contains(errOut, `"msg":"server.start"`) {
		t.Fatalf("expected JSON logs on stderr, got %q", errOut)
	}

	responses := map[string]json.RawMessage{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var msg struct {
			ID     json.RawMessage `json:"id"`
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(sc.Bytes(), &msg); err != nil {
			t.Fatalf("stdout line is not JSON: %q", sc.Text())
		}
		responses[string(msg.ID)] = msg.Result
	}

	var initRes struct {
		ServerInfo   struct{ Name string } `json:"serverInfo"`
		Instructions string                `json:"instructions"`
	}
	if err := json.Unmarshal(responses["1"], &initRes); err != nil {
		t.Fatalf("initialize result: %v", err)
	}
	if initRes.ServerInfo.Name != "gitbook-mcp" || !strings.Contains(initRes.Instructions, "org1") {
		t.Fatalf("unexpected initialize result %s", responses["1"])
	}

	var call struct {
		Content []struct{ Text string } `json:"content"`
		IsError bool                    `json:"isError"`
	}
	if err := json.Unmarshal(responses["2"], &call); err != nil {
		t.Fatalf("tools/call result: %v", err)
	}
	if call.IsError || len(call.Content) != 1 || call.Content[0].Text != "{\n  \"id\": \"abc\",\n  \"title\": \"Handbook\"\n}" {
		t.Fatalf("unexpected tools/call result %s", responses["2"])
	}
}
