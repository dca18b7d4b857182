package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type hit struct {
	method string
	path   string
	query  string
	body   string
}

type gitbookStub struct {
	mu   sync.Mutex
	hits []hit
}

func (s *gitbookStub) last(t *testing.T) hit {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.hits) == 0 {
		t.Fatalf("no request reached the API")
	}
	return s.hits[len(s.hits)-1]
}

// newContainer wires the tools to a real client talking to a canned API.
func newContainer(t *testing.T, status int, ctype, body string) (*mcpservice.ToolsContainer, *gitbookStub) {
	t.Helper()
	stub := &gitbookStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.hits = append(stub.hits, hit{method: r.Method, path: r.URL.EscapedPath(), query: r.URL.RawQuery, body: string(b)})
		stub.mu.Unlock()
		if ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(gitbook.New("tok", gitbook.WithBaseURL(srv.URL))), stub
}

func call(t *testing.T, c *mcpservice.ToolsContainer, name, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), nil, &mcp.CallToolRequestReceived{Name: name, Arguments: json.RawMessage(args)})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(res.Content) != 1 || res.Content[0].Type != mcp.ContentTypeText {
		t.Fatalf("CallTool(%s): want one text block, got %+v", name, res.Content)
	}
	return res
}

func TestNew_RegistersEveryTool(t *testing.T) {
	c := New(gitbook.New("tok"))
	tools := c.Snapshot()
	if len(tools) != 39 {
		t.Fatalf("want 39 tools, got %d", len(tools))
	}
	seen := map[string]bool{}
	for _, tl := range tools {
		if seen[tl.Name] {
			t.Fatalf("duplicate tool %q", tl.Name)
		}
		seen[tl.Name] = true
		if tl.Description == "" {
			t.Fatalf("tool %q has no description", tl.Name)
		}
		if tl.InputSchema.Type != "object" || tl.InputSchema.AdditionalProperties {
			t.Fatalf("tool %q: unexpected schema envelope %+v", tl.Name, tl.InputSchema)
		}
		if tl.Annotations == nil || tl.Annotations.ReadOnlyHint == nil {
			t.Fatalf("tool %q has no read-only hint", tl.Name)
		}
		if strings.HasPrefix(tl.Name, "get_") || strings.HasPrefix(tl.Name, "list_") {
			if !*tl.Annotations.ReadOnlyHint {
				t.Fatalf("tool %q should be read-only", tl.Name)
			}
		}
	}
	if tools[0].Name != "get_space" || tools[38].Name != "import_content" {
		t.Fatalf("unexpected order: first=%s last=%s", tools[0].Name, tools[38].Name)
	}
	for _, name := range []string{"merge_change_request", "delete_comment", "remove_reviewer", "git_import", "import_content"} {
		var found bool
		for _, tl := range tools {
			if tl.Name == name {
				found = true
				if tl.Annotations.DestructiveHint == nil || !*tl.Annotations.DestructiveHint {
					t.Fatalf("tool %q should be destructive", name)
				}
			}
		}
		if !found {
			t.Fatalf("tool %q not registered", name)
		}
	}
}

func TestSchemas(t *testing.T) {
	byName := map[string]mcp.Tool{}
	for _, tl := range New(gitbook.New("tok")).Snapshot() {
		byName[tl.Name] = tl
	}

	lp := byName["list_pages"].InputSchema
	if strings.Join(lp.Required, ",") != "spaceId" {
		t.Fatalf("list_pages required: %v", lp.Required)
	}
	if lp.Properties["limit"].Type != "number" || lp.Properties["page"].Type != "string" {
		t.Fatalf("list_pages pagination props: %+v", lp.Properties)
	}
	if lp.Properties["page"].Description != "Pagination token" {
		t.Fatalf("page description: %q", lp.Properties["page"].Description)
	}

	sr := byName["submit_review"].InputSchema
	if got := fmt.Sprint(sr.Properties["status"].Enum); got != "[approved changes-requested commented]" {
		t.Fatalf("submit_review status enum: %s", got)
	}
	rr := byName["request_reviewers"].InputSchema.Properties["userIds"]
	if rr.Type != "array" || rr.Items == nil || rr.Items.Type != "string" {
		t.Fatalf("request_reviewers userIds: %+v", rr)
	}
	us := byName["update_space"].InputSchema
	if len(us.Required) != 1 || len(us.Properties["visibility"].Enum) != 5 {
		t.Fatalf("update_space schema: %+v", us)
	}
}

func TestCall_APIError(t *testing.T) {
	c, _ := newContainer(t, http.StatusNotFound, "text/plain", "not found")
	res := call(t, c, "get_space", `{"spaceId":"abc"}`)
	if !res.IsError {
		t.Fatalf("expected isError")
	}
	text := res.Content[0].Text
	for _, want := range []string{"GET /spaces/abc", "404", "not found"} {
		if !strings.Contains(text, want) {
			t.Fatalf("error text %q missing %q", text, want)
		}
	}
	if !strings.HasPrefix(text, "GitBook API Error (404):\n") {
		t.Fatalf("unexpected error text %q", text)
	}
}

func TestCall_PrettyJSON(t *testing.T) {
	body := `{"id":"abc","title":"Docs & <Guides>","revision":9007199254740993}`
	c, stub := newContainer(t, http.StatusOK, "application/json; charset=utf-8", body)
	first := call(t, c, "get_space", `{"spaceId":"abc"}`)
	second := call(t, c, "get_space", `{"spaceId":"abc"}`)
	if first.IsError {
		t.Fatalf("unexpected error: %s", first.Content[0].Text)
	}
	want := "{\n  \"id\": \"abc\",\n  \"revision\": 9007199254740993,\n  \"title\": \"Docs & <Guides>\"\n}"
	if first.Content[0].Text != want {
		t.Fatalf("got\n%s\nwant\n%s", first.Content[0].Text, want)
	}
	if first.Content[0].Text != second.Content[0].Text {
		t.Fatalf("identical calls rendered differently")
	}
	if h := stub.last(t); h.method != http.MethodGet || h.path != "/spaces/abc" {
		t.Fatalf("unexpected request %+v", h)
	}
}

func TestCall_Pagination(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"none", `{"orgId":"o1"}`, ""},
		{"zero limit", `{"orgId":"o1","limit":0}`, "limit=0"},
		{"empty page", `{"orgId":"o1","page":""}`, ""},
		{"both", `{"orgId":"o1","page":"tok","limit":25}`, "limit=25&page=tok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, stub := newContainer(t, http.StatusOK, "application/json", `{"items":[]}`)
			res := call(t, c, "list_spaces", tt.args)
			if res.IsError {
				t.Fatalf("unexpected error: %s", res.Content[0].Text)
			}
			if h := stub.last(t); h.query != tt.want || h.path != "/orgs/o1/spaces" {
				t.Fatalf("got %s?%s, want query %q", h.path, h.query, tt.want)
			}
		})
	}
}

func TestCall_ChangeRequestScope(t *testing.T) {
	c, stub := newContainer(t, http.StatusOK, "application/json", `{"items":[]}`)

	call(t, c, "list_pages", `{"spaceId":"s1"}`)
	if h := stub.last(t); h.path != "/spaces/s1/content/pages" {
		t.Fatalf("published scope: %s", h.path)
	}
	call(t, c, "list_pages", `{"spaceId":"s1","changeRequestId":"cr1"}`)
	if h := stub.last(t); h.path != "/spaces/s1/change-requests/cr1/content/pages" {
		t.Fatalf("change request scope: %s", h.path)
	}
}

func TestCall_SpecialTexts(t *testing.T) {
	t.Run("merge", func(t *testing.T) {
		c, stub := newContainer(t, http.StatusOK, "application/json", `{"merged":true}`)
		res := call(t, c, "merge_change_request", `{"spaceId":"s1","changeRequestId":"cr1"}`)
		want := "Change request cr1 merged successfully.\n{\n  \"merged\": true\n}"
		if res.IsError || res.Content[0].Text != want {
			t.Fatalf("got %q", res.Content[0].Text)
		}
		if h := stub.last(t); h.method != http.MethodPost || h.path != "/spaces/s1/change-requests/cr1/merge" {
			t.Fatalf("unexpected request %+v", h)
		}
	})
	t.Run("delete comment", func(t *testing.T) {
		c, stub := newContainer(t, http.StatusNoContent, "", "")
		res := call(t, c, "delete_comment", `{"spaceId":"s1","commentId":"c1"}`)
		if res.IsError || res.Content[0].Text != "Comment c1 deleted successfully." {
			t.Fatalf("got %q", res.Content[0].Text)
		}
		if h := stub.last(t); h.method != http.MethodDelete || h.path != "/spaces/s1/comments/c1" {
			t.Fatalf("unexpected request %+v", h)
		}
	})
	t.Run("remove reviewer", func(t *testing.T) {
		c, _ := newContainer(t, http.StatusNoContent, "", "")
		res := call(t, c, "remove_reviewer", `{"spaceId":"s1","changeRequestId":"cr1","userId":"u1"}`)
		if res.IsError || res.Content[0].Text != "Reviewer u1 removed from change request cr1." {
			t.Fatalf("got %q", res.Content[0].Text)
		}
	})
}

func TestCall_PayloadOmitsUnsetFields(t *testing.T) {
	c, stub := newContainer(t, http.StatusOK, "application/json", `{}`)
	call(t, c, "update_space", `{"spaceId":"s1","title":"New"}`)
	if h := stub.last(t); h.method != http.MethodPatch || h.body != `{"title":"New"}` {
		t.Fatalf("unexpected request %+v", h)
	}
	call(t, c, "request_reviewers", `{"spaceId":"s1","changeRequestId":"cr1","userIds":["u1","u2"]}`)
	if h := stub.last(t); h.body != `{"users":["u1","u2"]}` {
		t.Fatalf("unexpected body %s", h.body)
	}
}

func TestCall_NonJSONSuccess(t *testing.T) {
	c, _ := newContainer(t, http.StatusOK, "text/plain", "queued")
	res := call(t, c, "git_export", `{"spaceId":"s1","url":"https://example.com/repo.git"}`)
	if res.IsError || res.Content[0].Text != `"queued"` {
		t.Fatalf("got %+v", res)
	}
}

func TestCall_InvalidArguments(t *testing.T) {
	c, stub := newContainer(t, http.StatusOK, "application/json", `{}`)
	tests := []struct {
		name string
		tool string
		args string
		want string
	}{
		{"missing required", "get_space", `{}`, `missing required field "spaceId"`},
		{"bad enum", "submit_review", `{"spaceId":"s","changeRequestId":"c","status":"lgtm"}`, `field "status" must be one of`},
		{"unknown field", "get_space", `{"spaceId":"s","extra":1}`, "unknown field"},
		{"wrong type", "list_spaces", `{"orgId":"o","limit":"ten"}`, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, c, tt.tool, tt.args)
			if !res.IsError || !strings.Contains(res.Content[0].Text, tt.want) {
				t.Fatalf("got %+v, want error containing %q", res, tt.want)
			}
		})
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.hits) != 0 {
		t.Fatalf("invalid arguments reached the API: %+v", stub.hits)
	}
}

type panickingAPI struct {
	API
	value any
}

func (p panickingAPI) GetSpace(context.Context, string) (gitbook.Space, error) {
	panic(p.value)
}

type failingAPI struct {
	API
	err error
}

func (f failingAPI) GetOrganization(context.Context, string) (gitbook.Organization, error) {
	return nil, f.err
}

func TestCall_Recovers(t *testing.T) {
	c := New(panickingAPI{value: "kaboom"})
	res := call(t, c, "get_space", `{"spaceId":"s1"}`)
	if !res.IsError || res.Content[0].Text != "Unknown error: kaboom" {
		t.Fatalf("got %+v", res)
	}

	c = New(panickingAPI{value: errors.New("bad state")})
	res = call(t, c, "get_space", `{"spaceId":"s1"}`)
	if !res.IsError || res.Content[0].Text != "Error: bad state" {
		t.Fatalf("got %+v", res)
	}
}

func TestCall_TransportError(t *testing.T) {
	c := New(failingAPI{err: fmt.Errorf("dial tcp: %w", errors.New("connection refused"))})
	res := call(t, c, "get_organization", `{"orgId":"o1"}`)
	if !res.IsError || res.Content[0].Text != "Error: dial tcp: connection refused" {
		t.Fatalf("got %+v", res)
	}
}

func TestFormatError(t *testing.T) {
	apiErr := &gitbook.APIError{StatusCode: 403, Status: "Forbidden", Body: `{"error":"nope"}`, Endpoint: "DELETE /spaces/s1/comments/c1"}
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"api error", apiErr, "GitBook API Error (403):\nEndpoint: DELETE /spaces/s1/comments/c1\nMessage: {\"error\":\"nope\"}"},
		{"wrapped api error", fmt.Errorf("calling: %w", apiErr), "GitBook API Error (403):\nEndpoint: DELETE /spaces/s1/comments/c1\nMessage: {\"error\":\"nope\"}"},
		{"plain error", errors.New("boom"), "Error: boom"},
		{"string", "boom", "Unknown error: boom"},
		{"number", 42, "Unknown error: 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.in); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
