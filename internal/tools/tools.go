// Package tools binds every GitBook API operation to an MCP tool. Each tool
// issues exactly one API call and renders the result as pretty-printed JSON,
// or the failure as a diagnostic with isError set.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
	"github.com/ggoodman/gitbook-mcp/sessions"
)

// API is the set of GitBook operations the tools call. *gitbook.Client
// implements it.
type API interface {
	GetSpace(ctx context.Context, spaceID string) (gitbook.Space, error)
	UpdateSpace(ctx context.Context, spaceID string, in gitbook.SpaceUpdate) (gitbook.Space, error)
	CreateSpace(ctx context.Context, orgID string, in gitbook.SpaceCreate) (gitbook.Space, error)
	DuplicateSpace(ctx context.Context, spaceID string) (gitbook.Space, error)
	ListSpaces(ctx context.Context, orgID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.Space], error)
	SearchSpaceContent(ctx context.Context, spaceID, query string, opts gitbook.ListOptions) (*gitbook.List[gitbook.SearchResult], error)

	GetSpaceRevision(ctx context.Context, spaceID, changeRequestID string) (gitbook.SpaceContent, error)
	ListPages(ctx context.Context, spaceID, changeRequestID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.Page], error)
	GetPageByID(ctx context.Context, spaceID, pageID, changeRequestID string) (gitbook.Page, error)
	GetPageByPath(ctx context.Context, spaceID, pagePath, changeRequestID string) (gitbook.Page, error)
	GetPageLinks(ctx context.Context, spaceID, pageID, changeRequestID string) ([]gitbook.PageLink, error)
	GetPageBacklinks(ctx context.Context, spaceID, pageID, changeRequestID string) ([]gitbook.PageLink, error)
	ListFiles(ctx context.Context, spaceID, changeRequestID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.ContentFile], error)
	GetFile(ctx context.Context, spaceID, fileID, changeRequestID string) (gitbook.ContentFile, error)

	CreateChangeRequest(ctx context.Context, spaceID string, in gitbook.ChangeRequestCreate) (gitbook.ChangeRequest, error)
	ListChangeRequests(ctx context.Context, spaceID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.ChangeRequest], error)
	GetChangeRequest(ctx context.Context, spaceID, changeRequestID string) (gitbook.ChangeRequest, error)
	UpdateChangeRequest(ctx context.Context, spaceID, changeRequestID string, in gitbook.ChangeRequestUpdate) (gitbook.ChangeRequest, error)
	MergeChangeRequest(ctx context.Context, spaceID, changeRequestID string) (gitbook.Record, error)
	SyncChangeRequest(ctx context.Context, spaceID, changeRequestID string) (gitbook.Record, error)

	ListReviews(ctx context.Context, spaceID, changeRequestID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.Review], error)
	SubmitReview(ctx context.Context, spaceID, changeRequestID string, in gitbook.ReviewSubmit) (gitbook.Review, error)
	ListRequestedReviewers(ctx context.Context, spaceID, changeRequestID string) ([]gitbook.Reviewer, error)
	RequestReviewers(ctx context.Context, spaceID, changeRequestID string, userIDs []string) (gitbook.Record, error)
	RemoveReviewer(ctx context.Context, spaceID, changeRequestID, userID string) error

	ListComments(ctx context.Context, spaceID, changeRequestID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.Comment], error)
	PostComment(ctx context.Context, spaceID, changeRequestID string, in gitbook.CommentBody) (gitbook.Comment, error)
	UpdateComment(ctx context.Context, spaceID, changeRequestID, commentID string, in gitbook.CommentBody) (gitbook.Comment, error)
	DeleteComment(ctx context.Context, spaceID, changeRequestID, commentID string) error
	ListCommentReplies(ctx context.Context, spaceID, changeRequestID, commentID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.CommentReply], error)
	PostCommentReply(ctx context.Context, spaceID, changeRequestID, commentID string, in gitbook.CommentBody) (gitbook.CommentReply, error)

	GitImport(ctx context.Context, spaceID string, in gitbook.GitSyncRequest) (gitbook.Record, error)
	GitExport(ctx context.Context, spaceID string, in gitbook.GitSyncRequest) (gitbook.Record, error)
	GetGitInfo(ctx context.Context, spaceID string) (gitbook.GitInfo, error)

	GetOrganization(ctx context.Context, orgID string) (gitbook.Organization, error)
	ListCollections(ctx context.Context, orgID string, opts gitbook.ListOptions) (*gitbook.List[gitbook.Collection], error)
	GetCollection(ctx context.Context, orgID, collectionID string) (gitbook.Collection, error)
	AskAI(ctx context.Context, orgID string, in gitbook.AskAIRequest) (gitbook.AskAIResponse, error)

	ImportContent(ctx context.Context, orgID string, in gitbook.ImportRequest) (gitbook.ImportResult, error)
}

var _ API = (*gitbook.Client)(nil)

// Option customizes the registry.
type Option func(*registry)

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

type registry struct {
	api API
	log *slog.Logger
}

// New registers all tools against api. The container keeps registration
// order, grouped by resource.
func New(api API, opts ...Option) *mcpservice.ToolsContainer {
	r := &registry{api: api, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}

	var defs []mcpservice.StaticTool
	defs = append(defs, r.spaceTools()...)
	defs = append(defs, r.pageTools()...)
	defs = append(defs, r.changeRequestTools()...)
	defs = append(defs, r.reviewTools()...)
	defs = append(defs, r.commentTools()...)
	defs = append(defs, r.gitSyncTools()...)
	defs = append(defs, r.organizationTools()...)
	defs = append(defs, r.importTools()...)
	return mcpservice.NewToolsContainer(defs...)
}

// Pagination is embedded by the arguments of every list tool.
type Pagination struct {
	Page  string   `json:"page,omitempty" jsonschema_description:"Pagination token"`
	Limit *float64 `json:"limit,omitempty" jsonschema_description:"Max items to return"`
}

// ListOptions converts the arguments into client list options.
func (p Pagination) ListOptions() gitbook.ListOptions {
	return gitbook.ListOptions{Page: p.Page, Limit: p.Limit}
}

type hint int

const (
	readOnly hint = iota
	write
	idempotentWrite
	destructive
)

func (h hint) annotations() mcp.ToolAnnotations {
	yes, no := true, false
	a := mcp.ToolAnnotations{OpenWorldHint: &yes}
	switch h {
	case readOnly:
		a.ReadOnlyHint = &yes
		a.IdempotentHint = &yes
	case write:
		a.ReadOnlyHint = &no
		a.DestructiveHint = &no
	case idempotentWrite:
		a.ReadOnlyHint = &no
		a.DestructiveHint = &no
		a.IdempotentHint = &yes
	case destructive:
		a.ReadOnlyHint = &no
		a.DestructiveHint = &yes
	}
	return a
}

// bind builds a tool whose call issues one API request and renders its
// outcome. Failures, including panics, become an isError result carrying
// FormatError text; the handler itself never fails the JSON-RPC request.
func bind[A any](r *registry, name, description string, h hint, call func(ctx context.Context, args A) (string, error)) mcpservice.StaticTool {
	return mcpservice.NewTool(name, func(ctx context.Context, _ sessions.Session, w mcpservice.ToolResponseWriter, req *mcpservice.ToolRequest[A]) error {
		text, failure := r.run(ctx, name, func(ctx context.Context) (string, error) {
			return call(ctx, req.Args())
		})
		if failure != nil {
			w.SetError(true)
			text = FormatError(failure)
		}
		// A cancelled call has no response to write into.
		_ = w.AppendText(text)
		return nil
	}, mcpservice.WithToolDescription(description), mcpservice.WithToolAnnotations(h.annotations()))
}

func (r *registry) run(ctx context.Context, name string, fn func(context.Context) (string, error)) (text string, failure any) {
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			failure = v
			r.log.ErrorContext(ctx, "tools.call.panic",
				slog.String("tool", name),
				slog.String("panic", fmt.Sprint(v)),
				slog.String("stack", string(debug.Stack())),
			)
			return
		}
		if failure == nil {
			r.log.DebugContext(ctx, "tools.call.ok", slog.String("tool", name), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
			return
		}
		attrs := []any{slog.String("tool", name), slog.Int64("dur_ms", time.Since(start).Milliseconds())}
		var apiErr *gitbook.APIError
		if err, ok := failure.(error); ok && errors.As(err, &apiErr) {
			attrs = append(attrs, slog.String("endpoint", apiErr.Endpoint), slog.Int("status", apiErr.StatusCode))
		}
		attrs = append(attrs, slog.String("err", fmt.Sprint(failure)))
		r.log.WarnContext(ctx, "tools.call.fail", attrs...)
	}()

	text, err := fn(ctx)
	if err != nil {
		return "", err
	}
	return text, nil
}

// pretty renders a successful result as two-space indented JSON. A non-JSON
// success body is rendered as a JSON string.
func pretty(v any, err error) (string, error) {
	if err != nil {
		var uc *gitbook.UnexpectedContentError
		if !errors.As(err, &uc) {
			return "", err
		}
		v = uc.Body
	}
	b, err := gitbook.MarshalJSON(v, "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(b), nil
}

// FormatError renders a failure for display inside an error tool result.
func FormatError(v any) string {
	var apiErr *gitbook.APIError
	switch e := v.(type) {
	case error:
		if errors.As(e, &apiErr) {
			return fmt.Sprintf("GitBook API Error (%d):\nEndpoint: %s\nMessage: %s", apiErr.StatusCode, apiErr.Endpoint, apiErr.Body)
		}
		return "Error: " + e.Error()
	default:
		return fmt.Sprintf("Unknown error: %v", v)
	}
}
