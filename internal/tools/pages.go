package tools

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

// Content reads target the published revision unless a change request is named.

type getSpaceRevisionArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID to read CR content instead of published"`
}

type listContentArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID"`
	Pagination
}

type pageArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	PageID          string `json:"pageId" jsonschema_description:"The ID of the page"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID"`
}

type pageByPathArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	PagePath        string `json:"pagePath" jsonschema_description:"The URL path of the page (e.g. 'getting-started/install')"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID"`
}

type fileArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	FileID          string `json:"fileId" jsonschema_description:"The ID of the file"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID"`
}

func (r *registry) pageTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "get_space_revision", "Get the full content tree of a GitBook space (or change request)", readOnly,
			func(ctx context.Context, a getSpaceRevisionArgs) (string, error) {
				return pretty(r.api.GetSpaceRevision(ctx, a.SpaceID, a.ChangeRequestID))
			}),
		bind(r, "list_pages", "List all pages in a GitBook space (or change request)", readOnly,
			func(ctx context.Context, a listContentArgs) (string, error) {
				return pretty(r.api.ListPages(ctx, a.SpaceID, a.ChangeRequestID, a.ListOptions()))
			}),
		bind(r, "get_page_by_id", "Get a specific page by its ID from a GitBook space (or change request)", readOnly,
			func(ctx context.Context, a pageArgs) (string, error) {
				return pretty(r.api.GetPageByID(ctx, a.SpaceID, a.PageID, a.ChangeRequestID))
			}),
		bind(r, "get_page_by_path", "Get a specific page by its URL path from a GitBook space (or change request)", readOnly,
			func(ctx context.Context, a pageByPathArgs) (string, error) {
				return pretty(r.api.GetPageByPath(ctx, a.SpaceID, a.PagePath, a.ChangeRequestID))
			}),
		bind(r, "get_page_links", "Get all outgoing links from a page", readOnly,
			func(ctx context.Context, a pageArgs) (string, error) {
				return pretty(r.api.GetPageLinks(ctx, a.SpaceID, a.PageID, a.ChangeRequestID))
			}),
		bind(r, "get_page_backlinks", "Get all pages that link to a specific page (backlinks)", readOnly,
			func(ctx context.Context, a pageArgs) (string, error) {
				return pretty(r.api.GetPageBacklinks(ctx, a.SpaceID, a.PageID, a.ChangeRequestID))
			}),
		bind(r, "list_files", "List all files (images, attachments) in a GitBook space (or change request)", readOnly,
			func(ctx context.Context, a listContentArgs) (string, error) {
				return pretty(r.api.ListFiles(ctx, a.SpaceID, a.ChangeRequestID, a.ListOptions()))
			}),
		bind(r, "get_file", "Get details and download URL for a specific file in a GitBook space", readOnly,
			func(ctx context.Context, a fileArgs) (string, error) {
				return pretty(r.api.GetFile(ctx, a.SpaceID, a.FileID, a.ChangeRequestID))
			}),
	}
}
