package tools

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type getSpaceArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the GitBook space"`
}

type updateSpaceArgs struct {
	SpaceID    string  `json:"spaceId" jsonschema_description:"The ID of the space to update"`
	Title      *string `json:"title,omitempty" jsonschema_description:"New title for the space"`
	Visibility *string `json:"visibility,omitempty" jsonschema:"enum=public,enum=unlisted,enum=share-link,enum=visitor-auth,enum=in-collection" jsonschema_description:"Visibility setting for the space"`
}

type createSpaceArgs struct {
	OrgID      string  `json:"orgId" jsonschema_description:"The organization ID"`
	Title      string  `json:"title" jsonschema_description:"Title for the new space"`
	Visibility *string `json:"visibility,omitempty" jsonschema:"enum=public,enum=unlisted,enum=share-link,enum=visitor-auth,enum=in-collection" jsonschema_description:"Visibility setting (defaults to organization default)"`
}

type duplicateSpaceArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space to duplicate"`
}

type listSpacesArgs struct {
	OrgID string `json:"orgId" jsonschema_description:"The organization ID"`
	Pagination
}

type searchSpaceContentArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space to search in"`
	Query   string `json:"query" jsonschema_description:"The search query"`
	Pagination
}

func (r *registry) spaceTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "get_space", "Get details of a GitBook space by its ID", readOnly,
			func(ctx context.Context, a getSpaceArgs) (string, error) {
				return pretty(r.api.GetSpace(ctx, a.SpaceID))
			}),
		bind(r, "update_space", "Update a GitBook space's properties (title, visibility, etc.)", idempotentWrite,
			func(ctx context.Context, a updateSpaceArgs) (string, error) {
				return pretty(r.api.UpdateSpace(ctx, a.SpaceID, gitbook.SpaceUpdate{Title: a.Title, Visibility: a.Visibility}))
			}),
		bind(r, "create_space", "Create a new GitBook space in an organization", write,
			func(ctx context.Context, a createSpaceArgs) (string, error) {
				return pretty(r.api.CreateSpace(ctx, a.OrgID, gitbook.SpaceCreate{Title: a.Title, Visibility: a.Visibility}))
			}),
		bind(r, "duplicate_space", "Duplicate an existing GitBook space (creates a full copy)", write,
			func(ctx context.Context, a duplicateSpaceArgs) (string, error) {
				return pretty(r.api.DuplicateSpace(ctx, a.SpaceID))
			}),
		bind(r, "list_spaces", "List all spaces in a GitBook organization", readOnly,
			func(ctx context.Context, a listSpacesArgs) (string, error) {
				return pretty(r.api.ListSpaces(ctx, a.OrgID, a.ListOptions()))
			}),
		bind(r, "search_space_content", "Search for content within a GitBook space", readOnly,
			func(ctx context.Context, a searchSpaceContentArgs) (string, error) {
				return pretty(r.api.SearchSpaceContent(ctx, a.SpaceID, a.Query, a.ListOptions()))
			}),
	}
}
