package tools

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type organizationArgs struct {
	OrgID string `json:"orgId" jsonschema_description:"The organization ID"`
}

type listCollectionsArgs struct {
	OrgID string `json:"orgId" jsonschema_description:"The organization ID"`
	Pagination
}

type collectionArgs struct {
	OrgID        string `json:"orgId" jsonschema_description:"The organization ID"`
	CollectionID string `json:"collectionId" jsonschema_description:"The collection ID"`
}

type askAIArgs struct {
	OrgID string `json:"orgId" jsonschema_description:"The organization ID"`
	Query string `json:"query" jsonschema_description:"The question to ask the AI"`
}

func (r *registry) organizationTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "get_organization", "Get details of a GitBook organization", readOnly,
			func(ctx context.Context, a organizationArgs) (string, error) {
				return pretty(r.api.GetOrganization(ctx, a.OrgID))
			}),
		bind(r, "list_collections", "List all collections in a GitBook organization", readOnly,
			func(ctx context.Context, a listCollectionsArgs) (string, error) {
				return pretty(r.api.ListCollections(ctx, a.OrgID, a.ListOptions()))
			}),
		bind(r, "get_collection", "Get details of a specific collection in a GitBook organization", readOnly,
			func(ctx context.Context, a collectionArgs) (string, error) {
				return pretty(r.api.GetCollection(ctx, a.OrgID, a.CollectionID))
			}),
		// ask_ai is a POST but never mutates content.
		bind(r, "ask_ai", "Ask GitBook AI a question about the organization's documentation content", readOnly,
			func(ctx context.Context, a askAIArgs) (string, error) {
				return pretty(r.api.AskAI(ctx, a.OrgID, gitbook.AskAIRequest{Query: a.Query}))
			}),
	}
}
