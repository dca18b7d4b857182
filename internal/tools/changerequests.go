package tools

import (
	"context"
	"fmt"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type createChangeRequestArgs struct {
	SpaceID string  `json:"spaceId" jsonschema_description:"The ID of the space"`
	Subject *string `json:"subject,omitempty" jsonschema_description:"Subject/title of the change request"`
}

type listChangeRequestsArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space"`
	Pagination
}

type changeRequestArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
}

type updateChangeRequestArgs struct {
	SpaceID         string  `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string  `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
	Subject         *string `json:"subject,omitempty" jsonschema_description:"New subject/title"`
	Status          *string `json:"status,omitempty" jsonschema:"enum=draft,enum=open,enum=closed" jsonschema_description:"New status for the change request"`
}

type mergeChangeRequestArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId" jsonschema_description:"The ID or number of the change request to merge"`
}

type syncChangeRequestArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId" jsonschema_description:"The ID or number of the change request to sync"`
}

func (r *registry) changeRequestTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "create_change_request", "Create a new change request (similar to a PR/draft) in a GitBook space", write,
			func(ctx context.Context, a createChangeRequestArgs) (string, error) {
				return pretty(r.api.CreateChangeRequest(ctx, a.SpaceID, gitbook.ChangeRequestCreate{Subject: a.Subject}))
			}),
		bind(r, "list_change_requests", "List change requests in a GitBook space", readOnly,
			func(ctx context.Context, a listChangeRequestsArgs) (string, error) {
				return pretty(r.api.ListChangeRequests(ctx, a.SpaceID, a.ListOptions()))
			}),
		bind(r, "get_change_request", "Get details of a specific change request", readOnly,
			func(ctx context.Context, a changeRequestArgs) (string, error) {
				return pretty(r.api.GetChangeRequest(ctx, a.SpaceID, a.ChangeRequestID))
			}),
		bind(r, "update_change_request", "Update a change request's properties (subject, status, etc.)", idempotentWrite,
			func(ctx context.Context, a updateChangeRequestArgs) (string, error) {
				in := gitbook.ChangeRequestUpdate{Subject: a.Subject, Status: a.Status}
				return pretty(r.api.UpdateChangeRequest(ctx, a.SpaceID, a.ChangeRequestID, in))
			}),
		bind(r, "merge_change_request", "Merge a change request into the main content (DESTRUCTIVE: publishes changes)", destructive,
			func(ctx context.Context, a mergeChangeRequestArgs) (string, error) {
				text, err := pretty(r.api.MergeChangeRequest(ctx, a.SpaceID, a.ChangeRequestID))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Change request %s merged successfully.\n%s", a.ChangeRequestID, text), nil
			}),
		bind(r, "sync_change_request", "Sync/update a change request with the latest main content", write,
			func(ctx context.Context, a syncChangeRequestArgs) (string, error) {
				return pretty(r.api.SyncChangeRequest(ctx, a.SpaceID, a.ChangeRequestID))
			}),
	}
}
