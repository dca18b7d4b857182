package tools

import (
	"context"
	"fmt"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type listReviewsArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
	Pagination
}

type submitReviewArgs struct {
	SpaceID         string  `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string  `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
	Status          string  `json:"status" jsonschema:"enum=approved,enum=changes-requested,enum=commented" jsonschema_description:"The review decision"`
	Comment         *string `json:"comment,omitempty" jsonschema_description:"Optional review comment"`
}

type requestReviewersArgs struct {
	SpaceID         string   `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string   `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
	UserIDs         []string `json:"userIds" jsonschema_description:"Array of user IDs to request as reviewers"`
}

type removeReviewerArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId" jsonschema_description:"The ID or number of the change request"`
	UserID          string `json:"userId" jsonschema_description:"The user ID to remove from reviewers"`
}

func (r *registry) reviewTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "list_reviews", "List reviews on a change request", readOnly,
			func(ctx context.Context, a listReviewsArgs) (string, error) {
				return pretty(r.api.ListReviews(ctx, a.SpaceID, a.ChangeRequestID, a.ListOptions()))
			}),
		bind(r, "submit_review", "Submit a review on a change request (approve, request changes, or comment)", write,
			func(ctx context.Context, a submitReviewArgs) (string, error) {
				in := gitbook.ReviewSubmit{Status: a.Status, Comment: a.Comment}
				return pretty(r.api.SubmitReview(ctx, a.SpaceID, a.ChangeRequestID, in))
			}),
		bind(r, "list_requested_reviewers", "List users who have been requested to review a change request", readOnly,
			func(ctx context.Context, a changeRequestArgs) (string, error) {
				return pretty(r.api.ListRequestedReviewers(ctx, a.SpaceID, a.ChangeRequestID))
			}),
		bind(r, "request_reviewers", "Request specific users to review a change request", idempotentWrite,
			func(ctx context.Context, a requestReviewersArgs) (string, error) {
				return pretty(r.api.RequestReviewers(ctx, a.SpaceID, a.ChangeRequestID, a.UserIDs))
			}),
		bind(r, "remove_reviewer", "Remove a requested reviewer from a change request (DESTRUCTIVE)", destructive,
			func(ctx context.Context, a removeReviewerArgs) (string, error) {
				if err := r.api.RemoveReviewer(ctx, a.SpaceID, a.ChangeRequestID, a.UserID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Reviewer %s removed from change request %s.", a.UserID, a.ChangeRequestID), nil
			}),
	}
}
