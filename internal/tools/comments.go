package tools

import (
	"context"
	"fmt"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

// Every comment tool works on the space's comments, or on a change request's
// when changeRequestId is given.

type listCommentsArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID (scopes comments to that CR)"`
	Pagination
}

type postCommentArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	Body            string `json:"body" jsonschema_description:"The comment text (markdown supported)"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID (posts comment on that CR)"`
}

type updateCommentArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	CommentID       string `json:"commentId" jsonschema_description:"The ID of the comment to update"`
	Body            string `json:"body" jsonschema_description:"The new comment text (markdown supported)"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID if comment is on a CR"`
}

type deleteCommentArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	CommentID       string `json:"commentId" jsonschema_description:"The ID of the comment to delete"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID if comment is on a CR"`
}

type listCommentRepliesArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	CommentID       string `json:"commentId" jsonschema_description:"The ID of the parent comment"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID if comment is on a CR"`
	Pagination
}

type postCommentReplyArgs struct {
	SpaceID         string `json:"spaceId" jsonschema_description:"The ID of the space"`
	CommentID       string `json:"commentId" jsonschema_description:"The ID of the parent comment to reply to"`
	Body            string `json:"body" jsonschema_description:"The reply text (markdown supported)"`
	ChangeRequestID string `json:"changeRequestId,omitempty" jsonschema_description:"Optional change request ID if comment is on a CR"`
}

func (r *registry) commentTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "list_comments", "List comments on a GitBook space or change request", readOnly,
			func(ctx context.Context, a listCommentsArgs) (string, error) {
				return pretty(r.api.ListComments(ctx, a.SpaceID, a.ChangeRequestID, a.ListOptions()))
			}),
		bind(r, "post_comment", "Post a new comment on a GitBook space or change request", write,
			func(ctx context.Context, a postCommentArgs) (string, error) {
				return pretty(r.api.PostComment(ctx, a.SpaceID, a.ChangeRequestID, gitbook.CommentBody{Body: a.Body}))
			}),
		bind(r, "update_comment", "Update an existing comment (uses PUT as per GitBook API)", idempotentWrite,
			func(ctx context.Context, a updateCommentArgs) (string, error) {
				return pretty(r.api.UpdateComment(ctx, a.SpaceID, a.ChangeRequestID, a.CommentID, gitbook.CommentBody{Body: a.Body}))
			}),
		bind(r, "delete_comment", "Delete a comment (DESTRUCTIVE: cannot be undone)", destructive,
			func(ctx context.Context, a deleteCommentArgs) (string, error) {
				if err := r.api.DeleteComment(ctx, a.SpaceID, a.ChangeRequestID, a.CommentID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Comment %s deleted successfully.", a.CommentID), nil
			}),
		bind(r, "list_comment_replies", "List replies to a specific comment", readOnly,
			func(ctx context.Context, a listCommentRepliesArgs) (string, error) {
				return pretty(r.api.ListCommentReplies(ctx, a.SpaceID, a.ChangeRequestID, a.CommentID, a.ListOptions()))
			}),
		bind(r, "post_comment_reply", "Post a reply to an existing comment", write,
			func(ctx context.Context, a postCommentReplyArgs) (string, error) {
				return pretty(r.api.PostCommentReply(ctx, a.SpaceID, a.ChangeRequestID, a.CommentID, gitbook.CommentBody{Body: a.Body}))
			}),
	}
}
