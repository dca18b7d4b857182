package gitbook

import (
	"context"
	"net/http"
	"net/url"
)

// CommentBody is the body of every comment and reply write.
type CommentBody struct {
	Body string `json:"body"`
}

// Comments live either on a space or on one of its change requests; an empty
// changeRequestID selects the space.

func (c *Client) ListComments(ctx context.Context, spaceID, changeRequestID string, opts ListOptions) (*List[Comment], error) {
	out := &List[Comment]{}
	err := c.do(ctx, http.MethodGet, CommentsBasePath(spaceID, changeRequestID), nil, opts.Values(), out)
	return out, err
}

func (c *Client) PostComment(ctx context.Context, spaceID, changeRequestID string, in CommentBody) (Comment, error) {
	var out Comment
	err := c.do(ctx, http.MethodPost, CommentsBasePath(spaceID, changeRequestID), in, nil, &out)
	return out, err
}

// UpdateComment replaces the comment body. GitBook uses PUT here, not PATCH.
func (c *Client) UpdateComment(ctx context.Context, spaceID, changeRequestID, commentID string, in CommentBody) (Comment, error) {
	var out Comment
	err := c.do(ctx, http.MethodPut, commentPath(spaceID, changeRequestID, commentID), in, nil, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, spaceID, changeRequestID, commentID string) error {
	return c.do(ctx, http.MethodDelete, commentPath(spaceID, changeRequestID, commentID), nil, nil, nil)
}

func (c *Client) ListCommentReplies(ctx context.Context, spaceID, changeRequestID, commentID string, opts ListOptions) (*List[CommentReply], error) {
	out := &List[CommentReply]{}
	err := c.do(ctx, http.MethodGet, commentPath(spaceID, changeRequestID, commentID)+"/replies", nil, opts.Values(), out)
	return out, err
}

func (c *Client) PostCommentReply(ctx context.Context, spaceID, changeRequestID, commentID string, in CommentBody) (CommentReply, error) {
	var out CommentReply
	err := c.do(ctx, http.MethodPost, commentPath(spaceID, changeRequestID, commentID)+"/replies", in, nil, &out)
	return out, err
}

func commentPath(spaceID, changeRequestID, commentID string) string {
	return CommentsBasePath(spaceID, changeRequestID) + "/" + url.PathEscape(commentID)
}
