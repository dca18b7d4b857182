package gitbook

import (
	"context"
	"net/http"
	"net/url"
)

// ReviewSubmit is the body of SubmitReview.
type ReviewSubmit struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (c *Client) ListReviews(ctx context.Context, spaceID, changeRequestID string, opts ListOptions) (*List[Review], error) {
	out := &List[Review]{}
	err := c.do(ctx, http.MethodGet, changeRequestPath(spaceID, changeRequestID)+"/reviews", nil, opts.Values(), out)
	return out, err
}

func (c *Client) SubmitReview(ctx context.Context, spaceID, changeRequestID string, in ReviewSubmit) (Review, error) {
	var out Review
	err := c.do(ctx, http.MethodPost, changeRequestPath(spaceID, changeRequestID)+"/reviews", in, nil, &out)
	return out, err
}

// ListRequestedReviewers returns the pending reviewers. The result is never nil.
func (c *Client) ListRequestedReviewers(ctx context.Context, spaceID, changeRequestID string) ([]Reviewer, error) {
	var out struct {
		Items []Reviewer `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, changeRequestPath(spaceID, changeRequestID)+"/requested-reviewers", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		return []Reviewer{}, nil
	}
	return out.Items, nil
}

// RequestReviewers asks the given users to review the change request.
func (c *Client) RequestReviewers(ctx context.Context, spaceID, changeRequestID string, userIDs []string) (Record, error) {
	if userIDs == nil {
		userIDs = []string{}
	}
	body := struct {
		Users []string `json:"users"`
	}{Users: userIDs}
	var out Record
	err := c.do(ctx, http.MethodPost, changeRequestPath(spaceID, changeRequestID)+"/requested-reviewers", body, nil, &out)
	return out, err
}

// RemoveReviewer drops a pending reviewer. Any response body is discarded.
func (c *Client) RemoveReviewer(ctx context.Context, spaceID, changeRequestID, userID string) error {
	return c.do(ctx, http.MethodDelete, changeRequestPath(spaceID, changeRequestID)+"/requested-reviewers/"+url.PathEscape(userID), nil, nil, nil)
}
