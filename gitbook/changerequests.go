package gitbook

import (
	"context"
	"net/http"
)

// ChangeRequestCreate is the body of CreateChangeRequest.
type ChangeRequestCreate struct {
	Subject *string `json:"subject,omitempty"`
}

// ChangeRequestUpdate is the body of UpdateChangeRequest. Nil fields are not sent.
type ChangeRequestUpdate struct {
	Subject *string `json:"subject,omitempty"`
	Status  *string `json:"status,omitempty"`
}

func (c *Client) CreateChangeRequest(ctx context.Context, spaceID string, in ChangeRequestCreate) (ChangeRequest, error) {
	var out ChangeRequest
	err := c.do(ctx, http.MethodPost, spacePath(spaceID)+"/change-requests", in, nil, &out)
	return out, err
}

func (c *Client) ListChangeRequests(ctx context.Context, spaceID string, opts ListOptions) (*List[ChangeRequest], error) {
	out := &List[ChangeRequest]{}
	err := c.do(ctx, http.MethodGet, spacePath(spaceID)+"/change-requests", nil, opts.Values(), out)
	return out, err
}

// GetChangeRequest accepts either the change request ID or its number.
func (c *Client) GetChangeRequest(ctx context.Context, spaceID, changeRequestID string) (ChangeRequest, error) {
	var out ChangeRequest
	err := c.do(ctx, http.MethodGet, changeRequestPath(spaceID, changeRequestID), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateChangeRequest(ctx context.Context, spaceID, changeRequestID string, in ChangeRequestUpdate) (ChangeRequest, error) {
	var out ChangeRequest
	err := c.do(ctx, http.MethodPatch, changeRequestPath(spaceID, changeRequestID), in, nil, &out)
	return out, err
}

// MergeChangeRequest publishes the change request into the space.
func (c *Client) MergeChangeRequest(ctx context.Context, spaceID, changeRequestID string) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, changeRequestPath(spaceID, changeRequestID)+"/merge", nil, nil, &out)
	return out, err
}

// SyncChangeRequest rebases the change request onto the latest published content.
func (c *Client) SyncChangeRequest(ctx context.Context, spaceID, changeRequestID string) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, changeRequestPath(spaceID, changeRequestID)+"/update", nil, nil, &out)
	return out, err
}
