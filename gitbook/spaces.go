package gitbook

import (
	"context"
	"net/http"
)

// SpaceUpdate is the body of UpdateSpace. Nil fields are not sent.
type SpaceUpdate struct {
	Title      *string `json:"title,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
}

// SpaceCreate is the body of CreateSpace.
type SpaceCreate struct {
	Title      string  `json:"title"`
	Visibility *string `json:"visibility,omitempty"`
}

func (c *Client) GetSpace(ctx context.Context, spaceID string) (Space, error) {
	var out Space
	err := c.do(ctx, http.MethodGet, spacePath(spaceID), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateSpace(ctx context.Context, spaceID string, in SpaceUpdate) (Space, error) {
	var out Space
	err := c.do(ctx, http.MethodPatch, spacePath(spaceID), in, nil, &out)
	return out, err
}

func (c *Client) CreateSpace(ctx context.Context, orgID string, in SpaceCreate) (Space, error) {
	var out Space
	err := c.do(ctx, http.MethodPost, orgPath(orgID)+"/spaces", in, nil, &out)
	return out, err
}

// DuplicateSpace creates a full copy of a space. The request has no body.
func (c *Client) DuplicateSpace(ctx context.Context, spaceID string) (Space, error) {
	var out Space
	err := c.do(ctx, http.MethodPost, spacePath(spaceID)+"/duplicate", nil, nil, &out)
	return out, err
}

func (c *Client) ListSpaces(ctx context.Context, orgID string, opts ListOptions) (*List[Space], error) {
	out := &List[Space]{}
	err := c.do(ctx, http.MethodGet, orgPath(orgID)+"/spaces", nil, opts.Values(), out)
	return out, err
}

// SearchSpaceContent runs a full-text search. The query parameter is always
// sent alongside any pagination parameters.
func (c *Client) SearchSpaceContent(ctx context.Context, spaceID, query string, opts ListOptions) (*List[SearchResult], error) {
	q := opts.Values()
	q.Set("query", query)
	out := &List[SearchResult]{}
	err := c.do(ctx, http.MethodGet, spacePath(spaceID)+"/search", nil, q, out)
	return out, err
}

