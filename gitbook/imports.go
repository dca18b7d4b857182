package gitbook

import (
	"context"
	"net/http"
)

// ImportRequest is the body of ImportContent. SpaceID targets an existing
// space and is omitted when nil.
type ImportRequest struct {
	URL     string  `json:"url"`
	SpaceID *string `json:"spaceId,omitempty"`
}

func (c *Client) ImportContent(ctx context.Context, orgID string, in ImportRequest) (ImportResult, error) {
	var out ImportResult
	err := c.do(ctx, http.MethodPost, orgPath(orgID)+"/imports", in, nil, &out)
	return out, err
}
