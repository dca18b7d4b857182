package gitbook

import (
	"context"
	"net/http"
)

// GitSyncRequest is the body of GitImport and GitExport.
type GitSyncRequest struct {
	URL string `json:"url"`
}

// GitImport overwrites the space content with the repository at in.URL.
func (c *Client) GitImport(ctx context.Context, spaceID string, in GitSyncRequest) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, spacePath(spaceID)+"/git/import", in, nil, &out)
	return out, err
}

func (c *Client) GitExport(ctx context.Context, spaceID string, in GitSyncRequest) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, spacePath(spaceID)+"/git/export", in, nil, &out)
	return out, err
}

func (c *Client) GetGitInfo(ctx context.Context, spaceID string) (GitInfo, error) {
	var out GitInfo
	err := c.do(ctx, http.MethodGet, spacePath(spaceID)+"/git/info", nil, nil, &out)
	return out, err
}
