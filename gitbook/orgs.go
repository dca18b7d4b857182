package gitbook

import (
	"context"
	"net/http"
	"net/url"
)

// AskAIRequest is the body of AskAI.
type AskAIRequest struct {
	Query string `json:"query"`
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (Organization, error) {
	var out Organization
	err := c.do(ctx, http.MethodGet, orgPath(orgID), nil, nil, &out)
	return out, err
}

func (c *Client) ListCollections(ctx context.Context, orgID string, opts ListOptions) (*List[Collection], error) {
	out := &List[Collection]{}
	err := c.do(ctx, http.MethodGet, orgPath(orgID)+"/collections", nil, opts.Values(), out)
	return out, err
}

func (c *Client) GetCollection(ctx context.Context, orgID, collectionID string) (Collection, error) {
	var out Collection
	err := c.do(ctx, http.MethodGet, orgPath(orgID)+"/collections/"+url.PathEscape(collectionID), nil, nil, &out)
	return out, err
}

// AskAI asks GitBook AI a question answered from the organization's content.
func (c *Client) AskAI(ctx context.Context, orgID string, in AskAIRequest) (AskAIResponse, error) {
	var out AskAIResponse
	err := c.do(ctx, http.MethodPost, orgPath(orgID)+"/ask", in, nil, &out)
	return out, err
}
