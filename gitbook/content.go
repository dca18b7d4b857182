package gitbook

import (
	"context"
	"net/http"
	"net/url"
)

// GetSpaceRevision returns the content tree of a space, or of a change
// request when changeRequestID is non-empty. The same selector applies to
// every method in this file.
func (c *Client) GetSpaceRevision(ctx context.Context, spaceID, changeRequestID string) (SpaceContent, error) {
	var out SpaceContent
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID), nil, nil, &out)
	return out, err
}

func (c *Client) ListPages(ctx context.Context, spaceID, changeRequestID string, opts ListOptions) (*List[Page], error) {
	out := &List[Page]{}
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/pages", nil, opts.Values(), out)
	return out, err
}

func (c *Client) GetPageByID(ctx context.Context, spaceID, pageID, changeRequestID string) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/page/"+url.PathEscape(pageID), nil, nil, &out)
	return out, err
}

// GetPageByPath resolves a page by its URL path, e.g. "getting-started/install".
func (c *Client) GetPageByPath(ctx context.Context, spaceID, pagePath, changeRequestID string) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/path/"+escapePagePath(pagePath), nil, nil, &out)
	return out, err
}

// GetPageLinks returns the outgoing links of a page. The result is never nil.
func (c *Client) GetPageLinks(ctx context.Context, spaceID, pageID, changeRequestID string) ([]PageLink, error) {
	var out struct {
		Links []PageLink `json:"links"`
	}
	if err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/page/"+url.PathEscape(pageID)+"/links", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Links == nil {
		return []PageLink{}, nil
	}
	return out.Links, nil
}

// GetPageBacklinks returns the pages linking to a page. The result is never nil.
func (c *Client) GetPageBacklinks(ctx context.Context, spaceID, pageID, changeRequestID string) ([]PageLink, error) {
	var out struct {
		Backlinks []PageLink `json:"backlinks"`
	}
	if err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/page/"+url.PathEscape(pageID)+"/backlinks", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Backlinks == nil {
		return []PageLink{}, nil
	}
	return out.Backlinks, nil
}

func (c *Client) ListFiles(ctx context.Context, spaceID, changeRequestID string, opts ListOptions) (*List[ContentFile], error) {
	out := &List[ContentFile]{}
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/files", nil, opts.Values(), out)
	return out, err
}

func (c *Client) GetFile(ctx context.Context, spaceID, fileID, changeRequestID string) (ContentFile, error) {
	var out ContentFile
	err := c.do(ctx, http.MethodGet, ContentBasePath(spaceID, changeRequestID)+"/files/"+url.PathEscape(fileID), nil, nil, &out)
	return out, err
}
