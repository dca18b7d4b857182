package tools

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type importContentArgs struct {
	OrgID   string  `json:"orgId" jsonschema_description:"The organization ID"`
	URL     string  `json:"url" jsonschema_description:"The URL of the content to import"`
	SpaceID *string `json:"spaceId,omitempty" jsonschema_description:"Optional target space ID (imports into this space)"`
}

func (r *registry) importTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "import_content", "Import content into a GitBook organization from a URL (DESTRUCTIVE: may overwrite existing content depending on target)", destructive,
			func(ctx context.Context, a importContentArgs) (string, error) {
				return pretty(r.api.ImportContent(ctx, a.OrgID, gitbook.ImportRequest{URL: a.URL, SpaceID: a.SpaceID}))
			}),
	}
}
