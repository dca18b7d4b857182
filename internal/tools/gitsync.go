package tools

import (
	"context"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
)

type gitImportArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space to import into"`
	URL     string `json:"url" jsonschema_description:"The Git repository URL to import from"`
}

type gitExportArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space to export from"`
	URL     string `json:"url" jsonschema_description:"The Git repository URL to export to"`
}

type gitInfoArgs struct {
	SpaceID string `json:"spaceId" jsonschema_description:"The ID of the space"`
}

func (r *registry) gitSyncTools() []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		bind(r, "git_import", "Import content from a Git repository into a GitBook space (DESTRUCTIVE: overwrites existing content)", destructive,
			func(ctx context.Context, a gitImportArgs) (string, error) {
				return pretty(r.api.GitImport(ctx, a.SpaceID, gitbook.GitSyncRequest{URL: a.URL}))
			}),
		bind(r, "git_export", "Export GitBook space content to a Git repository", write,
			func(ctx context.Context, a gitExportArgs) (string, error) {
				return pretty(r.api.GitExport(ctx, a.SpaceID, gitbook.GitSyncRequest{URL: a.URL}))
			}),
		bind(r, "get_git_info", "Get Git sync configuration and status for a GitBook space", readOnly,
			func(ctx context.Context, a gitInfoArgs) (string, error) {
				return pretty(r.api.GetGitInfo(ctx, a.SpaceID))
			}),
	}
}
