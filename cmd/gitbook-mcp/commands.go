package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"text/tabwriter"

	"github.com/ggoodman/gitbook-mcp/gitbook"
	"github.com/ggoodman/gitbook-mcp/internal/config"
	"github.com/ggoodman/gitbook-mcp/internal/logctx"
	"github.com/ggoodman/gitbook-mcp/internal/tools"
	"github.com/ggoodman/gitbook-mcp/mcp"
	"github.com/ggoodman/gitbook-mcp/mcpservice"
	"github.com/ggoodman/gitbook-mcp/stdio"
	"github.com/spf13/cobra"
)

const serverName = "gitbook-mcp"

// version is overridden at link time with -ldflags "-X main.version=...".
var version = ""

func currentVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           serverName,
		Short:         "Expose the GitBook API to MCP clients over stdio",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd, cfg)
		},
	}
	cmd.AddCommand(newToolsCommand(), newVersionCommand())
	return cmd
}

func serve(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()

	lv := new(slog.LevelVar)
	lv.Set(cfg.Level())
	log := slog.New(logctx.Handler{Handler: slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lv})})

	client := gitbook.New(cfg.APIToken,
		gitbook.WithBaseURL(cfg.BaseURL),
		gitbook.WithUserAgent(serverName+"/"+currentVersion()),
		gitbook.WithLogger(log),
	)

	opts := []mcpservice.ServerOption{
		mcpservice.WithServerInfo(mcp.ImplementationInfo{Name: serverName, Version: currentVersion()}),
		mcpservice.WithToolsCapability(tools.New(client, tools.WithLogger(log))),
		mcpservice.WithLoggingCapability(mcpservice.NewSlogLevelVarLogging(lv)),
	}
	if instr := cfg.Instructions(); instr != "" {
		opts = append(opts, mcpservice.WithInstructions(instr))
	}

	h := stdio.NewHandler(mcpservice.NewServer(opts...),
		stdio.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
		stdio.WithLogger(log),
	)

	log.InfoContext(ctx, "server.start", slog.String("version", currentVersion()), slog.String("base_url", client.BaseURL()))
	err := h.Serve(ctx)
	log.InfoContext(ctx, "server.stop")
	return err
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools this server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCatalog(cmd.OutOrStdout())
		},
	}
}

func printCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tl := range tools.New(gitbook.New("")).Snapshot() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", tl.Name, tl.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gitbook-mcp version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serverName, currentVersion())
			return err
		},
	}
}
