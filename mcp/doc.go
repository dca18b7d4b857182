// Package mcp contains the Model Context Protocol data types and constants
// spoken by the gitbook-mcp server. It mirrors the wire representation of the
// protocol for the subset this server implements: the initialize handshake,
// tools listing and invocation, logging level control and ping.
//
// The package is free of transport logic. The stdio transport frames these
// types as newline-delimited JSON-RPC and mcpservice builds them from tool
// handlers.
//
// Example (tool result construction):
//
//	res := &mcp.CallToolResult{
//	    Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: "hello"}},
//	}
//
// LatestProtocolVersion is the revision advertised when a client requests one
// this server does not support; IsSupportedProtocolVersion gates negotiation.
package mcp
