// Command mcp-tracediff runs the MCP tool server for trace comparison.
// Uses stdio transport for integration with AI assistants.
package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agent-eval-gang/tracediff-go/internal/config"
	"github.com/agent-eval-gang/tracediff-go/internal/mcpserver"
	"github.com/agent-eval-gang/tracediff-go/internal/observability"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	observability.InitLogger(cfg.LogLevel)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tracediff",
		Version: "v1.0.0",
	}, nil)
	mcpserver.RegisterTools(server, cfg)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
