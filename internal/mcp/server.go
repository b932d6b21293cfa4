// Package mcp exposes the admin surface as Model Context Protocol tools so
// agents can query the activity log and build parameters directly.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

const serverInstructions = `Admin tools for a clawdock deployment. Use
list_activities and activity_stats to inspect the append-only activity log,
log_activity to record an event, and list_upstreams / dockerfile_build_args to
inspect the container build parameterization.`

// ActivityService defines the activity operations needed by MCP.
type ActivityService interface {
	Log(ctx context.Context, user, activityType string, details map[string]any, source string) (activity.Record, error)
	Query(ctx context.Context, opts activity.QueryOptions) ([]activity.Record, error)
	Stats(ctx context.Context, days int) (activity.Stats, error)
}

// Config contains server configuration.
type Config struct {
	Activity      ActivityService
	AuthEnabled   bool
	Token         string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "clawdock-admin",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio mode is local-only; never enforce auth there.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Token))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Activity)

	return server
}
