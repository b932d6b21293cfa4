package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openclaw/clawdock/internal/domain/activity"
	"github.com/openclaw/clawdock/internal/upstream"
)

type ListActivitiesParams struct {
	User   string `json:"user,omitempty" jsonschema:"filter by exact username"`
	Type   string `json:"type,omitempty" jsonschema:"filter by exact activity type"`
	Start  string `json:"start,omitempty" jsonschema:"inclusive ISO-8601 lower bound"`
	End    string `json:"end,omitempty" jsonschema:"inclusive ISO-8601 upper bound"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 100)"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of results to skip"`
}

type ListActivitiesResult struct {
	Activities []activity.Record `json:"activities"`
}

type ActivityStatsParams struct {
	Days int `json:"days,omitempty" jsonschema:"trailing window in days (default 7)"`
}

type LogActivityParams struct {
	User     string         `json:"user" jsonschema:"user who performed the activity"`
	Activity string         `json:"activity" jsonschema:"activity type tag"`
	Details  map[string]any `json:"details,omitempty" jsonschema:"additional details"`
	Source   string         `json:"source,omitempty" jsonschema:"origin tag (web, cli, api, system)"`
}

type ListUpstreamsParams struct{}

type ListUpstreamsResult struct {
	Upstreams []upstream.Config `json:"upstreams"`
}

type BuildArgsParams struct {
	Upstream   string `json:"upstream" jsonschema:"upstream name (openclaw, picoclaw, ironclaw)"`
	Version    string `json:"version,omitempty" jsonschema:"version or branch (default main)"`
	CloneBlock bool   `json:"clone_block,omitempty" jsonschema:"include the Dockerfile clone snippet"`
}

type BuildArgsResult struct {
	BuildArgs  map[string]string `json:"build_args"`
	CloneBlock string            `json:"clone_block,omitempty"`
}

func registerTools(server *sdkmcp.Server, svc ActivityService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List logged activity records, newest first, with optional filters",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListActivitiesParams) (*sdkmcp.CallToolResult, ListActivitiesResult, error) {
		records, err := svc.Query(ctx, activity.QueryOptions{
			User:         in.User,
			ActivityType: in.Type,
			StartTime:    in.Start,
			EndTime:      in.End,
			Limit:        in.Limit,
			Offset:       in.Offset,
		})
		if err != nil {
			return nil, ListActivitiesResult{}, err
		}
		if records == nil {
			records = []activity.Record{}
		}
		return nil, ListActivitiesResult{Activities: records}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_stats",
		Description: "Aggregate activity statistics over a trailing window of days",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ActivityStatsParams) (*sdkmcp.CallToolResult, activity.Stats, error) {
		stats, err := svc.Stats(ctx, in.Days)
		if err != nil {
			return nil, activity.Stats{}, err
		}
		return nil, stats, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_activity",
		Description: "Record an activity event in the append-only log",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in LogActivityParams) (*sdkmcp.CallToolResult, activity.Record, error) {
		rec, err := svc.Log(ctx, in.User, in.Activity, in.Details, in.Source)
		if err != nil {
			return nil, activity.Record{}, err
		}
		return nil, rec, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_upstreams",
		Description: "List the supported upstream source repositories",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListUpstreamsParams) (*sdkmcp.CallToolResult, ListUpstreamsResult, error) {
		return nil, ListUpstreamsResult{Upstreams: upstream.All()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dockerfile_build_args",
		Description: "Generate Dockerfile build arguments for an upstream and version",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in BuildArgsParams) (*sdkmcp.CallToolResult, BuildArgsResult, error) {
		t, err := upstream.ParseType(in.Upstream)
		if err != nil {
			return nil, BuildArgsResult{}, err
		}
		version := in.Version
		if version == "" {
			version = "main"
		}
		args, err := upstream.BuildArgs(t, version)
		if err != nil {
			return nil, BuildArgsResult{}, err
		}
		result := BuildArgsResult{BuildArgs: args}
		if in.CloneBlock {
			block, err := upstream.CloneBlock(t, version)
			if err != nil {
				return nil, BuildArgsResult{}, err
			}
			result.CloneBlock = block
		}
		return nil, result, nil
	})
}
