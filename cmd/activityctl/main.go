// activityctl inspects and appends to the clawdock activity log from the
// command line, and prints upstream build parameters.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/openclaw/clawdock/internal/config"
	"github.com/openclaw/clawdock/internal/domain/activity"
	"github.com/openclaw/clawdock/internal/jsonl"
	"github.com/openclaw/clawdock/internal/upstream"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "list":
		err = runList(cfg, os.Args[2:])
	case "stats":
		err = runStats(cfg, os.Args[2:])
	case "log":
		err = runLog(cfg, os.Args[2:])
	case "upstreams":
		err = runUpstreams()
	case "buildargs":
		err = runBuildArgs(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: activityctl <list|stats|log|upstreams|buildargs> [flags]")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "activityctl: %v\n", err)
	os.Exit(1)
}

func newService(cfg config.Config) *activity.Service {
	store := jsonl.New(cfg.Activity.Dir)
	return activity.NewService(store, cfg.Activity.Enabled, nil)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runList(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	user := fs.String("user", "", "filter by user")
	activityType := fs.String("type", "", "filter by activity type")
	start := fs.String("start", "", "inclusive ISO-8601 lower bound")
	end := fs.String("end", "", "inclusive ISO-8601 upper bound")
	limit := fs.Int("limit", activity.DefaultQueryLimit, "limit results")
	offset := fs.Int("offset", 0, "skip results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := newService(cfg)
	records, err := svc.Query(context.Background(), activity.QueryOptions{
		User:         *user,
		ActivityType: *activityType,
		StartTime:    *start,
		EndTime:      *end,
		Limit:        *limit,
		Offset:       *offset,
	})
	if err != nil {
		return err
	}
	if records == nil {
		records = []activity.Record{}
	}
	return printJSON(records)
}

func runStats(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	days := fs.Int("days", activity.DefaultStatsDays, "trailing window in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := newService(cfg)
	stats, err := svc.Stats(context.Background(), *days)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runLog(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	user := fs.String("user", "", "user who performed the activity")
	activityType := fs.String("type", "", "activity type tag")
	source := fs.String("source", "cli", "origin tag")
	detailsJSON := fs.String("details", "", "details as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *activityType == "" {
		return fmt.Errorf("log requires -user and -type")
	}

	var details map[string]any
	if *detailsJSON != "" {
		if err := json.Unmarshal([]byte(*detailsJSON), &details); err != nil {
			return fmt.Errorf("parsing -details: %w", err)
		}
	}

	svc := newService(cfg)
	rec, err := svc.Log(context.Background(), *user, *activityType, details, *source)
	if err != nil {
		return err
	}
	if !svc.Enabled() {
		fmt.Fprintln(os.Stderr, "activity logging is disabled; nothing written")
		return nil
	}
	return printJSON(rec)
}

func runUpstreams() error {
	return printJSON(upstream.All())
}

func runBuildArgs(args []string) error {
	fs := flag.NewFlagSet("buildargs", flag.ExitOnError)
	name := fs.String("upstream", string(upstream.OpenClaw), "upstream name")
	version := fs.String("version", "main", "version or branch")
	cloneBlock := fs.Bool("clone-block", false, "print the Dockerfile clone snippet instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := upstream.ParseType(*name)
	if err != nil {
		return err
	}
	if !upstream.ValidateVersionFormat(*version) {
		return fmt.Errorf("invalid version format: %q", *version)
	}

	if *cloneBlock {
		block, err := upstream.CloneBlock(t, *version)
		if err != nil {
			return err
		}
		fmt.Println(block)
		return nil
	}

	buildArgs, err := upstream.BuildArgs(t, *version)
	if err != nil {
		return err
	}
	return printJSON(buildArgs)
}
