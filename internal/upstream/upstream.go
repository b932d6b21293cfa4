// Package upstream describes the source repositories a container build can be
// parameterized with. The registry is static configuration: no state, no I/O.
package upstream

import (
	"fmt"
	"strings"
)

// Type identifies a supported upstream source.
type Type string

const (
	OpenClaw Type = "openclaw"
	PicoClaw Type = "picoclaw"
	IronClaw Type = "ironclaw"
)

// Config is the build configuration for one upstream source.
type Config struct {
	Name          Type   `json:"name"`
	GithubOwner   string `json:"github_owner"`
	GithubRepo    string `json:"github_repo"`
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
	CLIName       string `json:"cli_name"`
	AppDirectory  string `json:"app_directory"`
	MJSEntrypoint string `json:"mjs_entrypoint"`
}

var registry = map[Type]Config{
	OpenClaw: {
		Name:          OpenClaw,
		GithubOwner:   "openclaw",
		GithubRepo:    "openclaw",
		DefaultBranch: "main",
		Description:   "Official OpenClaw - self-hosted AI agent gateway",
		CLIName:       "openclaw",
		AppDirectory:  "/opt/openclaw/app",
		MJSEntrypoint: "openclaw.mjs",
	},
	PicoClaw: {
		Name:          PicoClaw,
		GithubOwner:   "sipeed",
		GithubRepo:    "picoclaw",
		DefaultBranch: "main",
		Description:   "PicoClaw by Sipeed - lightweight AI agent gateway",
		CLIName:       "picoclaw",
		AppDirectory:  "/opt/picoclaw/app",
		MJSEntrypoint: "picoclaw.mjs",
	},
	IronClaw: {
		Name:          IronClaw,
		GithubOwner:   "nearai",
		GithubRepo:    "ironclaw",
		DefaultBranch: "main",
		Description:   "IronClaw by NEAR AI - AI agent gateway",
		CLIName:       "ironclaw",
		AppDirectory:  "/opt/ironclaw/app",
		MJSEntrypoint: "ironclaw.mjs",
	},
}

// order fixes the listing order of All.
var order = []Type{OpenClaw, PicoClaw, IronClaw}

// ParseType parses an upstream type from a string, case-insensitively and
// ignoring surrounding whitespace.
func ParseType(value string) (Type, error) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := registry[normalized]; ok {
		return normalized, nil
	}
	valid := make([]string, 0, len(order))
	for _, t := range order {
		valid = append(valid, string(t))
	}
	return "", fmt.Errorf("invalid upstream %q, valid options: %s", value, strings.Join(valid, ", "))
}

// Get returns the configuration for an upstream type.
func Get(t Type) (Config, error) {
	cfg, ok := registry[t]
	if !ok {
		return Config{}, fmt.Errorf("unknown upstream: %s", t)
	}
	return cfg, nil
}

// All returns every supported upstream configuration in registry order.
func All() []Config {
	configs := make([]Config, 0, len(order))
	for _, t := range order {
		configs = append(configs, registry[t])
	}
	return configs
}

// GithubURL is the full GitHub URL for the upstream.
func (c Config) GithubURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", c.GithubOwner, c.GithubRepo)
}

// CloneURL is the git clone URL for the upstream.
func (c Config) CloneURL() string {
	return c.GithubURL() + ".git"
}

// CloneCommand builds the git clone command for the given version. "main" and
// "latest" resolve to the default branch.
func (c Config) CloneCommand(version, targetDir string) string {
	branch := version
	if version == "main" || version == "latest" {
		branch = c.DefaultBranch
	}
	return fmt.Sprintf("git clone --depth 1 --branch %s %s %s", branch, c.CloneURL(), targetDir)
}

// ShouldPatchWorkspace reports whether workspace dependencies need patching
// during the build. Only the official OpenClaw tree requires it.
func (c Config) ShouldPatchWorkspace() bool {
	return c.Name == OpenClaw
}

// ValidateVersionFormat reports whether a version string looks usable: a
// v-prefixed tag, a branch keyword, an upstream snapshot prefix, or a bare
// dotted version number.
func ValidateVersionFormat(version string) bool {
	if version == "" {
		return false
	}
	for _, prefix := range []string{"v", "main", "latest", "oc_", "pc_", "ic_"} {
		if strings.HasPrefix(version, prefix) {
			return true
		}
	}
	digits := strings.ReplaceAll(version, ".", "")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeVersion resolves branch keywords and upstream snapshot prefixes to
// the default branch.
func normalizeVersion(version string, cfg Config) string {
	if version == "main" || version == "latest" {
		return cfg.DefaultBranch
	}
	if strings.HasPrefix(version, string(cfg.Name)+"_") {
		return cfg.DefaultBranch
	}
	return version
}

// BuildArgs generates the Dockerfile build arguments for an upstream and
// version.
func BuildArgs(t Type, version string) (map[string]string, error) {
	cfg, err := Get(t)
	if err != nil {
		return nil, err
	}
	normalized := normalizeVersion(version, cfg)
	return map[string]string{
		"UPSTREAM":         string(cfg.Name),
		"UPSTREAM_VERSION": normalized,
		"GITHUB_OWNER":     cfg.GithubOwner,
		"GITHUB_REPO":      cfg.GithubRepo,
		"CLI_NAME":         cfg.CLIName,
		"APP_DIR":          cfg.AppDirectory,
	}, nil
}

// CloneBlock generates the Dockerfile RUN block that clones the upstream
// repository at the given version.
func CloneBlock(t Type, version string) (string, error) {
	cfg, err := Get(t)
	if err != nil {
		return "", err
	}
	normalized := normalizeVersion(version, cfg)
	cloneCmd := cfg.CloneCommand(normalized, ".")
	return fmt.Sprintf(`# Clone %s repository
WORKDIR /build
ARG UPSTREAM_VERSION=%s
RUN %s`, cfg.Name, normalized, cloneCmd), nil
}
