package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/openclaw/clawdock/internal/domain/activity"
	"github.com/openclaw/clawdock/internal/upstream"
)

// ActivityService defines the activity operations the admin API needs.
type ActivityService interface {
	Log(ctx context.Context, user, activityType string, details map[string]any, source string) (activity.Record, error)
	Query(ctx context.Context, opts activity.QueryOptions) ([]activity.Record, error)
	Stats(ctx context.Context, days int) (activity.Stats, error)
}

// Server wires HTTP handlers for the admin surface.
type Server struct {
	activity ActivityService
	hub      *Hub
	logger   *slog.Logger
}

// Options configures the router.
type Options struct {
	// Auth, when non-nil, guards /api/admin routes.
	Auth func(http.Handler) http.Handler
	// RateLimit is a ulule/limiter formatted per-IP rate ("60-M"); empty
	// disables limiting.
	RateLimit string
	// StaticDir serves the admin dashboard under /admin when set.
	StaticDir string
	// MCP, when non-nil, is mounted at /mcp.
	MCP http.Handler
}

// NewRouter creates the admin API router with middleware.
func NewRouter(svc ActivityService, hub *Hub, logger *slog.Logger, opts Options) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	if opts.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit %q: %w", opts.RateLimit, err)
		}
		mw := limitermw.NewMiddleware(limiter.New(memory.NewStore(), rate))
		r.Use(mw.Handler)
	}

	srv := &Server{activity: svc, hub: hub, logger: logger}

	r.Get("/healthz", srv.handleHealth)

	r.Route("/api/admin", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Get("/activities", srv.handleListActivities)
		r.Post("/activities", srv.handleLogActivity)
		r.Get("/activities/stream", srv.handleStream)
		r.Get("/stats", srv.handleStats)
		r.Get("/upstreams", srv.handleListUpstreams)
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	if opts.StaticDir != "" {
		fileServer := http.StripPrefix("/admin", http.FileServer(http.Dir(opts.StaticDir)))
		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
		})
		r.Get("/admin/*", fileServer.ServeHTTP)
	}

	return r, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"), activity.DefaultQueryLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	records, err := s.activity.Query(r.Context(), activity.QueryOptions{
		User:         q.Get("user"),
		ActivityType: q.Get("type"),
		StartTime:    q.Get("start"),
		EndTime:      q.Get("end"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []activity.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

type logActivityRequest struct {
	User     string         `json:"user"`
	Activity string         `json:"activity"`
	Details  map[string]any `json:"details,omitempty"`
	Source   string         `json:"source,omitempty"`
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.User == "" || req.Activity == "" {
		writeError(w, http.StatusBadRequest, "user and activity are required")
		return
	}

	rec, err := s.activity.Log(r.Context(), req.User, req.Activity, req.Details, req.Source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r.URL.Query().Get("days"), activity.DefaultStatsDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid days")
		return
	}

	stats, err := s.activity.Stats(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type upstreamResponse struct {
	Name          string `json:"name"`
	GithubURL     string `json:"github_url"`
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
	CLIName       string `json:"cli_name"`
}

func (s *Server) handleListUpstreams(w http.ResponseWriter, _ *http.Request) {
	configs := upstream.All()
	resp := make([]upstreamResponse, 0, len(configs))
	for _, cfg := range configs {
		resp = append(resp, upstreamResponse{
			Name:          string(cfg.Name),
			GithubURL:     cfg.GithubURL(),
			DefaultBranch: cfg.DefaultBranch,
			Description:   cfg.Description,
			CLIName:       cfg.CLIName,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func intParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
