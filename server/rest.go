package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/aidigest/pkg/repository"
	"github.com/umputun/aidigest/pkg/scheduler"
)

// adminKeyHeader carries the shared admin secret
const adminKeyHeader = "X-Admin-Key"

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	fetch := rest.JSON{"running": false, "next_run": nil}
	if s.Fetcher != nil {
		fetch["running"] = s.Fetcher.Running()
		if next := s.Fetcher.NextRun(); !next.IsZero() {
			fetch["next_run"] = next.UTC()
		}
	}
	res := rest.JSON{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
		"fetch":   fetch,
	}
	if s.Items != nil {
		counts, err := s.Items.CountByModule(r.Context())
		if err != nil {
			lgr.Printf("[WARN] can't count items, %v", err)
		} else {
			res["modules"] = counts
		}
	}
	rest.RenderJSON(w, res)
}

// triggerHandler starts a background fetch run
func (s *Server) triggerHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.Fetcher.Trigger(r.Context())
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusConflict, err, "fetch run already in progress")
			return
		}
		if errors.Is(err, scheduler.ErrStopped) {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusServiceUnavailable, err, "scheduler is shutting down")
			return
		}
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't start fetch run")
		return
	}
	lgr.Printf("[INFO] fetch run %s triggered via admin api", run.ID)
	rest.RenderJSON(w, rest.JSON{"id": run.ID, "status": run.Status, "message": "Fetch job started"})
}

// postOnlyHandler answers non-POST requests to POST-only endpoints.
// the root catch-all would otherwise turn them into 404
func (s *Server) postOnlyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	rest.SendErrorJSON(w, r, lgr.Default(), http.StatusMethodNotAllowed,
		fmt.Errorf("method %s not allowed", r.Method), "method not allowed")
}

// runStatusHandler returns a run record by id
func (s *Server) runStatusHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")
	run, err := s.Runs.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, err, "fetch run not found")
			return
		}
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't load fetch run")
		return
	}
	rest.RenderJSON(w, run)
}

// latestRunHandler returns the most recent run record
func (s *Server) latestRunHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.Runs.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			rest.RenderJSON(w, rest.JSON{"message": "No fetch runs found"})
			return
		}
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't load latest fetch run")
		return
	}
	rest.RenderJSON(w, run)
}

// adminOnly rejects requests without a matching admin key
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(adminKeyHeader)
		if s.AdminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.AdminKey)) != 1 {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusForbidden, errors.New("invalid admin key"), "invalid admin key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
