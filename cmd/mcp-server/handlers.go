package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/session"
)

type execRequest struct {
	Lines []string `json:"lines"`
}

func newMux(cfg config.Server, store *session.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool - handle a tool call
	mux.HandleFunc("POST /tool", recovering(func(w http.ResponseWriter, r *http.Request) {
		var req gopoly.ToolRequest
		if !decodeBody(w, r, cfg.MaxBodyBytes, &req) {
			return
		}
		writeJSON(w, http.StatusOK, gopoly.HandleToolCallLimited(req, gopoly.ToolLimits{MaxPow: cfg.MaxPow}))
	}))

	// GET /schema - return tool schema for agent registration
	mux.HandleFunc("GET /schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, gopoly.MCPToolSpec())
	})

	// GET /health - liveness check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"sessions": store.Len(),
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /sessions", func(w http.ResponseWriter, r *http.Request) {
		s, err := store.Create()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
	})

	mux.HandleFunc("POST /sessions/{id}/exec", recovering(func(w http.ResponseWriter, r *http.Request) {
		s, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		var req execRequest
		if !decodeBody(w, r, cfg.MaxBodyBytes, &req) {
			return
		}
		if len(req.Lines) > cfg.MaxLines {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("too many lines: %d > %d", len(req.Lines), cfg.MaxLines))
			return
		}
		writeJSON(w, http.StatusOK, s.Exec(req.Lines))
	}))

	mux.HandleFunc("DELETE /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !store.Delete(r.PathValue("id")) {
			writeError(w, http.StatusNotFound, session.ErrNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func recovering(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", r.URL.Path, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		h(w, r)
	}
}

// decodeBody reads exactly one JSON value into v. On failure it has already
// written the response.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return false
		}
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: trailing data"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
