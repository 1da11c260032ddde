// CLAUDE:SUMMARY chi routes serving stored snapshots, history, hints, and on-demand captures.
package capture

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterHTTP mounts the snapshot routes on r:
//
//	GET  /snapshots                    list captured page names
//	GET  /snapshots/{name}             latest canonical HTML
//	GET  /snapshots/{name}/history     archive entries, oldest first
//	GET  /snapshots/{name}/hints       locator hints from the latest HTML
//	GET  /captures                     recent audit rows (?page=, ?limit=)
//	POST /capture                      {"name": ..., "url": ...}
func (c *Capturer) RegisterHTTP(r chi.Router) {
	r.Get("/snapshots", c.handleListPages)
	r.Get("/snapshots/{name}", c.handleLatest)
	r.Get("/snapshots/{name}/history", c.handleHistory)
	r.Get("/snapshots/{name}/hints", c.handleHints)
	r.Get("/captures", c.handleRecent)
	r.Post("/capture", c.handleCapture)
}

func (c *Capturer) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := c.Pages()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if pages == nil {
		pages = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (c *Capturer) handleLatest(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	markup, err := c.Latest(name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(markup)
}

func (c *Capturer) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entries, err := c.History(name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": name, "entries": entries})
}

func (c *Capturer) handleHints(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	hs, err := c.Hints(name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": name, "hints": hs})
}

func (c *Capturer) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		// Bad limits fall back to the default rather than erroring.
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	events, err := c.RecentCaptures(r.Context(), r.URL.Query().Get("page"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"captures": events})
}

func (c *Capturer) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, errors.New("name and url are required"))
		return
	}
	if c.mgr == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no browser configured"))
		return
	}

	res, err := c.CapturePage(r.Context(), req.Name, req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func statusFor(err error) int {
	if errors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
