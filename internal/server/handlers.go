package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/models"
	"vidgrab/internal/session"
	"vidgrab/internal/validation"

	"github.com/go-chi/chi/v5"
)

// urlRequest is the body of requests carrying a URL and optional format.
type urlRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"formatId"`
	Format   string `json:"format"`
}

// formatID returns the requested format, accepting the legacy "format" key.
func (u urlRequest) formatID() string {
	if u.FormatID != "" {
		return u.FormatID
	}
	return u.Format
}

type catalogResponse struct {
	Success bool `json:"success"`
	*models.Catalog
}

type downloadResponse struct {
	Success bool `json:"success"`
	*models.DownloadResult
}

type sessionResponse struct {
	Success bool `json:"success"`
	session.Session
	Busy bool `json:"busy"`
}

func newSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{Success: true, Session: s, Busy: s.Busy()}
}

// detached keeps request values but outlives the client: extraction tool calls are not cancellable.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlatforms lists the supported platforms.
func handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success   bool              `json:"success"`
		Platforms []models.Platform `json:"platforms"`
	}{true, validation.SupportedPlatforms()})
}

// handleFormats returns the catalog for the "url" query parameter.
func (h *handlers) handleFormats(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCatalog(detached(r), r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{Success: true, Catalog: c})
}

// handleDownload downloads a URL and reports the saved file.
func (h *handlers) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Download(detached(r), req.URL, req.formatID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downloadResponse{Success: true, DownloadResult: res})
}

// handleFile serves a completed download from the download directory.
func (h *handlers) handleFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, fmt.Errorf("%w: invalid file name %q", errconsts.ErrInvalidInput, name))
		return
	}

	path := filepath.Join(h.downloadDir, name)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		if err == nil || errors.Is(err, os.ErrNotExist) {
			writeError(w, fmt.Errorf("%w: file %q", errconsts.ErrNotFound, name))
			return
		}
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", validation.SanitizeFilename(name)))
	http.ServeFile(w, r, path)
}

// --- Sessions --------------------------------------------------------------------------

// handleCreateSession starts an empty session.
func (h *handlers) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, newSessionResponse(h.sessions.Create()))
}

// handleGetSession returns a session snapshot.
func (h *handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(s))
}

// handleSetSessionURL records URL text and schedules a debounced fetch.
func (h *handlers) handleSetSessionURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s, err := h.sessions.SetURL(chi.URLParam(r, "id"), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, newSessionResponse(s))
}

// handleSelectFormat chooses a format from the session's catalog.
func (h *handlers) handleSelectFormat(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s, err := h.sessions.Select(chi.URLParam(r, "id"), req.formatID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(s))
}

// handleSessionDownload starts a download whose result lands in the session.
func (h *handlers) handleSessionDownload(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s, err := h.sessions.Download(chi.URLParam(r, "id"), req.formatID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, newSessionResponse(s))
}

// handleDeleteSession drops a session.
func (h *handlers) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Legacy ----------------------------------------------------------------------------

// handleLegacyFormats returns the catalog under "videoInfo".
func (h *handlers) handleLegacyFormats(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if strings.TrimSpace(url) == "" {
		writeError(w, fmt.Errorf("%w: URL parameter is required", errconsts.ErrInvalidInput))
		return
	}
	c, err := h.svc.GetCatalog(detached(r), url)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success   bool            `json:"success"`
		VideoInfo *models.Catalog `json:"videoInfo"`
	}{true, c})
}

// handleLegacyDownload downloads and reports the file name with a message.
func (h *handlers) handleLegacyDownload(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Download(detached(r), req.URL, req.formatID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Filename string `json:"filename"`
		Message  string `json:"message"`
	}{true, res.Filename, "Download completed successfully"})
}
