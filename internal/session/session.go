// Package session tracks per-user selection state: the current URL, its catalog,
// the chosen format and the operation in flight.
//
// Session values are immutable in use. Every transition returns a new value and
// results of asynchronous work are applied through tickets that go stale as soon
// as the user moves on.
package session

import (
	"fmt"
	"strings"
	"time"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/models"
)

// MessageKind classifies the session's current message.
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Session is one user's selection state.
type Session struct {
	ID           string                 `json:"id"`
	URL          string                 `json:"url"`
	Catalog      *models.Catalog        `json:"catalog"`
	Selected     string                 `json:"selectedFormat,omitempty"`
	Message      string                 `json:"message,omitempty"`
	MessageKind  MessageKind            `json:"messageKind,omitempty"`
	Pending      bool                   `json:"pending"`
	Fetching     bool                   `json:"fetching"`
	Downloading  bool                   `json:"downloading"`
	LastDownload *models.DownloadResult `json:"lastDownload,omitempty"`
	UpdatedAt    time.Time              `json:"updatedAt"`

	fetchGen    uint64
	downloadGen uint64
}

// FetchTicket identifies one catalog fetch.
type FetchTicket struct {
	URL string
	gen uint64
}

// DownloadTicket identifies one download.
type DownloadTicket struct {
	URL      string
	FormatID string
	gen      uint64
}

// New returns an empty session.
func New(id string, now time.Time) Session {
	return Session{ID: id, UpdatedAt: now}
}

// Busy reports whether a fetch is scheduled or in flight, or a download is running.
func (s Session) Busy() bool {
	return s.Pending || s.Fetching || s.Downloading
}

// SetURL records new URL text. A changed or cleared URL resets the session to empty,
// which also makes every outstanding ticket stale.
func (s Session) SetURL(url string, now time.Time) Session {
	url = strings.TrimSpace(url)
	if url == s.URL {
		return s
	}
	return Session{
		ID:          s.ID,
		URL:         url,
		UpdatedAt:   now,
		fetchGen:    s.fetchGen + 1,
		downloadGen: s.downloadGen + 1,
	}
}

// NeedsFetch reports whether the session has a URL with no catalog and nothing loading.
func (s Session) NeedsFetch() bool {
	return s.URL != "" && s.Catalog == nil && !s.Fetching
}

// Schedule marks a fetch of the current URL as waiting to start.
func (s Session) Schedule(now time.Time) Session {
	s.Pending = true
	s.Message, s.MessageKind = "", MessageNone
	s.UpdatedAt = now
	return s
}

// Fail records err as the session's message and ends any fetch in progress.
func (s Session) Fail(err error, now time.Time) Session {
	s.Pending = false
	s.Fetching = false
	s.Message = errconsts.UserMessage(err)
	s.MessageKind = MessageError
	s.UpdatedAt = now
	return s
}

// BeginFetch marks a fetch of the current URL as in flight. Any earlier fetch ticket goes stale.
func (s Session) BeginFetch(now time.Time) (Session, FetchTicket) {
	s.fetchGen++
	s.Pending = false
	s.Fetching = true
	s.Message, s.MessageKind = "", MessageNone
	s.UpdatedAt = now
	return s, FetchTicket{URL: s.URL, gen: s.fetchGen}
}

// ApplyCatalog installs c if t is still current. The boolean reports whether it was applied.
func (s Session) ApplyCatalog(t FetchTicket, c *models.Catalog, now time.Time) (Session, bool) {
	if !s.fetchCurrent(t) {
		return s, false
	}
	s.Catalog = c
	s.Selected = ""
	s.Fetching = false
	s.Message, s.MessageKind = "", MessageNone
	s.UpdatedAt = now
	return s, true
}

// ApplyFetchError records a failed fetch if t is still current.
func (s Session) ApplyFetchError(t FetchTicket, err error, now time.Time) (Session, bool) {
	if !s.fetchCurrent(t) {
		return s, false
	}
	return s.Fail(err, now), true
}

// Select chooses a format from the current catalog. An empty ID clears the selection.
func (s Session) Select(formatID string, now time.Time) (Session, error) {
	formatID = strings.TrimSpace(formatID)
	if s.Catalog == nil {
		return s, s.noCatalogErr()
	}
	if formatID != "" {
		if _, ok := s.Catalog.Lookup(formatID); !ok {
			return s, fmt.Errorf("%w: %w: %q", errconsts.ErrInvalidInput, errconsts.ErrUnknownFormat, formatID)
		}
	}
	s.Selected = formatID
	s.UpdatedAt = now
	return s, nil
}

// BeginDownload starts a download of formatID, or of the selected format when empty.
// A download already in flight is superseded, not waited on.
func (s Session) BeginDownload(formatID string, now time.Time) (Session, DownloadTicket, error) {
	if s.Catalog == nil {
		return s, DownloadTicket{}, s.noCatalogErr()
	}

	formatID = strings.TrimSpace(formatID)
	if formatID == "" {
		formatID = s.Selected
	} else {
		var err error
		if s, err = s.Select(formatID, now); err != nil {
			return s, DownloadTicket{}, err
		}
	}

	s.downloadGen++
	s.Downloading = true
	s.Message, s.MessageKind = "", MessageNone
	s.UpdatedAt = now
	return s, DownloadTicket{URL: s.URL, FormatID: formatID, gen: s.downloadGen}, nil
}

// ApplyDownload records a completed download if t is still current.
func (s Session) ApplyDownload(t DownloadTicket, res *models.DownloadResult, now time.Time) (Session, bool) {
	if !s.downloadCurrent(t) {
		return s, false
	}
	s.Downloading = false
	s.LastDownload = res
	s.Message = "Download completed! File: " + res.Filename
	s.MessageKind = MessageSuccess
	s.UpdatedAt = now
	return s, true
}

// ApplyDownloadError records a failed download if t is still current.
func (s Session) ApplyDownloadError(t DownloadTicket, err error, now time.Time) (Session, bool) {
	if !s.downloadCurrent(t) {
		return s, false
	}
	s.Downloading = false
	s.Message = errconsts.UserMessage(err)
	s.MessageKind = MessageError
	s.UpdatedAt = now
	return s, true
}

func (s Session) fetchCurrent(t FetchTicket) bool {
	return t.URL == s.URL && t.gen == s.fetchGen
}

func (s Session) downloadCurrent(t DownloadTicket) bool {
	return t.URL == s.URL && t.gen == s.downloadGen
}

func (s Session) noCatalogErr() error {
	if s.Pending || s.Fetching {
		return errconsts.ErrOperationBusy
	}
	return errconsts.ErrNoCatalog
}
