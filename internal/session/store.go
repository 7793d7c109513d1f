package session

import (
	"context"
	"fmt"
	"sync"
	"time"
	"vidgrab/internal/contracts"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/models"
	"vidgrab/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// StoreConfig tunes a Store.
//
// FetchRate caps catalog fetches per second across all sessions, with bursts of up to
// FetchBurst. A FetchRate of zero leaves fetches unlimited.
type StoreConfig struct {
	Debounce   time.Duration
	TTL        time.Duration
	FetchRate  float64
	FetchBurst int
}

type entry struct {
	sess  Session
	timer *time.Timer
	armed uint64 // bumped every time the debounce timer is (re)armed or dropped
}

// Store holds live sessions and drives their fetches and downloads.
//
// Sessions share nothing but the fetch limiter. Calls to the service are never cancelled
// when a session moves on; their late results are discarded.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	svc      contracts.CatalogService
	ctx      context.Context
	debounce time.Duration
	ttl      time.Duration
	limit    *rate.Limiter
	now      func() time.Time
}

// NewStore returns a Store. ctx bounds background fetches and is usually the program's lifetime.
func NewStore(ctx context.Context, svc contracts.CatalogService, cfg StoreConfig) *Store {
	if cfg.Debounce < 0 {
		cfg.Debounce = consts.DefaultFetchDebounce
	}
	if cfg.TTL <= 0 {
		cfg.TTL = consts.DefaultSessionTTL
	}
	var limit *rate.Limiter
	if cfg.FetchRate > 0 {
		limit = rate.NewLimiter(rate.Limit(cfg.FetchRate), max(cfg.FetchBurst, 1))
	}
	return &Store{
		sessions: make(map[string]*entry),
		svc:      svc,
		ctx:      ctx,
		debounce: cfg.Debounce,
		ttl:      cfg.TTL,
		limit:    limit,
		now:      time.Now,
	}
}

// Create starts a new empty session.
func (st *Store) Create() Session {
	s := New(uuid.NewString(), st.now())

	st.mu.Lock()
	st.sessions[s.ID] = &entry{sess: s}
	st.mu.Unlock()

	logger.Pl.D(2, "Created session %s", s.ID)
	return s
}

// Get returns a snapshot of the session.
func (st *Store) Get(id string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return Session{}, errconsts.ErrSessionNotFound
	}
	return e.sess, nil
}

// SetURL records URL text for the session and schedules a debounced fetch.
//
// Invalid or unsupported URLs fail immediately without scheduling anything. Re-submitting
// the same URL only schedules a fetch when the previous attempt left no catalog.
func (st *Store) SetURL(id, url string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return Session{}, errconsts.ErrSessionNotFound
	}

	now := st.now()
	prev := e.sess
	s := prev.SetURL(url, now)
	changed := s.URL != prev.URL

	if changed {
		e.disarm()
	}

	switch {
	case s.URL == "":
	case changed || s.NeedsFetch():
		if _, err := validation.ValidateURL(s.URL); err != nil {
			logger.Pl.D(1, "Session %s: rejected URL %q: %v", id, s.URL, err)
			s = s.Fail(err, now)
			break
		}
		e.disarm()
		target, gen := s.URL, e.armed
		e.timer = time.AfterFunc(st.debounce, func() { st.fetch(id, target, gen) })
		s = s.Schedule(now)
	}

	e.sess = s
	return s, nil
}

// disarm stops the pending debounce timer. A timer that already fired finds its
// generation outdated and does nothing.
func (e *entry) disarm() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.armed++
}

// fetch runs one catalog fetch for the session if gen is still its armed timer and
// url is still its current URL.
func (st *Store) fetch(id, url string, gen uint64) {
	st.mu.Lock()
	e, ok := st.sessions[id]
	if !ok || e.armed != gen || e.sess.URL != url {
		st.mu.Unlock()
		return
	}
	s, ticket := e.sess.BeginFetch(st.now())
	e.sess = s
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	st.mu.Unlock()

	var c *models.Catalog
	err := st.wait()
	if err == nil {
		c, err = st.svc.GetCatalog(st.ctx, url)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok = st.sessions[id]
	if !ok {
		return
	}

	var applied bool
	if err != nil {
		e.sess, applied = e.sess.ApplyFetchError(ticket, err, st.now())
	} else {
		e.sess, applied = e.sess.ApplyCatalog(ticket, c, st.now())
	}
	if !applied {
		logger.Pl.D(1, "Session %s: discarded stale fetch result for %q", id, url)
	}
}

// wait blocks until the fetch limiter admits one more fetch.
func (st *Store) wait() error {
	if st.limit == nil {
		return nil
	}
	if err := st.limit.Wait(st.ctx); err != nil {
		return fmt.Errorf("%w: %w", errconsts.ErrRateLimited, err)
	}
	return nil
}

// Select chooses a format from the session's catalog.
func (st *Store) Select(id, formatID string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return Session{}, errconsts.ErrSessionNotFound
	}
	s, err := e.sess.Select(formatID, st.now())
	if err != nil {
		return e.sess, err
	}
	e.sess = s
	return s, nil
}

// Download starts a download for the session and returns without waiting for it.
//
// The outcome lands in the session unless a newer download or a URL change made it stale.
func (st *Store) Download(id, formatID string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return Session{}, errconsts.ErrSessionNotFound
	}
	s, ticket, err := e.sess.BeginDownload(formatID, st.now())
	if err != nil {
		return e.sess, err
	}
	e.sess = s

	go st.download(id, ticket)
	return s, nil
}

func (st *Store) download(id string, ticket DownloadTicket) {
	res, err := st.svc.Download(st.ctx, ticket.URL, ticket.FormatID)

	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return
	}

	var applied bool
	if err != nil {
		e.sess, applied = e.sess.ApplyDownloadError(ticket, err, st.now())
	} else {
		e.sess, applied = e.sess.ApplyDownload(ticket, res, st.now())
	}
	if !applied {
		logger.Pl.D(1, "Session %s: download of %q superseded", id, ticket.URL)
	}
}

// Delete drops the session and any pending fetch.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return errconsts.ErrSessionNotFound
	}
	e.disarm()
	delete(st.sessions, id)
	logger.Pl.D(2, "Deleted session %s", id)
	return nil
}

// Sweep removes idle sessions last updated before the TTL and returns how many it removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, e := range st.sessions {
		if e.sess.Busy() || e.timer != nil || !e.sess.UpdatedAt.Before(cutoff) {
			continue
		}
		delete(st.sessions, id)
		n++
	}
	if n > 0 {
		logger.Pl.D(1, "Swept %d idle sessions, %d remain", n, len(st.sessions))
	}
	return n
}

// Run sweeps idle sessions every interval until ctx is done, then stops pending fetches.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = consts.SessionSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			st.stopTimers()
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

func (st *Store) stopTimers() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, e := range st.sessions {
		e.disarm()
	}
}
