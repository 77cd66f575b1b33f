// Package autosave keeps the server copy of an in-progress post converged
// with local edits without excessive write traffic. Edits are debounced, a
// periodic flush acts as a backstop when rapid edits keep re-arming the
// debounce, and a snapshot of the last successful save suppresses no-op
// writes.
package autosave

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Status is the save state reported to the caller.
type Status string

const (
	// StatusSaving signals that a network write is in flight.
	StatusSaving Status = "saving"
	// StatusSaved signals that the last write succeeded.
	StatusSaved Status = "saved"
	// StatusError signals that the last write failed; the payload is retried
	// on the next debounce or flush tick.
	StatusError Status = "error"
)

const (
	// DefaultDebounce is the delay after the last edit before a save runs.
	DefaultDebounce = 5 * time.Second
	// DefaultFlushInterval is the period of the backstop save timer.
	DefaultFlushInterval = 30 * time.Second
)

// Draft holds the editable fields of a post.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Saver performs the actual network writes. CreateDraft returns the server
// id of the new post; once known, subsequent saves become updates.
type Saver interface {
	CreateDraft(ctx context.Context, draft Draft) (blogID string, err error)
	UpdateBlog(ctx context.Context, blogID string, draft Draft) error
}

// Config tunes a Controller. Zero values fall back to defaults; a nil
// OnStatus drops notifications.
type Config struct {
	Debounce      time.Duration
	FlushInterval time.Duration
	OnStatus      func(status Status, err error)
}

// Controller owns the two save timers and the last-saved snapshot. All state
// is guarded by a mutex; the in-flight network call itself runs unlocked, so
// a late-resolving save can record an older snapshot as last-saved. That
// transient mis-marking is accepted, not prevented.
type Controller struct {
	saver    Saver
	debounce time.Duration
	onStatus func(Status, error)

	mu        sync.Mutex
	draft     Draft
	blogID    string
	lastSaved string
	timer     *time.Timer
	closed    bool

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a controller for a post. blogID is empty for a post that has
// never been saved; the id is recorded after the first successful create.
func New(saver Saver, blogID string, cfg Config) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}

	c := &Controller{
		saver:    saver,
		debounce: cfg.Debounce,
		onStatus: cfg.OnStatus,
		blogID:   blogID,
		ticker:   time.NewTicker(cfg.FlushInterval),
		done:     make(chan struct{}),
	}
	go c.flushLoop()
	return c
}

func (c *Controller) flushLoop() {
	for {
		select {
		case <-c.ticker.C:
			_ = c.Save(context.Background())
		case <-c.done:
			return
		}
	}
}

// Edit records the current editor state and re-arms the debounce timer.
// Only the most recent edit within the window triggers a save. Edits after
// Close are dropped.
func (c *Controller) Edit(draft Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.draft = draft
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		_ = c.Save(context.Background())
	})
}

// Save attempts a save immediately, bypassing the debounce timer. Both
// timers and manual save-now funnel through here, so the dedup and
// empty-field checks always apply. Unchanged or unsaveable drafts return nil
// without a network call.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	blogID := c.blogID
	snapshot := snapshotOf(draft)
	if snapshot == c.lastSaved {
		c.mu.Unlock()
		return nil
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.signal(StatusSaving, nil)

	var createdID string
	var err error
	if blogID != "" {
		err = c.saver.UpdateBlog(ctx, blogID, draft)
	} else {
		createdID, err = c.saver.CreateDraft(ctx, draft)
	}
	if err != nil {
		// snapshot stays untouched so the next tick retries this payload
		c.signal(StatusError, err)
		return err
	}

	c.mu.Lock()
	c.lastSaved = snapshot
	if createdID != "" && c.blogID == "" {
		c.blogID = createdID
	}
	c.mu.Unlock()

	c.signal(StatusSaved, nil)
	return nil
}

// BlogID returns the server id of the post, or "" before the first
// successful create.
func (c *Controller) BlogID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blogID
}

// Close cancels both timers. In-flight network calls are not cancelled.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		if c.timer != nil {
			c.timer.Stop()
		}
		c.mu.Unlock()
		c.ticker.Stop()
		close(c.done)
	})
}

func (c *Controller) signal(status Status, err error) {
	if c.onStatus != nil {
		c.onStatus(status, err)
	}
}

// snapshotOf serializes the editable fields for structural comparison.
func snapshotOf(d Draft) string {
	b, _ := json.Marshal(d)
	return string(b)
}
