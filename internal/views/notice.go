package views

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"astrobrasil/internal/schedule"
)

// DefaultNoticeTimeout is how long a notice stays up without an explicit timeout.
const DefaultNoticeTimeout = 6 * time.Second

// Notice is a transient message shown to the visitor.
type Notice struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsError   bool      `json:"is_error"`
	PostedAt  time.Time `json:"posted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NoticeBoard shows one notice at a time and dismisses it after a timeout.
type NoticeBoard struct {
	mu        sync.Mutex
	sched     *schedule.Scheduler
	ownsSched bool
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time

	current *Notice
	pending *schedule.Handle
	gen     uint64
}

// NewNoticeBoard returns a board dismissing notices after timeout. A nil
// scheduler gets a private one that Close stops.
func NewNoticeBoard(sched *schedule.Scheduler, timeout time.Duration, logger *zap.Logger) *NoticeBoard {
	b := &NoticeBoard{sched: sched, timeout: timeout, logger: logger, now: time.Now}
	if b.sched == nil {
		b.sched = schedule.New()
		b.ownsSched = true
	}
	if b.timeout <= 0 {
		b.timeout = DefaultNoticeTimeout
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b
}

// Post replaces the current notice and restarts the dismiss timer.
func (b *NoticeBoard) Post(title, message string, isError bool) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil {
		b.pending.Cancel()
	}
	now := b.now()
	n := Notice{
		Title:     title,
		Message:   message,
		IsError:   isError,
		PostedAt:  now,
		ExpiresAt: now.Add(b.timeout),
	}
	b.current = &n
	b.gen++
	gen := b.gen
	b.pending = b.sched.After(b.timeout, func() { b.dismiss(gen) })
	b.logger.Info("notice shown", zap.String("title", title), zap.Bool("error", isError))
	return n
}

func (b *NoticeBoard) dismiss(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return
	}
	b.current = nil
	b.pending = nil
}

// Current returns the visible notice, if any.
func (b *NoticeBoard) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

// Close drops the current notice and cancels its timer.
func (b *NoticeBoard) Close() {
	b.mu.Lock()
	if b.pending != nil {
		b.pending.Cancel()
	}
	b.current = nil
	b.pending = nil
	b.gen++
	b.mu.Unlock()
	if b.ownsSched {
		b.sched.Stop()
	}
	b.logger.Debug("notice board closed", zap.Int("pending_timers", b.sched.Pending()))
}
