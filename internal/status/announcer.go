// Package status records global status announcements in the document store.
package status

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/contact"
)

// MinLength is the shortest accepted announcement, in characters.
const MinLength = 5

const archivePrefix = "status/"

// ErrTooShort rejects announcements under MinLength characters after sanitizing.
var ErrTooShort = errors.New("status too short")

// Payload is the archived announcement.
type Payload struct {
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
	User      string `json:"user"`
	Version   string `json:"version"`
}

// Time converts the millisecond timestamp.
func (p Payload) Time() time.Time { return time.UnixMilli(p.Timestamp) }

// Announcer publishes status payloads.
type Announcer struct {
	store   blob.Store
	user    string
	version string
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnnouncer builds an announcer that stamps payloads with user and version.
func NewAnnouncer(store blob.Store, user, version string, logger *zap.Logger) *Announcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if user == "" {
		user = "admin"
	}
	return &Announcer{store: store, user: user, version: version, logger: logger, now: time.Now}
}

// Announce sanitizes text and archives it.
func (a *Announcer) Announce(ctx context.Context, text string) (Payload, error) {
	clean := contact.Sanitize(text)
	if utf8.RuneCountInString(clean) < MinLength {
		a.logger.Warn("status too short, ignoring", zap.String("status", clean))
		return Payload{}, ErrTooShort
	}
	now := a.now()
	p := Payload{
		Timestamp: now.UnixMilli(),
		Status:    clean,
		User:      a.user,
		Version:   a.version,
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Payload{}, fmt.Errorf("status id: %w", err)
	}
	key := fmt.Sprintf("%s%d-%s.json", archivePrefix, now.UnixNano(), id)
	if _, err := blob.PutJSON(ctx, a.store, key, p, false); err != nil {
		return Payload{}, fmt.Errorf("archive status: %w", err)
	}
	a.logger.Info("status announced",
		zap.String("status", p.Status),
		zap.String("user", p.User),
		zap.String("version", p.Version),
		zap.String("key", key))
	return p, nil
}

// Latest returns the newest archived payload. ok is false when none exist.
func (a *Announcer) Latest(ctx context.Context) (Payload, bool, error) {
	infos, err := a.store.List(ctx, archivePrefix)
	if err != nil {
		return Payload{}, false, fmt.Errorf("list status: %w", err)
	}
	type entry struct {
		key   string
		nanos int64
	}
	entries := make([]entry, 0, len(infos))
	for _, info := range infos {
		name := strings.TrimSuffix(strings.TrimPrefix(info.Key, archivePrefix), ".json")
		stamp, _, _ := strings.Cut(name, "-")
		n, err := strconv.ParseInt(stamp, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{key: info.Key, nanos: n})
	}
	if len(entries) == 0 {
		return Payload{}, false, nil
	}
	// v7 ids order announcements that share a timestamp
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].nanos != entries[j].nanos {
			return entries[i].nanos > entries[j].nanos
		}
		return entries[i].key > entries[j].key
	})
	var p Payload
	if err := blob.GetJSON(ctx, a.store, entries[0].key, &p); err != nil {
		return Payload{}, false, err
	}
	return p, true, nil
}
