package contact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"astrobrasil/internal/blob"
)

const archivePrefix = "contact/"

// Receipt acknowledges an archived inquiry.
type Receipt struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	ReceivedAt time.Time `json:"received_at"`
}

type record struct {
	Receipt
	Inquiry Inquiry `json:"inquiry"`
}

// Service archives inquiries in the document store.
type Service struct {
	store  blob.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService returns a service writing to store. A nil logger is replaced by a no-op one.
func NewService(store blob.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Submit sanitizes, validates and archives an inquiry.
func (s *Service) Submit(ctx context.Context, in Inquiry) (Receipt, error) {
	in = in.Sanitized()
	if err := in.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("inquiry rejected", zap.String("code", string(verr.Code)))
		}
		return Receipt{}, err
	}
	rec := record{
		Receipt: Receipt{
			ID:         s.newID(),
			Name:       in.Name,
			Category:   in.Category,
			ReceivedAt: s.now().UTC(),
		},
		Inquiry: in,
	}
	key := archiveKey(rec.Receipt)
	if _, err := blob.PutJSON(ctx, s.store, key, rec, false); err != nil {
		return Receipt{}, fmt.Errorf("archive inquiry: %w", err)
	}
	s.logger.Info("inquiry submitted",
		zap.String("id", rec.ID),
		zap.String("category", rec.Category),
		zap.String("key", key))
	return rec.Receipt, nil
}

// List returns archived inquiries ordered by arrival.
func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	infos, err := s.store.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	out := make([]Receipt, 0, len(infos))
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, ".json") {
			continue
		}
		var rec record
		if err := blob.GetJSON(ctx, s.store, info.Key, &rec); err != nil {
			return nil, fmt.Errorf("read inquiry %s: %w", info.Key, err)
		}
		out = append(out, rec.Receipt)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedAt.Before(out[j].ReceivedAt) })
	return out, nil
}

func archiveKey(r Receipt) string {
	return fmt.Sprintf("%s%04d/%02d/%s.json", archivePrefix, r.ReceivedAt.Year(), int(r.ReceivedAt.Month()), r.ID)
}
