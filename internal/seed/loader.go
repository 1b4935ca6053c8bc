// Package seed loads the mission and research center catalog from the
// document store, falling back to the built-in catalog when no seed document
// has been published.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/core"
	"astrobrasil/pkg/domain"
)

const (
	// DefaultKey is the document key used when Loader.Key is empty.
	DefaultKey = "catalog/seed.yaml"
	// DefaultMaxAttempts bounds seed fetch attempts when Loader.MaxAttempts is zero.
	DefaultMaxAttempts = 3
)

// Document is the on-disk seed shape. JSON documents decode too because
// YAML is a superset.
type Document struct {
	Missions []domain.Mission        `yaml:"missions" json:"missions"`
	Centers  []domain.ResearchCenter `yaml:"centers" json:"centers"`
}

// Result reports where the catalog came from.
type Result struct {
	Catalog  *core.CatalogStore
	Source   string // "document" or "default"
	Attempts int
}

// Loader fetches the seed document with bounded retries.
type Loader struct {
	Store       blob.Store
	Key         string
	MaxAttempts uint
	Backoff     backoff.BackOff
	Logger      *zap.Logger
}

func (l *Loader) key() string {
	if strings.TrimSpace(l.Key) == "" {
		return DefaultKey
	}
	return l.Key
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Load fetches and decodes the seed document. A missing document yields the
// built-in catalog without retrying; decode and validation failures are not
// retried either.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	log := l.logger()
	if l.Store == nil {
		log.Info("catalog seed skipped", zap.String("reason", "no document store"))
		return Result{Catalog: core.NewDefaultCatalogStore(), Source: "default"}, nil
	}
	attempts := l.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}
	b := l.Backoff
	if b == nil {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 200 * time.Millisecond
		b = eb
	}
	key := l.key()
	tries := 0
	op := func() (*core.CatalogStore, error) {
		tries++
		raw, err := l.fetch(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			return nil, backoff.Permanent(err)
		}
		if err != nil {
			return nil, err
		}
		catalog, err := Decode(raw)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return catalog, nil
	}
	notify := func(err error, next time.Duration) {
		log.Warn("catalog seed fetch failed",
			zap.String("key", key),
			zap.Int("attempt", tries),
			zap.Duration("retry_in", next),
			zap.Error(err))
	}
	catalog, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(notify))
	switch {
	case errors.Is(err, blob.ErrNotFound):
		log.Info("catalog seed missing, using defaults", zap.String("key", key))
		return Result{Catalog: core.NewDefaultCatalogStore(), Source: "default", Attempts: tries}, nil
	case err != nil:
		return Result{Attempts: tries}, fmt.Errorf("load catalog seed %s: %w", key, err)
	}
	log.Info("catalog seed loaded",
		zap.String("key", key),
		zap.Int("attempts", tries),
		zap.Int("missions", len(catalog.ListMissions(domain.StatusAll))),
		zap.Int("centers", len(catalog.ListCenters())))
	return Result{Catalog: catalog, Source: "document", Attempts: tries}, nil
}

func (l *Loader) fetch(ctx context.Context, key string) ([]byte, error) {
	_, rc, err := l.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// Decode parses a YAML or JSON seed document into a validated catalog.
func Decode(raw []byte) (*core.CatalogStore, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	catalog, err := core.NewCatalogStore(doc.Missions, doc.Centers)
	if err != nil {
		return nil, fmt.Errorf("validate seed: %w", err)
	}
	return catalog, nil
}

// Encode renders a seed document as YAML.
func Encode(missions []domain.Mission, centers []domain.ResearchCenter) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Missions: missions, Centers: centers}); err != nil {
		return nil, fmt.Errorf("encode seed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode seed: %w", err)
	}
	return buf.Bytes(), nil
}

// Publish validates and writes a seed document, replacing any existing one.
func (l *Loader) Publish(ctx context.Context, missions []domain.Mission, centers []domain.ResearchCenter) (blob.Info, error) {
	if l.Store == nil {
		return blob.Info{}, fmt.Errorf("publish seed: no document store")
	}
	if _, err := core.NewCatalogStore(missions, centers); err != nil {
		return blob.Info{}, fmt.Errorf("publish seed: %w", err)
	}
	raw, err := Encode(missions, centers)
	if err != nil {
		return blob.Info{}, err
	}
	info, err := l.Store.Put(ctx, l.key(), bytes.NewReader(raw), blob.PutOptions{
		ContentType: "application/yaml",
		Overwrite:   true,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("publish seed %s: %w", l.key(), err)
	}
	l.logger().Info("catalog seed published",
		zap.String("key", info.Key),
		zap.Int64("size", info.Size),
		zap.Int("missions", len(missions)),
		zap.Int("centers", len(centers)))
	return info, nil
}
