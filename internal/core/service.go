package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"astrobrasil/internal/infra/persistence/memory"
	"astrobrasil/pkg/domain"
)

// Service is the explicit application context shared by view controllers and
// transports. It owns the read-only catalog and the preference store.
type Service struct {
	catalog *CatalogStore
	prefs   domain.PreferenceStore
	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a catalog and preference store into a service. A nil
// preference store falls back to an in-memory one.
func NewService(catalog *CatalogStore, prefs domain.PreferenceStore, opts ...Option) *Service {
	if catalog == nil {
		catalog = &CatalogStore{}
	}
	if prefs == nil {
		prefs = memory.NewStore()
	}
	s := &Service{
		catalog: catalog,
		prefs:   prefs,
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Info("catalog loaded",
		zap.Int("missions", len(catalog.missions)),
		zap.Int("centers", len(catalog.centers)))
	return s
}

// Catalog returns the underlying read-only store.
func (s *Service) Catalog() *CatalogStore { return s.catalog }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// Now returns the service clock reading.
func (s *Service) Now() time.Time { return s.now() }

// Close releases the preference store.
func (s *Service) Close() error { return s.prefs.Close() }

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	s.metrics.Observe(ctx, op, err == nil, s.now().Sub(start))
}

// Missions returns the missions matching filter.
func (s *Service) Missions(ctx context.Context, filter domain.MissionStatus) []domain.Mission {
	start := s.now()
	missions := s.catalog.ListMissions(filter)
	s.logger.Debug("missions filtered",
		zap.String("filter", string(filter)),
		zap.Int("results", len(missions)))
	s.observe(ctx, "missions.list", start, nil)
	return missions
}

// Centers returns all research centers.
func (s *Service) Centers(ctx context.Context) []domain.ResearchCenter {
	start := s.now()
	centers := s.catalog.ListCenters()
	s.observe(ctx, "centers.list", start, nil)
	return centers
}

// Summary computes aggregate catalog statistics.
func (s *Service) Summary(ctx context.Context) Summary {
	start := s.now()
	centers := s.catalog.ListCenters()
	sum := Summary{
		TotalCost:     s.catalog.TotalCost(),
		TotalProjects: TotalProjects(centers),
		MissionCounts: MissionCounts(s.catalog.ListMissions(domain.StatusAll)),
		Shares:        ProjectShares(centers),
	}
	s.logger.Debug("summary computed",
		zap.Float64("total_cost", sum.TotalCost),
		zap.Int("total_projects", sum.TotalProjects))
	s.observe(ctx, "summary", start, nil)
	return sum
}

// Preference reads a raw preference value.
func (s *Service) Preference(ctx context.Context, key string) (value string, ok bool, err error) {
	start := s.now()
	defer func() { s.observe(ctx, "preference.get", start, err) }()
	if strings.TrimSpace(key) == "" {
		return "", false, fmt.Errorf("preference key required")
	}
	value, ok, err = s.prefs.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, ok, nil
}

// SetPreference writes a raw preference value.
func (s *Service) SetPreference(ctx context.Context, key, value string) (err error) {
	start := s.now()
	defer func() { s.observe(ctx, "preference.set", start, err) }()
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("preference key required")
	}
	if err = s.prefs.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// DarkMode reports the persisted theme. Dark mode is the default.
func (s *Service) DarkMode(ctx context.Context) (bool, error) {
	raw, ok, err := s.Preference(ctx, domain.PreferenceDarkMode)
	if err != nil {
		return true, err
	}
	if !ok {
		return true, nil
	}
	return raw == "true", nil
}

// ToggleTheme flips and persists the theme, returning the new dark mode flag.
func (s *Service) ToggleTheme(ctx context.Context) (bool, error) {
	dark, err := s.DarkMode(ctx)
	if err != nil {
		return dark, err
	}
	dark = !dark
	if err := s.SetPreference(ctx, domain.PreferenceDarkMode, strconv.FormatBool(dark)); err != nil {
		return !dark, err
	}
	theme := "light"
	if dark {
		theme = "dark"
	}
	s.logger.Info("theme changed", zap.String("theme", theme))
	return dark, nil
}

// RecordPageView stores page as the last visited page.
func (s *Service) RecordPageView(ctx context.Context, page string) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	if err := s.SetPreference(ctx, domain.PreferenceLastPage, string(raw)); err != nil {
		return err
	}
	s.logger.Debug("page view recorded", zap.String("page", page))
	return nil
}

// LastPage returns the last recorded page, if any. A value that is not a
// JSON string was written through the raw preference API and is returned
// as stored.
func (s *Service) LastPage(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.Preference(ctx, domain.PreferenceLastPage)
	if err != nil || !ok {
		return "", false, err
	}
	var page string
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		s.logger.Warn("last page not JSON encoded, using raw value",
			zap.String("value", raw), zap.Error(err))
		return raw, true, nil
	}
	return page, true, nil
}
