package software

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/tweakforge/tweakforge/internal/common"
	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/models"
)

const (
	// DefaultTimeout is the default HTTP timeout for catalog fetches.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// maxCatalogBytes caps the remote catalog response size.
	maxCatalogBytes = 4 << 20
)

// Service serves the winget package catalog. It starts from the
// embedded catalog and periodically replaces it with the remote one
// when a catalog URL is configured.
type Service struct {
	config     *common.SoftwareConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
	cron       *cron.Cron

	mu            sync.RWMutex
	catalog       models.SoftwareCatalog
	lastRefreshed time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) Option {
	return func(s *Service) {
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewService creates a new software catalog service seeded with the
// embedded catalog.
func NewService(config *common.SoftwareConfig, logger arbor.ILogger, opts ...Option) interfaces.SoftwareService {
	timeout := DefaultTimeout
	if config.RequestTimeout != "" {
		if d, err := time.ParseDuration(config.RequestTimeout); err == nil {
			timeout = d
		}
	}

	rateLimit := config.RateLimit
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	s := &Service{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		validate:   validator.New(),
		cron:       cron.New(),
		catalog:    defaultCatalog(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Catalog returns a copy of the current package catalog.
func (s *Service) Catalog() models.SoftwareCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	catalog := make(models.SoftwareCatalog, len(s.catalog))
	for key, pkg := range s.catalog {
		catalog[key] = pkg
	}
	return catalog
}

// LastRefreshed returns the time of the last successful remote refresh.
func (s *Service) LastRefreshed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefreshed
}

// Refresh fetches the remote catalog and swaps it in. Invalid entries
// are skipped with a warning; the swap only happens when at least one
// valid entry remains. Without a configured URL this is a no-op.
func (s *Service) Refresh(ctx context.Context) error {
	if s.config.CatalogURL == "" {
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.CatalogURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().Str("url", s.config.CatalogURL).Msg("Fetching software catalog")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var fetched models.SoftwareCatalog
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCatalogBytes)).Decode(&fetched); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}

	valid := make(models.SoftwareCatalog, len(fetched))
	for key, pkg := range fetched {
		if err := s.validate.Struct(pkg); err != nil {
			s.logger.Warn().
				Str("package", key).
				Err(err).
				Msg("Skipping invalid catalog entry")
			continue
		}
		valid[key] = pkg
	}

	if len(valid) == 0 {
		return fmt.Errorf("remote catalog contained no valid entries")
	}

	s.mu.Lock()
	s.catalog = valid
	s.lastRefreshed = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info().
		Int("packages", len(valid)).
		Int("skipped", len(fetched)-len(valid)).
		Msg("Software catalog refreshed")

	return nil
}

// StartScheduler begins periodic refresh on the configured cron
// schedule. A failed refresh keeps the previous catalog.
func (s *Service) StartScheduler() error {
	if s.config.CatalogURL == "" || s.config.RefreshSchedule == "" {
		s.logger.Debug().Msg("Catalog refresh scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.httpClient.Timeout)
		defer cancel()

		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Scheduled catalog refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.config.RefreshSchedule).
		Msg("Catalog refresh scheduler started")

	return nil
}

// Stop halts the refresh scheduler.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
