package bestbuy

import (
	"time"

	"github.com/go-resty/resty/v2"

	"bestbuy-scraper/config"
	"bestbuy-scraper/models"
	"bestbuy-scraper/services"
	"bestbuy-scraper/utils"
)

// Scraper drives one sequential scrape pass over the source list. It owns
// the HTTP client carrying the default request headers; there is no shared
// state beyond it and no concurrency anywhere in the pass.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	client     *resty.Client
	retry      *utils.RetryConfig
	normalizer *services.Normalizer
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	client := resty.New().
		SetHeader("User-Agent", cfg.UserAgent)
	if cfg.HTTPTimeoutMs > 0 {
		client.SetTimeout(time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond)
	}

	return &Scraper{
		cfg:    cfg,
		logger: logger,
		client: client,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			Delay:       time.Duration(cfg.RetryDelayMs) * time.Millisecond,
			Logger:      logger,
		},
		normalizer: services.NewNormalizer(logger),
	}
}

// Scrape loads the source list and fetches pricing for every carrier URL of
// every phone, one at a time, in document order. Only a bad source list is
// fatal; per-carrier failures degrade to sentinel or empty offers.
func (s *Scraper) Scrape() ([]*models.Phone, error) {
	sources, err := s.LoadSources(s.cfg.SourcePath)
	if err != nil {
		return nil, err
	}

	s.logger.Info("[bestbuy] Loaded %d phones from %s", len(sources), s.cfg.SourcePath)

	phones := make([]*models.Phone, 0, len(sources))
	for _, src := range sources {
		phone := &models.Phone{Name: src.Phone}
		for _, link := range src.URLs {
			phone.Carriers = append(phone.Carriers, s.fetchCarrier(link, src.Phone))
		}
		phones = append(phones, phone)
	}

	s.logger.Info("[bestbuy] Scrape complete - %d phones processed", len(phones))
	return phones, nil
}
