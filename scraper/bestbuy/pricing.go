package bestbuy

import (
	"fmt"
	"net/http"

	"bestbuy-scraper/models"
	"bestbuy-scraper/services"
	"bestbuy-scraper/utils"
)

// pricingQuery is the pre-signed query string the pricing API expects. An
// upstream contract: it stops working whenever Best Buy rotates signing keys.
const pricingQuery = "api-version=2022-05-01&sp=%2Ftriggers%2Fmanual%2Frun&sv=1.0&sig=qqpzPnL_WPQXWUV73BbXlPLU0EGP_ZfI0vsIJFccWOE"

func (s *Scraper) pricingURL(sku string) string {
	return fmt.Sprintf("%s/api/cellphones-plans-pricing/sku/%s?%s",
		s.cfg.PricingAPIBase, sku, pricingQuery)
}

// fetchCarrier resolves one product URL into a Carrier with at most one
// Offer. Transport, decode and payload-shape failures are retried on a fixed
// delay and then degrade to a single all-sentinel Offer; a non-2xx status is
// never retried and yields a Carrier with zero Offers. The two outcomes are
// distinct on purpose: they produce different row counts in the report.
func (s *Scraper) fetchCarrier(link, phoneName string) models.Carrier {
	carrierName := CarrierName(link)
	endpoint := s.pricingURL(skuFromURL(link))

	s.logger.Info("Started extracting data for %s - %s", phoneName, carrierName)

	var offer models.Offer
	err := s.retry.Do(fmt.Sprintf("%s - %s", phoneName, carrierName), func() error {
		resp, err := s.client.R().Get(endpoint)
		if err != nil {
			return err
		}
		if resp.StatusCode() != http.StatusOK {
			return utils.Permanent(fmt.Errorf("pricing API returned %s", resp.Status()))
		}

		plans, err := services.DecodePlans(resp.Body())
		if err != nil {
			return err
		}
		offer, err = s.normalizer.Normalize(plans)
		return err
	})

	switch {
	case err == nil:
		return models.Carrier{Name: carrierName, Link: link, Offers: []models.Offer{offer}}
	case utils.IsPermanent(err):
		s.logger.Error("Failed to load data for %s - %s", phoneName, carrierName)
		return models.Carrier{Name: carrierName, Link: link}
	}

	s.logger.Error("Failed to load data after %d attempts for %s - %s",
		s.retry.MaxAttempts, phoneName, carrierName)

	if s.cfg.PageFallback {
		if fallback, ferr := s.pageOffer(link); ferr == nil {
			s.logger.Warn("Using product-page pricing for %s - %s", phoneName, carrierName)
			return models.Carrier{Name: carrierName, Link: link, Offers: []models.Offer{fallback}}
		} else {
			s.logger.Warn("Product-page fallback failed for %s - %s: %v", phoneName, carrierName, ferr)
		}
	}

	return models.Carrier{Name: carrierName, Link: link, Offers: []models.Offer{models.SentinelOffer()}}
}
