package bestbuy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"bestbuy-scraper/models"
	"bestbuy-scraper/services"
)

// errNoPagePricing means the rendered page carried no keep-it pricing button.
var errNoPagePricing = errors.New("no keep-it pricing on product page")

// pageOffer rebuilds an Offer from the rendered product page. Last resort
// when every pricing-API attempt failed. The page only shows the plan
// buttons, so the gift card and residual value stay at their sentinels and
// the totals are recomputed from what is on screen.
func (s *Scraper) pageOffer(link string) (models.Offer, error) {
	html, err := s.fetchRenderedPage(link)
	if err != nil {
		return models.Offer{}, err
	}
	return extractPageOffer(html)
}

// fetchRenderedPage loads the product page in headless Chrome and returns the
// rendered markup. The pricing buttons are mounted client-side, so a plain
// GET of the page would not show them.
func (s *Scraper) fetchRenderedPage(link string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)
	if bin := findChromeBinary(s.cfg.ChromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(link),
		chromedp.Sleep(4*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render product page: %w", err)
	}
	return html, nil
}

// extractPageOffer parses the keep-it and return-it pricing buttons out of
// the product page markup.
func extractPageOffer(html string) (models.Offer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Offer{}, fmt.Errorf("parse product page: %w", err)
	}

	offer := models.SentinelOffer()

	monthly, down := buttonPricing(doc, services.PlanKeepIt)
	if monthly == models.NotAvailable {
		return models.Offer{}, errNoPagePricing
	}
	offer.MonthlyPrice = monthly
	offer.DownPayment = down

	var total float64
	haveTotal := false
	if m, errM := strconv.ParseFloat(monthly, 64); errM == nil {
		if d, errD := strconv.ParseFloat(down, 64); errD == nil {
			total = m*24 + d
			haveTotal = true
			offer.TotalPrice = fmt.Sprintf("%.2f", total)
			// No gift card on the page; the price after gift card is the
			// total itself, in the report's bare float form.
			offer.PriceAfterGC = services.FloatString(total)
		}
	}

	bibMonthly, bibDown := buttonPricing(doc, services.PlanReturnIt)
	if bibMonthly != models.NotAvailable {
		offer.BIBMonthly = bibMonthly
		if haveTotal {
			if bm, errM := strconv.ParseFloat(bibMonthly, 64); errM == nil {
				if bd, errD := strconv.ParseFloat(bibDown, 64); errD == nil {
					offer.BIBPremium = fmt.Sprintf("%.2f", total-bm*24-bd)
				}
			}
		}
	}

	return offer, nil
}

// buttonPricing reads the monthly price and down payment out of the pricing
// container of the plan button whose id ends in planType.
func buttonPricing(doc *goquery.Document, planType string) (monthly, down string) {
	monthly, down = models.NotAvailable, models.NotAvailable

	button := doc.Find("button[id$='" + planType + "']").First()
	if button.Length() == 0 {
		return
	}
	container := button.Find("div.pricingContainer_3m_rC").First()
	if container.Length() == 0 {
		return
	}

	if node := container.Find("div.monthlyPrice_35UnX").First(); node.Length() > 0 {
		text := strings.SplitN(node.Text(), "/mo.", 2)[0]
		monthly = strings.TrimSpace(strings.ReplaceAll(text, "$", ""))
	}
	if node := container.Find("div.downPayment_3g6Nz").First(); node.Length() > 0 {
		text := strings.SplitN(node.Text(), "down", 2)[0]
		down = strings.TrimSpace(strings.ReplaceAll(text, "$", ""))
	}
	return
}

// findChromeBinary locates the Chrome/Chromium binary, preferring an explicit
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
