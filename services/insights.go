package services

import (
	"fmt"
	"strconv"
	"strings"

	"bestbuy-scraper/models"
	"bestbuy-scraper/storage"
	"bestbuy-scraper/utils"
)

// InsightService computes and prints the end-of-run pricing summary. The
// summary is console-only and has no bearing on the CSV report contract.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate aggregates the scraped phones into a PricingReport.
func (s *InsightService) Generate(phones []*models.Phone) *models.PricingReport {
	report := &models.PricingReport{
		CheapestByPhone: make(map[string]models.CheapestCarrier),
	}

	report.TotalPhones = len(phones)

	var premiumTotal float64

	for _, phone := range phones {
		placed := make(map[string]bool, len(phone.Carriers))

		for _, carrier := range phone.Carriers {
			placed[carrier.Name] = true

			priced := false
			for _, offer := range carrier.Offers {
				total, err := strconv.ParseFloat(offer.TotalPrice, 64)
				if err != nil {
					continue
				}
				priced = true

				cheapest, ok := report.CheapestByPhone[phone.Name]
				if !ok || total < cheapest.TotalPrice {
					report.CheapestByPhone[phone.Name] = models.CheapestCarrier{
						Carrier:    carrier.Name,
						TotalPrice: total,
					}
				}

				if premium, err := strconv.ParseFloat(offer.BIBPremium, 64); err == nil {
					premiumTotal += premium
					report.BIBOfferCount++
				}
			}

			if priced {
				report.PricedCarriers++
			} else {
				report.FailedCarriers++
			}
		}

		for _, name := range storage.CarrierOrder {
			if !placed[name] {
				report.MissingCarriers++
			}
		}
	}

	if report.BIBOfferCount > 0 {
		report.AvgBIBPremium = premiumTotal / float64(report.BIBOfferCount)
	}

	return report
}

// Print renders the report to stdout.
func (s *InsightService) Print(r *models.PricingReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  MOBILE PRICING SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Coverage\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Phones scraped     : \033[1m%d\033[0m\n", r.TotalPhones)
	fmt.Printf("  Carriers priced    : \033[1;32m%d\033[0m\n", r.PricedCarriers)
	fmt.Printf("  Carriers failed    : \033[1;31m%d\033[0m\n", r.FailedCarriers)
	fmt.Printf("  Carriers not listed: \033[1m%d\033[0m\n", r.MissingCarriers)
	fmt.Println()

	if len(r.CheapestByPhone) > 0 {
		fmt.Printf("\033[1;33m  Cheapest total price per phone\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for phone, cheapest := range r.CheapestByPhone {
			fmt.Printf("  %-30s %s (\033[1;32m$%.2f\033[0m)\n",
				truncate(phone, 30), cheapest.Carrier, cheapest.TotalPrice)
		}
		fmt.Println()
	}

	if r.BIBOfferCount > 0 {
		fmt.Printf("\033[1;33m  Bring It Back\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Offers with premium : \033[1m%d\033[0m\n", r.BIBOfferCount)
		fmt.Printf("  Average BIB premium : \033[1;32m$%.2f\033[0m\n", r.AvgBIBPremium)
		fmt.Println()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
