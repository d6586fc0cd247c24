package main

import (
	"fmt"
	"os"
	"time"

	"bestbuy-scraper/config"
	"bestbuy-scraper/scraper/bestbuy"
	"bestbuy-scraper/services"
	"bestbuy-scraper/storage"
	"bestbuy-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Best Buy Mobile Pricing Scraper starting ===")
	logger.Info("Config — source: %s | retries: %d | delay: %dms | page fallback: %v",
		cfg.SourcePath, cfg.MaxRetries, cfg.RetryDelayMs, cfg.PageFallback)

	scraper := bestbuy.New(cfg, logger)

	phones, err := scraper.Scrape()
	if err != nil {
		// A bad source list means there is nothing meaningful to report.
		logger.Error("Scrape aborted: %v", err)
		os.Exit(1)
	}

	csvPath := storage.ReportFilename(cfg.OutputDir, time.Now())
	csvWriter, err := storage.NewCSVWriter(csvPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := csvWriter.WriteReport(phones); err != nil {
		logger.Error("CSV write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Report written to %s", csvPath)

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(phones)
	insightSvc.Print(report)

	fmt.Printf("  Done. All data has been written to %s\n\n", csvPath)
}
