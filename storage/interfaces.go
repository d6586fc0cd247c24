package storage

import "bestbuy-scraper/models"

// ReportWriter is the interface any report backend must satisfy.
type ReportWriter interface {
	WriteReport(phones []*models.Phone) error
	Close() error
}
