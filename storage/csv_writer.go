package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bestbuy-scraper/models"
)

// reportHeader is the fixed 11-column layout consumers of the report expect.
var reportHeader = []string{
	"Phone", "Carrier", "Price After GC", "Gift Card Amount", "Total Price",
	"Monthly Price", "Downpayment", "BIB Premium", "BIB Monthly Price",
	"BIB Downpayment", "Link",
}

// CarrierOrder is the canonical row order within each phone. Carriers outside
// this list (the "Unknown" label) never appear in the report.
var CarrierOrder = []string{
	"Fido", "Rogers", "Virgin Plus", "Bell", "Koodo", "Telus", "Freedom Mobile",
}

// placeholder fills the value columns of a carrier the source list did not
// cover for a phone. The link column stays blank in those rows.
const placeholder = "--"

// ReportFilename returns the date-stamped report path for the given day.
func ReportFilename(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("bestbuy_%s_mobiles.csv", t.Format("20060102")))
}

// CSVWriter writes the pricing report to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteReport emits one row group per phone: every canonical carrier in
// order, with one row per offer for carriers that were scraped and a
// placeholder row for carriers that were not. Every phone therefore spans at
// least len(CarrierOrder) rows regardless of how many URLs it listed.
func (c *CSVWriter) WriteReport(phones []*models.Phone) error {
	for _, phone := range phones {
		byName := make(map[string]models.Carrier, len(phone.Carriers))
		for _, carrier := range phone.Carriers {
			byName[carrier.Name] = carrier
		}

		for _, name := range CarrierOrder {
			carrier, found := byName[name]
			if !found {
				if err := c.writePlaceholder(phone.Name, name); err != nil {
					return err
				}
				continue
			}
			for _, offer := range carrier.Offers {
				row := []string{
					phone.Name,
					carrier.Name,
					offer.PriceAfterGC,
					offer.GiftCard,
					offer.TotalPrice,
					offer.MonthlyPrice,
					offer.DownPayment,
					offer.BIBPremium,
					offer.BIBMonthly,
					offer.DownReturn,
					carrier.Link,
				}
				if err := c.writer.Write(row); err != nil {
					return fmt.Errorf("csv: write row: %w", err)
				}
			}
			// A carrier that was found but has zero offers (the pricing API
			// rejected the SKU) contributes no rows at all, unlike a carrier
			// missing from the source list, which gets a placeholder row.
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSVWriter) writePlaceholder(phoneName, carrierName string) error {
	row := []string{
		phoneName, carrierName,
		placeholder, placeholder, placeholder, placeholder,
		placeholder, placeholder, placeholder, placeholder,
		"",
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write placeholder row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
