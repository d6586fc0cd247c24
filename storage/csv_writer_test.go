package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bestbuy-scraper/models"
)

func writeReport(t *testing.T, phones []*models.Phone) [][]string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.WriteReport(phones); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return rows
}

func offerWithTotal(total string) models.Offer {
	o := models.SentinelOffer()
	o.TotalPrice = total
	return o
}

func TestWriteReportCanonicalRowCount(t *testing.T) {
	phones := []*models.Phone{
		{
			Name: "Apple iPhone 15",
			Carriers: []models.Carrier{
				{Name: "Koodo", Link: "https://example.com/koodo/1", Offers: []models.Offer{offerWithTotal("1080.00")}},
				{Name: "Unknown", Link: "https://example.com/other/2", Offers: []models.Offer{offerWithTotal("999.00")}},
			},
		},
	}

	rows := writeReport(t, phones)

	// header + one row per canonical carrier; the Unknown carrier is dropped.
	if len(rows) != 1+len(CarrierOrder) {
		t.Fatalf("got %d rows; want header + %d", len(rows), len(CarrierOrder))
	}
	if rows[0][0] != "Phone" || rows[0][10] != "Link" || len(rows[0]) != 11 {
		t.Errorf("unexpected header: %v", rows[0])
	}

	for i, name := range CarrierOrder {
		row := rows[1+i]
		if row[1] != name {
			t.Errorf("row %d carrier = %q; want %q (canonical order)", i, row[1], name)
		}
		if row[0] != "Apple iPhone 15" {
			t.Errorf("row %d phone = %q", i, row[0])
		}
	}

	for _, row := range rows[1:] {
		if row[1] == "Koodo" {
			if row[4] != "1080.00" || row[10] != "https://example.com/koodo/1" {
				t.Errorf("Koodo row not populated: %v", row)
			}
		} else {
			if row[2] != "--" || row[9] != "--" {
				t.Errorf("placeholder row %q missing -- values: %v", row[1], row)
			}
			if row[10] != "" {
				t.Errorf("placeholder row %q should have a blank link, got %q", row[1], row[10])
			}
		}
	}
}

func TestWriteReportEmptyOfferCarrierEmitsNoRow(t *testing.T) {
	phones := []*models.Phone{
		{
			Name: "Google Pixel 8",
			Carriers: []models.Carrier{
				// Scraped but rejected by the pricing API: zero offers.
				{Name: "Fido", Link: "https://example.com/fido/1"},
			},
		},
	}

	rows := writeReport(t, phones)

	// The Fido slot vanishes entirely; the other six get placeholders.
	if len(rows) != 1+len(CarrierOrder)-1 {
		t.Fatalf("got %d rows; want header + %d", len(rows), len(CarrierOrder)-1)
	}
	for _, row := range rows[1:] {
		if row[1] == "Fido" {
			t.Errorf("carrier with zero offers must not emit a row: %v", row)
		}
	}
}

func TestWriteReportMultipleOffersPerCarrier(t *testing.T) {
	phones := []*models.Phone{
		{
			Name: "Samsung Galaxy S24",
			Carriers: []models.Carrier{
				{Name: "Telus", Link: "https://example.com/telus/1", Offers: []models.Offer{
					offerWithTotal("1200.00"),
					offerWithTotal("1100.00"),
				}},
			},
		},
	}

	rows := writeReport(t, phones)

	if len(rows) != 1+len(CarrierOrder)+1 {
		t.Fatalf("got %d rows; want an extra row for the second Telus offer", len(rows))
	}

	telusRows := 0
	for _, row := range rows[1:] {
		if row[1] == "Telus" {
			telusRows++
		}
	}
	if telusRows != 2 {
		t.Errorf("got %d Telus rows; want 2", telusRows)
	}
}

func TestReportFilename(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := ReportFilename("out", ts)
	want := filepath.Join("out", "bestbuy_20260830_mobiles.csv")
	if got != want {
		t.Errorf("ReportFilename = %q; want %q", got, want)
	}
}
