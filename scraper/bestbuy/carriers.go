package bestbuy

import "strings"

// UnknownCarrier is the label for product URLs matching no known carrier.
const UnknownCarrier = "Unknown"

// carrierTable maps URL substrings to carrier labels. A slice, not a map:
// the first matching entry wins and the match order is part of the contract.
var carrierTable = []struct {
	substr string
	label  string
}{
	{"telus", "Telus"},
	{"koodo", "Koodo"},
	{"rogers", "Rogers"},
	{"fido", "Fido"},
	{"freedom-mobile", "Freedom Mobile"},
	{"bell", "Bell"},
	{"virgin-plus", "Virgin Plus"},
}

// CarrierName resolves a product URL to its carrier label, case-insensitively.
func CarrierName(url string) string {
	lower := strings.ToLower(url)
	for _, entry := range carrierTable {
		if strings.Contains(lower, entry.substr) {
			return entry.label
		}
	}
	return UnknownCarrier
}

// skuFromURL extracts the SKU: the final path segment with any query stripped.
func skuFromURL(url string) string {
	sku := url
	if i := strings.LastIndex(sku, "/"); i >= 0 {
		sku = sku[i+1:]
	}
	if i := strings.Index(sku, "?"); i >= 0 {
		sku = sku[:i]
	}
	return sku
}
