package bestbuy

import "testing"

func TestCarrierName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.bestbuy.ca/en-ca/product/koodo-apple-iphone-15/17076606", "Koodo"},
		{"https://www.bestbuy.ca/en-ca/product/KOODO-apple-iphone-15/17076606", "Koodo"},
		{"https://www.bestbuy.ca/en-ca/product/telus-apple-iphone-15/17076607", "Telus"},
		{"https://www.bestbuy.ca/en-ca/product/freedom-mobile-pixel-8/17076608", "Freedom Mobile"},
		{"https://www.bestbuy.ca/en-ca/product/virgin-plus-pixel-8/17076609", "Virgin Plus"},
		{"https://www.bestbuy.ca/en-ca/product/Bell-Samsung-S24/17076610", "Bell"},
		{"https://www.bestbuy.ca/en-ca/product/fido-samsung-s24/17076611", "Fido"},
		{"https://www.bestbuy.ca/en-ca/product/rogers-samsung-s24/17076612", "Rogers"},
		{"https://www.bestbuy.ca/en-ca/product/unlocked-samsung-s24/17076613", UnknownCarrier},
		{"", UnknownCarrier},
	}

	for _, tt := range tests {
		if got := CarrierName(tt.url); got != tt.want {
			t.Errorf("CarrierName(%q) = %q; want %q", tt.url, got, tt.want)
		}
	}
}

func TestSKUFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.bestbuy.ca/en-ca/product/koodo-iphone/17076606", "17076606"},
		{"https://www.bestbuy.ca/en-ca/product/koodo-iphone/17076606?icmp=x&cmp=1", "17076606"},
		{"17076606", "17076606"},
		{"https://www.bestbuy.ca/en-ca/product/koodo-iphone/", ""},
	}

	for _, tt := range tests {
		if got := skuFromURL(tt.url); got != tt.want {
			t.Errorf("skuFromURL(%q) = %q; want %q", tt.url, got, tt.want)
		}
	}
}
