package models

// Offer holds one pricing scenario for a carrier/SKU. All fields are strings
// because the report reproduces the upstream representation verbatim for
// pass-through values and applies explicit formatting to derived ones.
type Offer struct {
	PriceAfterGC string
	GiftCard     string
	TotalPrice   string
	MonthlyPrice string
	DownPayment  string
	BIBPremium   string
	BIBMonthly   string
	DownReturn   string
}

const (
	// NotAvailable marks a field whose source data is absent or unusable.
	NotAvailable = "N/A"
	// NoGiftCard is the default gift card amount.
	NoGiftCard = "0"
)

// SentinelOffer returns an Offer with every field at its default sentinel.
// Emitted when a carrier's pricing could not be fetched after all retries.
func SentinelOffer() Offer {
	return Offer{
		PriceAfterGC: NotAvailable,
		GiftCard:     NoGiftCard,
		TotalPrice:   NotAvailable,
		MonthlyPrice: NotAvailable,
		DownPayment:  NotAvailable,
		BIBPremium:   NotAvailable,
		BIBMonthly:   NotAvailable,
		DownReturn:   NotAvailable,
	}
}

// Carrier is one distribution channel for a phone: the product link plus the
// offers extracted from it (zero offers when the product page 404s).
type Carrier struct {
	Name   string
	Link   string
	Offers []Offer
}

// Phone is a named product with one Carrier per source URL, in source order.
type Phone struct {
	Name     string
	Carriers []Carrier
}

// PricingReport holds the end-of-run summary computed over all phones.
type PricingReport struct {
	TotalPhones     int
	PricedCarriers  int
	FailedCarriers  int
	MissingCarriers int
	CheapestByPhone map[string]CheapestCarrier
	AvgBIBPremium   float64
	BIBOfferCount   int
}

// CheapestCarrier names the lowest total-price carrier found for a phone.
type CheapestCarrier struct {
	Carrier    string
	TotalPrice float64
}
