package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bestbuy-scraper/models"
	"bestbuy-scraper/utils"
)

const (
	// PlanKeepIt is the standard installment plan type.
	PlanKeepIt = "keep-it"
	// PlanReturnIt is the trade-in ("Bring It Back") plan type.
	PlanReturnIt = "return-it"

	financingMonths = 24
)

var (
	// ErrNoPlans means the pricing payload was an empty array.
	ErrNoPlans = errors.New("pricing payload contains no plans")
	// ErrNoBaseline means the first plan is not a keep-it plan, so the
	// derived totals have no baseline to be computed from.
	ErrNoBaseline = errors.New("pricing payload has no keep-it baseline")
	// ErrBadShape means a required field is missing or not a number.
	ErrBadShape = errors.New("unexpected pricing payload shape")
)

// Plan is one entry of the pricing API response. The value fields are `any`
// because the upstream emits them as numbers or strings interchangeably; with
// UseNumber, numbers arrive as json.Number and keep their exact text.
type Plan struct {
	Type          string `json:"type"`
	Monthly       any    `json:"monthly"`
	DownPayment   any    `json:"downPayment"`
	GiftCard      any    `json:"giftCard"`
	ResidualValue any    `json:"residualValue"`
}

// DecodePlans parses a raw pricing API body into its plan entries.
func DecodePlans(data []byte) ([]Plan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var plans []Plan
	if err := dec.Decode(&plans); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	return plans, nil
}

// Normalizer converts pricing plan entries into report-ready Offers.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize builds one Offer from a pricing payload. Element 0 must be the
// keep-it baseline; an optional element 1 of type return-it contributes the
// BIB fields. Any error returned here is retryable from the fetcher's point
// of view and never leaks values from a previous payload.
func (n *Normalizer) Normalize(plans []Plan) (models.Offer, error) {
	if len(plans) == 0 {
		return models.Offer{}, ErrNoPlans
	}

	base := plans[0]
	if base.Type != PlanKeepIt {
		return models.Offer{}, fmt.Errorf("%w: first plan type %q", ErrNoBaseline, base.Type)
	}

	monthly, ok := asFloat(base.Monthly)
	if !ok {
		return models.Offer{}, fmt.Errorf("%w: keep-it monthly %v", ErrBadShape, base.Monthly)
	}
	down, ok := asFloat(base.DownPayment)
	if !ok {
		return models.Offer{}, fmt.Errorf("%w: keep-it downPayment %v", ErrBadShape, base.DownPayment)
	}

	total := monthly*financingMonths + down
	priceAfterGC := total
	if gift, ok := asFloat(base.GiftCard); ok && gift != 0 {
		priceAfterGC = total - gift
	}

	offer := models.SentinelOffer()
	offer.TotalPrice = fmt.Sprintf("%.2f", total)
	// The price after gift card keeps the bare float form ("1030.0"), not
	// the 2-decimal form of the total. The report has always shown it that
	// way and consumers parse it as-is.
	offer.PriceAfterGC = FloatString(priceAfterGC)
	offer.MonthlyPrice = coerceString(base.Monthly, models.NotAvailable)
	offer.DownPayment = coerceString(base.DownPayment, models.NotAvailable)
	offer.GiftCard = coerceString(base.GiftCard, models.NoGiftCard)

	if len(plans) > 1 && plans[1].Type == PlanReturnIt {
		bib := plans[1]
		offer.BIBMonthly = coerceString(bib.Monthly, models.NotAvailable)
		offer.DownReturn = coerceString(bib.ResidualValue, models.NotAvailable)

		// The premium is only meaningful when the upstream quotes the BIB
		// monthly as a float; an integer or string quote leaves it N/A.
		if isFloatLiteral(bib.Monthly) {
			bibMonthly, _ := asFloat(bib.Monthly)
			bibDown, ok := asFloat(bib.DownPayment)
			if !ok {
				return models.Offer{}, fmt.Errorf("%w: return-it downPayment %v", ErrBadShape, bib.DownPayment)
			}
			offer.BIBPremium = fmt.Sprintf("%.2f", total-bibMonthly*financingMonths-bibDown)
		}
	}

	return offer, nil
}

// asFloat extracts a numeric payload value.
func asFloat(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// isFloatLiteral reports whether the payload value is a number written with
// a fractional or exponent part, as opposed to an integer or a string.
func isFloatLiteral(v any) bool {
	n, ok := v.(json.Number)
	return ok && strings.ContainsAny(n.String(), ".eE")
}

// coerceString renders a payload value the way it appeared upstream, or the
// fallback sentinel when absent.
func coerceString(v any, fallback string) string {
	switch t := v.(type) {
	case nil:
		return fallback
	case json.Number:
		return t.String()
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// FloatString renders f in its shortest decimal form, keeping a trailing .0
// on whole values so that downstream parsers keep seeing a float.
func FloatString(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
