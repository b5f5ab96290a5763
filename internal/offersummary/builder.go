package offersummary

import (
	"strings"
	"time"
)

// BuildInput is everything a summary is built from.
type BuildInput struct {
	Offer           *OfferRecord   `json:"offer"`
	Products        ProductCatalog `json:"products"`
	SupplierContact *ContactRecord `json:"supplierContact,omitempty"`
	BuyerContact    *ContactRecord `json:"buyerContact,omitempty"`
	SupplierStatic  *PartyInfo     `json:"supplierStatic,omitempty"`
	BuyerStatic     *PartyInfo     `json:"buyerStatic,omitempty"`
	GroupBy         string         `json:"groupBy,omitempty"`
}

// Ready reports whether the input holds an offer with items and a non-empty catalog.
func (in BuildInput) Ready() bool {
	return in.Offer != nil && len(in.Offer.Items) > 0 && len(in.Products) > 0
}

// Builder assembles offer summaries. It holds the supplier's home organization,
// which is the last fallback tier for the supplier party.
type Builder struct {
	supplierDefaults PartyInfo
}

// NewBuilder creates a builder with explicit supplier defaults.
func NewBuilder(supplierDefaults PartyInfo) *Builder {
	return &Builder{supplierDefaults: supplierDefaults}
}

// SupplierDefaults returns the supplier fallback tier the builder was created with.
func (b *Builder) SupplierDefaults() PartyInfo {
	return b.supplierDefaults
}

// Build produces the summary. It returns (nil, false) while the input is not ready;
// that is a loading state, not a failure.
func (b *Builder) Build(in BuildInput) (*OfferSummary, bool) {
	if !in.Ready() {
		return nil, false
	}

	offer := in.Offer
	groupBy := normalizeGroupKey(in.GroupBy)

	items := EnrichItems(offer.Items, in.Products)
	groups, unresolved := GroupByField(items, in.Products, groupBy)
	groups = DecorateGroups(groups, groupBy)

	defaults := b.supplierDefaults
	return &OfferSummary{
		OfferCode:       Resolve(NotProvided, offer.Code),
		ValidFrom:       Resolve(NotProvided, offer.ValidFrom),
		ExpirationDate:  ExpirationDate(offer.ValidFrom, offer.ExpirationDate),
		Description:     strings.TrimSpace(offer.Description),
		Supplier:        ResolveParty(in.SupplierContact, in.SupplierStatic, &defaults),
		Buyer:           ResolveParty(in.BuyerContact, in.BuyerStatic, nil),
		GroupBy:         groupBy,
		ProductGroups:   groups,
		UnresolvedItems: unresolved,
	}, true
}

// ExpirationDate returns expiration when set, else validFrom plus DefaultValidityDays,
// else NotProvided when validFrom is missing or unparsable.
func ExpirationDate(validFrom, expiration string) string {
	if v := strings.TrimSpace(expiration); v != "" {
		return v
	}
	start, ok := parseDate(validFrom)
	if !ok {
		return NotProvided
	}
	return start.AddDate(0, 0, DefaultValidityDays).Format(DateLayout)
}

var dateLayouts = []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeGroupKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return GroupKeyNone
	}
	return strings.TrimSpace(key)
}
