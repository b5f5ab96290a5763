// Package offersummary builds the normalized offer summary document consumed by
// the document renderers. Everything in this package is pure: no I/O, no logging,
// no clock reads. Missing or malformed data never produces an error; it turns into
// the NotProvided sentinel, a zero amount or an unresolved item.
package offersummary

const (
	// NotProvided is the placeholder rendered for every field that has no value.
	NotProvided = "Neuvedeno"
	// Unclassified labels the group of items whose grouping attribute is missing.
	Unclassified = "(Nezařazeno)"
	// GroupKeyNone disables grouping: all items land in a single group.
	GroupKeyNone = "none"
	// DateLayout is the layout of offer validity dates.
	DateLayout = "2006-01-02"
	// DefaultValidityDays is added to validFrom when the offer has no expiration date.
	DefaultValidityDays = 10
)

// EntityRef references a CRM record (person or company) from an offer.
type EntityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// OfferRecord is the raw offer as loaded from the CRM. The builder never modifies it.
type OfferRecord struct {
	ID             int64           `json:"id"`
	Code           string          `json:"code"`
	ValidFrom      string          `json:"validFrom,omitempty"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
	Description    string          `json:"description,omitempty"`
	Owner          *EntityRef      `json:"owner,omitempty"`   // issuing person on the supplier side
	Company        *EntityRef      `json:"company,omitempty"` // buyer organization
	Person         *EntityRef      `json:"person,omitempty"`  // buyer contact person
	Items          []OfferLineItem `json:"items"`
}

// OfferLineItem is one priced product line of an offer.
type OfferLineItem struct {
	ID              int64      `json:"id"`
	Count           Numeric    `json:"count"`
	Price           Numeric    `json:"price"`
	DiscountPercent Numeric    `json:"discountPercent"`
	TaxRate         Numeric    `json:"taxRate"`
	Product         ProductRef `json:"product"`
}

// ProductRef is the product snapshot denormalized onto a line item.
type ProductRef struct {
	ID           int64        `json:"id"`
	Code         string       `json:"code,omitempty"`
	Name         string       `json:"name,omitempty"`
	CustomFields CustomFields `json:"customFields,omitempty"`
}

// ProductDetail is the canonical product record from the catalog.
type ProductDetail struct {
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	CustomFields CustomFields `json:"customFields,omitempty"`
}

// ProductCatalog maps product id to its canonical detail.
type ProductCatalog map[int64]ProductDetail

// NameParts are the optional parts of a person's display name.
type NameParts struct {
	TitleBefore string `json:"titleBefore,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	TitleAfter  string `json:"titleAfter,omitempty"`
}

// Address is a postal address of a live contact record.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// ContactInfo holds the reachability fields of a live contact record.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// ContactRecord is a person resolved live from the CRM for one party.
type ContactRecord struct {
	Name        NameParts   `json:"name"`
	CompanyName string      `json:"companyName,omitempty"`
	Address     Address     `json:"address"`
	Contact     ContactInfo `json:"contact"`
}

// PartyContact is the contact block of a resolved party.
type PartyContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// PartyInfo is the renderable block of one business party.
// In a resolved party every field holds a value or NotProvided.
type PartyInfo struct {
	CompanyName string       `json:"companyName"`
	Street      string       `json:"street"`
	CityZip     string       `json:"cityZip"`
	Country     string       `json:"country"`
	RegNumber   string       `json:"regNumber"`
	VatNumber   string       `json:"vatNumber"`
	Contact     PartyContact `json:"contact"`
}

// ProductGroup is one report section. Label is the display label; Value is the raw
// attribute value the items share (empty for the unclassified group).
type ProductGroup struct {
	Label        string          `json:"label"`
	Value        string          `json:"value"`
	Unclassified bool            `json:"unclassified"`
	Items        []OfferLineItem `json:"items"`
}

// OfferSummary is the document handed to the renderers.
type OfferSummary struct {
	OfferCode       string          `json:"offerCode"`
	ValidFrom       string          `json:"validFrom"`
	ExpirationDate  string          `json:"expirationDate"`
	Description     string          `json:"description"`
	Supplier        PartyInfo       `json:"supplier"`
	Buyer           PartyInfo       `json:"buyer"`
	GroupBy         string          `json:"groupBy"`
	ProductGroups   []ProductGroup  `json:"productGroups"`
	UnresolvedItems []OfferLineItem `json:"unresolvedItems"`
}

// GroupedItemCount returns the number of items across all groups.
func (s *OfferSummary) GroupedItemCount() int {
	total := 0
	for _, g := range s.ProductGroups {
		total += len(g.Items)
	}
	return total
}
