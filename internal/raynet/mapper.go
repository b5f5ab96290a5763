package raynet

import (
	"strings"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/phone"
	"offer_summary_backend/platform/sanitize"
)

// ToRecord maps the raw offer to the builder's offer record.
// The line price falls back to the price list price; the discount percent falls back to discount.
func (o *Offer) ToRecord() offersummary.OfferRecord {
	record := offersummary.OfferRecord{
		ID:             o.ID,
		Code:           strings.TrimSpace(o.Code),
		ValidFrom:      strings.TrimSpace(o.ValidFrom),
		ExpirationDate: strings.TrimSpace(o.ExpirationDate),
		Description:    sanitize.Text(o.Description),
		Owner:          o.Owner.toEntity(),
		Company:        o.Company.toEntity(),
		Person:         o.Person.toEntity(),
		Items:          make([]offersummary.OfferLineItem, 0, len(o.Items)),
	}

	for _, item := range o.Items {
		product := item.PriceListItem.Product
		record.Items = append(record.Items, offersummary.OfferLineItem{
			ID:              item.ID,
			Count:           item.Count,
			Price:           item.Price.OrDefault(item.PriceListItem.Price),
			DiscountPercent: item.DiscountPercent.OrDefault(item.Discount),
			TaxRate:         item.TaxRate,
			Product: offersummary.ProductRef{
				ID:   product.ID,
				Code: product.Code,
				Name: product.Name,
			},
		})
	}
	return record
}

// ToDetail maps the raw product to the catalog detail.
func (p *Product) ToDetail() offersummary.ProductDetail {
	return offersummary.ProductDetail{
		Name:         strings.TrimSpace(p.Name),
		Code:         strings.TrimSpace(p.Code),
		CustomFields: p.CustomFields,
	}
}

// ToContact maps a person to a live contact record. companyName is the organization the
// person represents on the offer and may be empty.
func (p *Person) ToContact(companyName string) offersummary.ContactRecord {
	names := offersummary.NameParts{
		TitleBefore: p.TitleBefore,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		TitleAfter:  p.TitleAfter,
	}
	if offersummary.ComposeName(names) == "" {
		names.FirstName = p.FullName
	}

	contact := offersummary.ContactRecord{
		Name:        names,
		CompanyName: companyName,
		Contact: offersummary.ContactInfo{
			Email:   offersummary.Resolve("", p.ContactInfo.Email, p.ContactInfo.Email2),
			Phone:   phone.NormalizeInternational(offersummary.Resolve("", p.ContactInfo.Tel1, p.ContactInfo.Tel2)),
			Website: strings.TrimSpace(p.ContactInfo.WWW),
		},
	}
	if p.PrimaryAddress != nil {
		contact.Address = p.PrimaryAddress.Address.toAddress()
	}
	return contact
}

// ToParty maps a company to the static party record of the buyer. It carries the
// tax identifiers the live contact lacks.
func (c *Company) ToParty() offersummary.PartyInfo {
	party := offersummary.PartyInfo{
		CompanyName: strings.TrimSpace(c.Name),
		RegNumber:   strings.TrimSpace(c.RegNumber),
		VatNumber:   strings.TrimSpace(c.TaxNumber),
	}
	if c.PrimaryAddress != nil {
		addr := c.PrimaryAddress.Address
		info := c.PrimaryAddress.ContactInfo
		party.Street = strings.TrimSpace(addr.Street)
		party.CityZip = strings.TrimSpace(strings.TrimSpace(addr.ZipCode) + " " + strings.TrimSpace(addr.City))
		party.Country = strings.TrimSpace(addr.Country)
		party.Contact = offersummary.PartyContact{
			Email:   offersummary.Resolve("", info.Email, info.Email2),
			Phone:   phone.NormalizeInternational(offersummary.Resolve("", info.Tel1, info.Tel2)),
			Website: strings.TrimSpace(info.WWW),
		}
	}
	return party
}

func (a AddressFields) toAddress() offersummary.Address {
	return offersummary.Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Country: strings.TrimSpace(a.Country),
	}
}

func (r *Ref) toEntity() *offersummary.EntityRef {
	if r == nil || r.ID == 0 {
		return nil
	}
	return &offersummary.EntityRef{ID: r.ID, Name: offersummary.Resolve("", r.FullName, r.Name)}
}
