package raynet

import "offer_summary_backend/internal/offersummary"

// envelope is the response wrapper of every Raynet API v2 endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Ref is a reference to another record embedded in a response.
type Ref struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// Offer is the raw /offer/{id}/ record.
type Offer struct {
	ID             int64       `json:"id"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	ValidFrom      string      `json:"validFrom"`
	ExpirationDate string      `json:"expirationDate"`
	Description    string      `json:"description"`
	Owner          *Ref        `json:"owner"`
	Company        *Ref        `json:"company"`
	Person         *Ref        `json:"person"`
	Items          []OfferItem `json:"items"`
}

// OfferItem is one line of an offer.
type OfferItem struct {
	ID              int64                `json:"id"`
	Count           offersummary.Numeric `json:"count"`
	Price           offersummary.Numeric `json:"price"`
	Discount        offersummary.Numeric `json:"discount"`
	DiscountPercent offersummary.Numeric `json:"discountPercent"`
	TaxRate         offersummary.Numeric `json:"taxRate"`
	PriceListItem   PriceListItem        `json:"priceListItem"`
}

// PriceListItem links an offer line to the price list and its product.
type PriceListItem struct {
	ID      int64                `json:"id"`
	Price   offersummary.Numeric `json:"price"`
	Product ProductRef           `json:"product"`
}

// ProductRef is the product snapshot embedded in a price list item.
type ProductRef struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Product is the raw /product/{id}/ record.
type Product struct {
	ID           int64                     `json:"id"`
	Code         string                    `json:"code"`
	Name         string                    `json:"name"`
	Unit         string                    `json:"unit"`
	CustomFields offersummary.CustomFields `json:"customFields"`
}

// AddressFields is a postal address.
type AddressFields struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// ContactInfo holds the reachability channels of a company or person.
type ContactInfo struct {
	Email  string `json:"email"`
	Email2 string `json:"email2"`
	Tel1   string `json:"tel1"`
	Tel2   string `json:"tel2"`
	WWW    string `json:"www"`
}

// Address pairs a postal address with its contact channels.
type Address struct {
	Address     AddressFields `json:"address"`
	ContactInfo ContactInfo   `json:"contactInfo"`
}

// Company is the raw /company/{id}/ record.
type Company struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	RegNumber      string   `json:"regNumber"`
	TaxNumber      string   `json:"taxNumber"`
	PrimaryAddress *Address `json:"primaryAddress"`
}

// Person is the raw /person/{id}/ record.
type Person struct {
	ID             int64       `json:"id"`
	FullName       string      `json:"fullName"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	TitleBefore    string      `json:"titleBefore"`
	TitleAfter     string      `json:"titleAfter"`
	ContactInfo    ContactInfo `json:"contactInfo"`
	PrimaryAddress *Address    `json:"primaryAddress"`
	Company        *Ref        `json:"company"`
}
