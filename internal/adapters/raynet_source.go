package adapters

import (
	"context"
	"errors"
	"fmt"

	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/internal/raynet"
)

// RaynetSource adapts the Raynet client for use by the offers domain.
// It implements the offers/service.Source interface.
type RaynetSource struct {
	client *raynet.Client
}

// NewRaynetSource creates a new adapter that wraps the Raynet client.
func NewRaynetSource(client *raynet.Client) *RaynetSource {
	return &RaynetSource{client: client}
}

// GetOffer loads the offer and maps it to the builder's offer record.
func (a *RaynetSource) GetOffer(ctx context.Context, id int64) (*offersummary.OfferRecord, error) {
	offer, err := a.client.GetOffer(ctx, id)
	if err != nil {
		return nil, translate(err, "offer", id)
	}
	record := offer.ToRecord()
	return &record, nil
}

// GetProduct loads the canonical product detail.
func (a *RaynetSource) GetProduct(ctx context.Context, id int64) (*offersummary.ProductDetail, error) {
	product, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "product", id)
	}
	detail := product.ToDetail()
	return &detail, nil
}

// GetCompany loads the buyer company as a static party record.
func (a *RaynetSource) GetCompany(ctx context.Context, id int64) (*offersummary.PartyInfo, error) {
	company, err := a.client.GetCompany(ctx, id)
	if err != nil {
		return nil, translate(err, "company", id)
	}
	party := company.ToParty()
	return &party, nil
}

// GetPerson loads a person as a live contact representing companyName.
func (a *RaynetSource) GetPerson(ctx context.Context, id int64, companyName string) (*offersummary.ContactRecord, error) {
	person, err := a.client.GetPerson(ctx, id)
	if err != nil {
		return nil, translate(err, "person", id)
	}
	contact := person.ToContact(companyName)
	return &contact, nil
}

// translate maps the client's not-found error onto the offers domain's.
func translate(err error, entity string, id int64) error {
	if errors.Is(err, raynet.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, service.ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", entity, id, err)
}

// Compile-time check
var _ service.Source = (*RaynetSource)(nil)
