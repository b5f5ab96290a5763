package service

import (
	"context"
	"errors"
	"sync"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/apperr"
	"offer_summary_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// load fetches the offer and then, concurrently, its products, buyer company and
// the owner and buyer persons. Products missing in the CRM are left out of the
// catalog; company and person failures are logged and treated as absent.
func (s *Service) load(ctx context.Context, offerID int64) (offersummary.BuildInput, error) {
	log := s.log.WithContext(ctx)

	offer, err := s.source.GetOffer(ctx, offerID)
	if errors.Is(err, ErrNotFound) {
		return offersummary.BuildInput{}, apperr.NotFound("offer not found").WithOp("LoadOffer")
	}
	if err != nil {
		log.UpstreamError("crm", "get_offer", err)
		return offersummary.BuildInput{}, apperr.Upstream("failed to load offer", err).WithOp("LoadOffer")
	}

	in := offersummary.BuildInput{
		Offer:    offer,
		Products: make(offersummary.ProductCatalog),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.MaxConcurrency)

	for _, id := range distinctProductIDs(offer.Items) {
		id := id
		g.Go(func() error {
			detail, err := s.source.GetProduct(gctx, id)
			if errors.Is(err, ErrNotFound) {
				log.Warn("offer references missing product", "product_id", id)
				return nil
			}
			if err != nil {
				return apperr.Upstream("failed to load product", err).WithOp("LoadProduct")
			}
			mu.Lock()
			in.Products[id] = *detail
			mu.Unlock()
			return nil
		})
	}

	var buyerCompany *offersummary.PartyInfo
	if offer.Company != nil {
		g.Go(func() error {
			party, err := s.source.GetCompany(gctx, offer.Company.ID)
			if err != nil {
				logOptional(log, "get_company", err)
				return nil
			}
			buyerCompany = party
			return nil
		})
	}

	if offer.Owner != nil {
		g.Go(func() error {
			contact, err := s.source.GetPerson(gctx, offer.Owner.ID, "")
			if err != nil {
				logOptional(log, "get_owner", err)
				return nil
			}
			in.SupplierContact = contact
			return nil
		})
	}

	if offer.Person != nil {
		companyName := ""
		if offer.Company != nil {
			companyName = offer.Company.Name
		}
		g.Go(func() error {
			contact, err := s.source.GetPerson(gctx, offer.Person.ID, companyName)
			if err != nil {
				logOptional(log, "get_buyer_person", err)
				return nil
			}
			in.BuyerContact = contact
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return offersummary.BuildInput{}, ctxErr
		}
		log.UpstreamError("crm", "load_offer_details", err)
		return offersummary.BuildInput{}, err
	}

	in.BuyerStatic = buyerCompany
	return in, nil
}

func logOptional(log *logger.Logger, operation string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	log.UpstreamError("crm", operation, err)
}

func distinctProductIDs(items []offersummary.OfferLineItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id := item.Product.ID
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
