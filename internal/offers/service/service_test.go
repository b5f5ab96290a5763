package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/apperr"
	"offer_summary_backend/platform/logger"
)

type fakeSource struct {
	mu           sync.Mutex
	offer        *offersummary.OfferRecord
	offerErr     error
	products     map[int64]offersummary.ProductDetail
	productErr   error
	company      *offersummary.PartyInfo
	companyErr   error
	persons      map[int64]offersummary.ContactRecord
	productCalls int
}

func (f *fakeSource) GetOffer(_ context.Context, _ int64) (*offersummary.OfferRecord, error) {
	if f.offerErr != nil {
		return nil, f.offerErr
	}
	if f.offer == nil {
		return nil, ErrNotFound
	}
	return f.offer, nil
}

func (f *fakeSource) GetProduct(_ context.Context, id int64) (*offersummary.ProductDetail, error) {
	f.mu.Lock()
	f.productCalls++
	f.mu.Unlock()
	if f.productErr != nil {
		return nil, f.productErr
	}
	detail, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &detail, nil
}

func (f *fakeSource) GetCompany(_ context.Context, _ int64) (*offersummary.PartyInfo, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return f.company, nil
}

func (f *fakeSource) GetPerson(_ context.Context, id int64, companyName string) (*offersummary.ContactRecord, error) {
	person, ok := f.persons[id]
	if !ok {
		return nil, ErrNotFound
	}
	person.CompanyName = companyName
	return &person, nil
}

type fakeRenderer struct {
	format   string
	template offersummary.Template
	err      error
}

func (r *fakeRenderer) Render(_ context.Context, format string, template offersummary.Template, summary *offersummary.OfferSummary, _ offersummary.Overview) (*Document, error) {
	r.format = format
	r.template = template
	if r.err != nil {
		return nil, r.err
	}
	return &Document{Data: []byte("%PDF"), ContentType: "application/pdf", FileName: "nabidka-" + summary.OfferCode + ".pdf"}, nil
}

func newSource() *fakeSource {
	return &fakeSource{
		offer: &offersummary.OfferRecord{
			ID:        7,
			Code:      "NAB-7",
			ValidFrom: "2024-03-01",
			Owner:     &offersummary.EntityRef{ID: 1},
			Company:   &offersummary.EntityRef{ID: 50, Name: "Odběratel a.s."},
			Person:    &offersummary.EntityRef{ID: 2},
			Items: []offersummary.OfferLineItem{
				{ID: 1, Count: "4", Price: "2500", Product: offersummary.ProductRef{ID: 100}},
				{ID: 2, Count: "2", Price: "1800", Product: offersummary.ProductRef{ID: 100}},
				{ID: 3, Count: "1", Price: "999", Product: offersummary.ProductRef{ID: 300}},
			},
		},
		products: map[int64]offersummary.ProductDetail{
			100: {Name: "Barum Polaris 5", CustomFields: offersummary.CustomFields{"Naprava_fe9fa": "Hnací"}},
		},
		company: &offersummary.PartyInfo{CompanyName: "Odběratel a.s.", RegNumber: "12345678"},
		persons: map[int64]offersummary.ContactRecord{
			1: {Name: offersummary.NameParts{FirstName: "Jana", LastName: "Nováková"}},
			2: {Name: offersummary.NameParts{FirstName: "Petr", LastName: "Svoboda"}, Contact: offersummary.ContactInfo{Email: "petr@example.cz"}},
		},
	}
}

func newService(src Source) *Service {
	builder := offersummary.NewBuilder(offersummary.PartyInfo{CompanyName: "CZECH STYLE, spol. s r.o."})
	return New(src, builder, Settings{
		DefaultGroupBy:  "Naprava_fe9fa",
		DefaultTemplate: offersummary.TemplateWithQuantity,
		MaxConcurrency:  4,
	}, logger.Discard())
}

func TestSummary_LoadsAndBuilds(t *testing.T) {
	src := newSource()
	svc := newService(src)

	result, err := svc.Summary(context.Background(), 7, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ready || result.Summary == nil {
		t.Fatal("expected ready summary")
	}
	if src.productCalls != 2 {
		t.Fatalf("expected one call per distinct product, got %d", src.productCalls)
	}

	summary := result.Summary
	if summary.GroupBy != "Naprava_fe9fa" || len(summary.ProductGroups) != 1 {
		t.Fatalf("unexpected grouping %q with %d groups", summary.GroupBy, len(summary.ProductGroups))
	}
	if len(summary.UnresolvedItems) != 1 || summary.UnresolvedItems[0].ID != 3 {
		t.Fatalf("expected missing product to be unresolved, got %+v", summary.UnresolvedItems)
	}
	if summary.Supplier.Contact.Name != "Jana Nováková" || summary.Supplier.CompanyName != "CZECH STYLE, spol. s r.o." {
		t.Fatalf("unexpected supplier %+v", summary.Supplier)
	}
	if summary.Buyer.RegNumber != "12345678" || summary.Buyer.Contact.Email != "petr@example.cz" {
		t.Fatalf("unexpected buyer %+v", summary.Buyer)
	}
	if !result.Overview.ShowQuantity {
		t.Fatal("expected default template to show quantities")
	}
}

func TestSummary_CompanyFailureTreatedAsAbsent(t *testing.T) {
	src := newSource()
	src.companyErr = errors.New("connection reset")

	result, err := newService(src).Summary(context.Background(), 7, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Buyer.RegNumber != offersummary.NotProvided {
		t.Fatalf("expected no tax id without company, got %q", result.Summary.Buyer.RegNumber)
	}
	if result.Summary.Buyer.CompanyName != "Odběratel a.s." {
		t.Fatalf("expected company name from the person link, got %q", result.Summary.Buyer.CompanyName)
	}
}

func TestSummary_ProductFailureFailsLoad(t *testing.T) {
	src := newSource()
	src.productErr = errors.New("status 500")

	_, err := newService(src).Summary(context.Background(), 7, Options{})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSummary_OfferNotFound(t *testing.T) {
	src := newSource()
	src.offer = nil

	_, err := newService(src).Summary(context.Background(), 7, Options{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSummary_NotReadyWithoutProducts(t *testing.T) {
	src := newSource()
	src.products = nil

	result, err := newService(src).Summary(context.Background(), 7, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ready || result.Summary != nil {
		t.Fatal("expected not ready when no product resolves")
	}
}

func TestSummary_RejectsUnknownOptions(t *testing.T) {
	svc := newService(newSource())

	if _, err := svc.Summary(context.Background(), 7, Options{GroupBy: "Barva"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for group key, got %v", err)
	}
	if _, err := svc.Summary(context.Background(), 7, Options{Template: "compact"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for template, got %v", err)
	}
}

func TestBuildFromInput_UsesCache(t *testing.T) {
	src := newSource()
	svc := newService(src)
	svc.SetCache(NewMemoryCache(8, 0))

	in := offersummary.BuildInput{
		Offer:    src.offer,
		Products: offersummary.ProductCatalog{100: src.products[100]},
	}

	first, err := svc.BuildFromInput(context.Background(), in, Options{Template: "noQuantity"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Fatal("expected first build to miss the cache")
	}
	if first.Overview.ShowQuantity {
		t.Fatal("expected noQuantity overview")
	}

	second, err := svc.BuildFromInput(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached || second.Fingerprint != first.Fingerprint {
		t.Fatal("expected identical input to hit the cache")
	}

	regrouped, err := svc.BuildFromInput(context.Background(), in, Options{GroupBy: offersummary.GroupKeyNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if regrouped.Cached || regrouped.Fingerprint == first.Fingerprint {
		t.Fatal("expected a different grouping key to rebuild")
	}
}

func TestDocument(t *testing.T) {
	src := newSource()
	svc := newService(src)

	if _, err := svc.Document(context.Background(), 7, "pdf", Options{}); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected error without renderer, got %v", err)
	}

	renderer := &fakeRenderer{}
	svc.SetRenderer(renderer)

	doc, err := svc.Document(context.Background(), 7, "pdf", Options{Template: "noQuantity"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.FileName != "nabidka-NAB-7.pdf" || renderer.template != offersummary.TemplateNoQuantity {
		t.Fatalf("unexpected document %q with template %q", doc.FileName, renderer.template)
	}

	src.products = nil
	if _, err := svc.Document(context.Background(), 7, "pdf", Options{}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for not ready summary, got %v", err)
	}

	src.products = newSource().products
	renderer.err = errors.New("status 503")
	if _, err := svc.Document(context.Background(), 7, "docx", Options{}); !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
