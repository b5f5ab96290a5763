package service

import (
	"context"
	"errors"

	"offer_summary_backend/internal/offersummary"
)

// ErrNotFound is returned by a Source when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Source loads offer data from the CRM. Implementations translate their own
// not-found errors to ErrNotFound.
type Source interface {
	GetOffer(ctx context.Context, id int64) (*offersummary.OfferRecord, error)
	GetProduct(ctx context.Context, id int64) (*offersummary.ProductDetail, error)
	// GetCompany returns the company as a static party record (tax ids included).
	GetCompany(ctx context.Context, id int64) (*offersummary.PartyInfo, error)
	// GetPerson returns the person as a live contact representing companyName.
	GetPerson(ctx context.Context, id int64, companyName string) (*offersummary.ContactRecord, error)
}

// Document is a rendered offer document.
type Document struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Renderer turns a summary into a document of the given format ("pdf" or "docx").
type Renderer interface {
	Render(ctx context.Context, format string, template offersummary.Template, summary *offersummary.OfferSummary, overview offersummary.Overview) (*Document, error)
}

// SummaryCache memoizes built summaries by build fingerprint.
type SummaryCache interface {
	Get(ctx context.Context, fingerprint string) (*offersummary.OfferSummary, bool, error)
	Set(ctx context.Context, fingerprint string, summary *offersummary.OfferSummary) error
}
