package adapters

import (
	"context"
	"fmt"

	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/internal/render"
)

// DocumentRenderer adapts the renderer client for use by the offers domain.
// It implements the offers/service.Renderer interface.
type DocumentRenderer struct {
	client *render.Client
}

// NewDocumentRenderer creates a new adapter that wraps the renderer client.
// Returns nil if the client is nil (disabled).
func NewDocumentRenderer(client *render.Client) *DocumentRenderer {
	if client == nil {
		return nil
	}
	return &DocumentRenderer{client: client}
}

// Render requests a document in the given format.
func (a *DocumentRenderer) Render(ctx context.Context, format string, template offersummary.Template, summary *offersummary.OfferSummary, overview offersummary.Overview) (*service.Document, error) {
	f, ok := render.ParseFormat(format)
	if !ok {
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	doc, err := a.client.Render(ctx, f, render.Request{
		Template: template,
		Summary:  summary,
		Overview: overview,
	})
	if err != nil {
		return nil, err
	}

	return &service.Document{
		Data:        doc.Data,
		ContentType: doc.ContentType,
		FileName:    doc.FileName,
	}, nil
}

// Compile-time check
var _ service.Renderer = (*DocumentRenderer)(nil)
