package service

import (
	"context"
	"fmt"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/apperr"
	"offer_summary_backend/platform/logger"
)

// Settings are the presentation defaults applied when a request leaves them out.
type Settings struct {
	DefaultGroupBy  string
	DefaultTemplate offersummary.Template
	Rounding        offersummary.Rounding
	MaxConcurrency  int
}

// Options are per-request presentation choices. Blank values fall back to Settings.
type Options struct {
	GroupBy  string
	Template string
}

// Result is a build outcome. Summary and Overview are set only when Ready.
type Result struct {
	Ready       bool
	Summary     *offersummary.OfferSummary
	Overview    offersummary.Overview
	Cached      bool
	Fingerprint string
}

// Service loads offers from the CRM, builds summaries and requests documents.
type Service struct {
	source   Source
	renderer Renderer     // optional, nil disables documents
	cache    SummaryCache // optional, nil disables memoization
	builder  *offersummary.Builder
	settings Settings
	log      *logger.Logger
}

// New creates a new offers service.
func New(source Source, builder *offersummary.Builder, settings Settings, log *logger.Logger) *Service {
	if settings.MaxConcurrency < 1 {
		settings.MaxConcurrency = 1
	}
	if settings.DefaultTemplate == "" {
		settings.DefaultTemplate = offersummary.TemplateWithQuantity
	}
	return &Service{
		source:   source,
		builder:  builder,
		settings: settings,
		log:      log,
	}
}

// SetRenderer injects the document renderer.
func (s *Service) SetRenderer(r Renderer) {
	s.renderer = r
}

// SetCache injects the summary cache.
func (s *Service) SetCache(c SummaryCache) {
	s.cache = c
}

// GroupingKeys lists the keys a summary can be grouped by.
func (s *Service) GroupingKeys() []offersummary.GroupingKey {
	return offersummary.GroupingKeys()
}

// DefaultGroupBy returns the grouping key used when a request names none.
func (s *Service) DefaultGroupBy() string {
	return offersummary.Resolve(offersummary.DefaultGroupKey, s.settings.DefaultGroupBy)
}

// Summary loads the offer with its products and parties and builds its summary.
func (s *Service) Summary(ctx context.Context, offerID int64, opts Options) (*Result, error) {
	groupBy, template, err := s.resolveOptions(opts, "")
	if err != nil {
		return nil, err
	}

	in, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	in.GroupBy = groupBy

	return s.build(ctx, in, template)
}

// BuildFromInput builds a summary from a caller-supplied input without fetching anything.
func (s *Service) BuildFromInput(ctx context.Context, in offersummary.BuildInput, opts Options) (*Result, error) {
	groupBy, template, err := s.resolveOptions(opts, in.GroupBy)
	if err != nil {
		return nil, err
	}
	in.GroupBy = groupBy

	return s.build(ctx, in, template)
}

// Document builds the offer summary and renders it. A summary that is not ready
// cannot be rendered.
func (s *Service) Document(ctx context.Context, offerID int64, format string, opts Options) (*Document, error) {
	if s.renderer == nil {
		return nil, apperr.Internal("document rendering is not configured")
	}

	result, err := s.Summary(ctx, offerID, opts)
	if err != nil {
		return nil, err
	}
	if !result.Ready {
		return nil, apperr.Conflict("offer summary is not ready")
	}

	doc, err := s.renderer.Render(ctx, format, result.Overview.Template, result.Summary, result.Overview)
	if err != nil {
		s.log.UpstreamError("renderer", "render_"+format, err)
		return nil, apperr.Upstream("failed to render document", err).WithOp("Document")
	}
	return doc, nil
}

func (s *Service) resolveOptions(opts Options, inputGroupBy string) (string, offersummary.Template, error) {
	groupBy := offersummary.Resolve(s.DefaultGroupBy(), opts.GroupBy, inputGroupBy)
	if !offersummary.IsGroupingKey(groupBy) {
		return "", "", apperr.Validation(fmt.Sprintf("unknown grouping key %q", groupBy))
	}

	template := s.settings.DefaultTemplate
	if opts.Template != "" {
		parsed, ok := offersummary.ParseTemplate(opts.Template)
		if !ok {
			return "", "", apperr.Validation(fmt.Sprintf("unknown template %q", opts.Template))
		}
		template = parsed
	}
	return groupBy, template, nil
}

func (s *Service) build(ctx context.Context, in offersummary.BuildInput, template offersummary.Template) (*Result, error) {
	if !in.Ready() {
		return &Result{Ready: false}, nil
	}

	fingerprint, err := s.builder.Fingerprint(in)
	if err != nil {
		return nil, fmt.Errorf("fingerprint build input: %w", err)
	}

	summary, cached := s.cached(ctx, fingerprint)
	if !cached {
		var ok bool
		summary, ok = s.builder.Build(in)
		if !ok {
			return &Result{Ready: false}, nil
		}
		s.store(ctx, fingerprint, summary)
	}

	s.log.WithContext(ctx).SummaryBuilt(summary.OfferCode, len(summary.ProductGroups), summary.GroupedItemCount(), len(summary.UnresolvedItems), cached)

	return &Result{
		Ready:       true,
		Summary:     summary,
		Overview:    offersummary.BuildOverview(summary, template, s.settings.Rounding),
		Cached:      cached,
		Fingerprint: fingerprint,
	}, nil
}

func (s *Service) cached(ctx context.Context, fingerprint string) (*offersummary.OfferSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	summary, ok, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		s.log.UpstreamError("cache", "get", err)
		return nil, false
	}
	return summary, ok && summary != nil
}

func (s *Service) store(ctx context.Context, fingerprint string, summary *offersummary.OfferSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, fingerprint, summary); err != nil {
		s.log.UpstreamError("cache", "set", err)
	}
}
