package transport

import "offer_summary_backend/internal/offersummary"

// Summary statuses.
const (
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// SummaryQuery holds the presentation options of a summary request.
type SummaryQuery struct {
	GroupBy  string `form:"groupBy" validate:"omitempty,groupkey"`
	Template string `form:"template" validate:"omitempty,oneof=withQuantity noQuantity"`
}

// DocumentQuery holds the options of a document download.
type DocumentQuery struct {
	Format   string `form:"format" validate:"required,oneof=pdf docx"`
	GroupBy  string `form:"groupBy" validate:"omitempty,groupkey"`
	Template string `form:"template" validate:"omitempty,oneof=withQuantity noQuantity"`
}

// BuildSummaryRequest is a complete build input posted by the caller.
type BuildSummaryRequest struct {
	offersummary.BuildInput
	Template string `json:"template,omitempty" validate:"omitempty,oneof=withQuantity noQuantity"`
}

// SummaryResponse wraps a build result. Summary and Overview are omitted while not ready.
type SummaryResponse struct {
	Status      string                     `json:"status"`
	Fingerprint string                     `json:"fingerprint,omitempty"`
	Summary     *offersummary.OfferSummary `json:"summary,omitempty"`
	Overview    *offersummary.Overview     `json:"overview,omitempty"`
}

// GroupingKeyResponse describes one grouping key.
type GroupingKeyResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GroupingKeysResponse lists the recognized grouping keys.
type GroupingKeysResponse struct {
	Default string                `json:"default"`
	Keys    []GroupingKeyResponse `json:"keys"`
}
