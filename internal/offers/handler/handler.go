package handler

import (
	"context"
	"net/http"
	"strconv"

	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/offers/transport"
	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/httpkit"
	"offer_summary_backend/platform/logger"
	"offer_summary_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidOfferID   = "invalid offer id"
)

// Handler handles HTTP requests for offer summaries
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new offers handler. It registers the groupkey validation rule on val.
func New(svc *service.Service, val *validator.Validator) (*Handler, error) {
	if err := val.RegisterOneOf("groupkey", offersummary.IsGroupingKey); err != nil {
		return nil, err
	}
	return &Handler{svc: svc, val: val}, nil
}

// RegisterRoutes registers the offer routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/grouping-keys", h.GroupingKeys)
	rg.POST("/summaries", h.BuildSummary)
	rg.GET("/:id/summary", h.GetSummary)
	rg.GET("/:id/document", h.GetDocument)
}

// GroupingKeys handles GET /api/v1/offers/grouping-keys
func (h *Handler) GroupingKeys(c *gin.Context) {
	keys := h.svc.GroupingKeys()
	resp := transport.GroupingKeysResponse{
		Default: h.svc.DefaultGroupBy(),
		Keys:    make([]transport.GroupingKeyResponse, 0, len(keys)),
	}
	for _, k := range keys {
		resp.Keys = append(resp.Keys, transport.GroupingKeyResponse{Key: k.Key, Label: k.Label})
	}
	httpkit.OK(c, resp)
}

// GetSummary handles GET /api/v1/offers/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	offerID, ok := parseOfferID(c)
	if !ok {
		return
	}

	var query transport.SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Summary(c.Request.Context(), offerID, service.Options{GroupBy: query.GroupBy, Template: query.Template})
	if httpkit.HandleError(c, err) {
		return
	}

	writeResult(c, result)
}

// BuildSummary handles POST /api/v1/offers/summaries
func (h *Handler) BuildSummary(c *gin.Context) {
	var req transport.BuildSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if err := h.val.Var(req.GroupBy, "groupkey"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.BuildFromInput(c.Request.Context(), req.BuildInput, service.Options{Template: req.Template})
	if httpkit.HandleError(c, err) {
		return
	}

	writeResult(c, result)
}

// GetDocument handles GET /api/v1/offers/:id/document
func (h *Handler) GetDocument(c *gin.Context) {
	offerID, ok := parseOfferID(c)
	if !ok {
		return
	}

	var query transport.DocumentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	doc, err := h.svc.Document(c.Request.Context(), offerID, query.Format, service.Options{GroupBy: query.GroupBy, Template: query.Template})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Attachment(c, doc.ContentType, doc.FileName, doc.Data)
}

func writeResult(c *gin.Context, result *service.Result) {
	if !result.Ready {
		httpkit.JSON(c, http.StatusAccepted, transport.SummaryResponse{Status: transport.StatusNotReady})
		return
	}
	overview := result.Overview
	httpkit.OK(c, transport.SummaryResponse{
		Status:      transport.StatusReady,
		Fingerprint: result.Fingerprint,
		Summary:     result.Summary,
		Overview:    &overview,
	})
}

// parseOfferID reads the :id parameter and tags the request context with it for logging.
func parseOfferID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOfferID, nil)
		return 0, false
	}
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.OfferIDKey, c.Param("id")))
	return id, true
}
