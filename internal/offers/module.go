// Package offers provides the offer summary domain module.
package offers

import (
	"fmt"

	apphttp "offer_summary_backend/internal/http"
	"offer_summary_backend/internal/offers/handler"
	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/config"
	"offer_summary_backend/platform/logger"
	"offer_summary_backend/platform/validator"
)

// Module represents the offers domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new offers module with all dependencies wired
func NewModule(source service.Source, cfg config.SummaryConfig, maxConcurrency int, val *validator.Validator, log *logger.Logger) (*Module, error) {
	svc, err := NewService(source, cfg, maxConcurrency, log)
	if err != nil {
		return nil, err
	}
	h, err := handler.New(svc, val)
	if err != nil {
		return nil, fmt.Errorf("register offer validations: %w", err)
	}

	return &Module{
		handler: h,
		service: svc,
	}, nil
}

// NewService builds the offers service from the summary configuration.
func NewService(source service.Source, cfg config.SummaryConfig, maxConcurrency int, log *logger.Logger) (*service.Service, error) {
	rounding, ok := offersummary.ParseRounding(cfg.GetPriceRounding())
	if !ok {
		return nil, fmt.Errorf("unknown price rounding %q", cfg.GetPriceRounding())
	}
	template, ok := offersummary.ParseTemplate(cfg.GetDefaultTemplate())
	if !ok {
		return nil, fmt.Errorf("unknown default template %q", cfg.GetDefaultTemplate())
	}
	groupBy := offersummary.Resolve(offersummary.DefaultGroupKey, cfg.GetDefaultGroupBy())
	if !offersummary.IsGroupingKey(groupBy) {
		return nil, fmt.Errorf("unknown default grouping key %q", groupBy)
	}

	builder := offersummary.NewBuilder(SupplierParty(cfg.GetSupplierDefaults()))
	return service.New(source, builder, service.Settings{
		DefaultGroupBy:  groupBy,
		DefaultTemplate: template,
		Rounding:        rounding,
		MaxConcurrency:  maxConcurrency,
	}, log), nil
}

// SupplierParty converts the configured home organization into the supplier fallback tier.
func SupplierParty(d config.SupplierDefaults) offersummary.PartyInfo {
	return offersummary.PartyInfo{
		CompanyName: d.CompanyName,
		Street:      d.Street,
		CityZip:     d.CityZip,
		Country:     d.Country,
		RegNumber:   d.RegNumber,
		VatNumber:   d.VatNumber,
		Contact: offersummary.PartyContact{
			Name:    d.ContactName,
			Email:   d.ContactEmail,
			Phone:   d.ContactPhone,
			Website: d.Website,
		},
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "offers"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/offers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
