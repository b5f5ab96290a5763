package offersummary

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Template selects the document variant.
type Template string

const (
	// TemplateWithQuantity renders quantities, line totals and totals.
	TemplateWithQuantity Template = "withQuantity"
	// TemplateNoQuantity renders a price list without quantities.
	TemplateNoQuantity Template = "noQuantity"
)

// ParseTemplate maps a template name to a Template.
func ParseTemplate(name string) (Template, bool) {
	switch Template(name) {
	case TemplateWithQuantity, TemplateNoQuantity:
		return Template(name), true
	default:
		return TemplateWithQuantity, false
	}
}

// ShowsQuantity reports whether the template has quantity and total columns.
func (t Template) ShowsQuantity() bool {
	return t != TemplateNoQuantity
}

// Attribute is one product attribute column value.
type Attribute struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// OverviewRow is one rendered line of the product table.
type OverviewRow struct {
	ItemID             int64       `json:"itemId"`
	Code               string      `json:"code"`
	Name               string      `json:"name"`
	Quantity           string      `json:"quantity,omitempty"`
	UnitPrice          string      `json:"unitPrice"`
	Discount           string      `json:"discount"`
	TaxRate            string      `json:"taxRate"`
	PriceAfterDiscount string      `json:"priceAfterDiscount"`
	LineTotal          string      `json:"lineTotal,omitempty"`
	Attributes         []Attribute `json:"attributes"`
}

// OverviewGroup is the table section of one product group.
type OverviewGroup struct {
	Label string        `json:"label"`
	Rows  []OverviewRow `json:"rows"`
	Total string        `json:"total,omitempty"`
}

// Overview is the tabular view of a summary passed to the renderer next to it.
type Overview struct {
	Template     Template        `json:"template"`
	ShowQuantity bool            `json:"showQuantity"`
	Groups       []OverviewGroup `json:"groups"`
	GrandTotal   string          `json:"grandTotal,omitempty"`
}

// BuildOverview renders the summary's groups as table rows. Quantity, line totals and
// totals are filled only for templates that show quantities.
func BuildOverview(summary *OfferSummary, template Template, policy Rounding) Overview {
	ov := Overview{
		Template:     template,
		ShowQuantity: template.ShowsQuantity(),
		Groups:       make([]OverviewGroup, 0),
	}
	if summary == nil {
		return ov
	}

	columns := displayKeys()
	grand := decimal.Zero

	for _, g := range summary.ProductGroups {
		group := OverviewGroup{Label: g.Label, Rows: make([]OverviewRow, 0, len(g.Items))}
		subtotal := decimal.Zero

		for _, item := range g.Items {
			discount := item.DiscountPercent.OrDefault("0")
			price := PriceAfterDiscount(item.Price, discount, policy)

			row := OverviewRow{
				ItemID:             item.ID,
				Code:               Resolve(NotProvided, item.Product.Code),
				Name:               Resolve(NotProvided, item.Product.Name),
				UnitPrice:          item.Price.Text(),
				Discount:           percent(discount),
				TaxRate:            percent(item.TaxRate),
				PriceAfterDiscount: price.String(),
				Attributes:         make([]Attribute, 0, len(columns)),
			}
			for _, col := range columns {
				value, _ := item.Product.CustomFields.Get(col.Key)
				row.Attributes = append(row.Attributes, Attribute{
					Key:   col.Key,
					Label: col.Label,
					Value: Resolve(NotProvided, value),
				})
			}

			if ov.ShowQuantity {
				total := LineTotal(price, item.Count)
				subtotal = subtotal.Add(total)
				row.Quantity = item.Count.Text()
				row.LineTotal = total.StringFixed(policy.places())
			}
			group.Rows = append(group.Rows, row)
		}

		if ov.ShowQuantity {
			grand = grand.Add(subtotal)
			group.Total = subtotal.StringFixed(policy.places())
		}
		ov.Groups = append(ov.Groups, group)
	}

	if ov.ShowQuantity {
		ov.GrandTotal = grand.StringFixed(policy.places())
	}
	return ov
}

func percent(n Numeric) string {
	if strings.TrimSpace(string(n)) == "" {
		return NotProvided
	}
	return n.Text() + "%"
}
