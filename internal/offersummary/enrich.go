package offersummary

// EnrichItems returns copies of items with canonical product data merged in.
// Non-empty detail fields win over the snapshot; custom fields are merged key by key.
// Items without a detail entry are copied unchanged. The input slice is never modified.
func EnrichItems(items []OfferLineItem, details ProductCatalog) []OfferLineItem {
	out := make([]OfferLineItem, len(items))
	for i, item := range items {
		enriched := item
		enriched.Product.CustomFields = item.Product.CustomFields.Clone()

		if detail, ok := details[item.Product.ID]; ok {
			enriched.Product.Code = Resolve(item.Product.Code, detail.Code)
			enriched.Product.Name = Resolve(item.Product.Name, detail.Name)
			if len(detail.CustomFields) > 0 {
				if enriched.Product.CustomFields == nil {
					enriched.Product.CustomFields = make(CustomFields, len(detail.CustomFields))
				}
				for k, v := range detail.CustomFields {
					_, present := detail.CustomFields.Get(k)
					if _, snapshot := enriched.Product.CustomFields[k]; snapshot && !present {
						continue
					}
					enriched.Product.CustomFields[k] = v
				}
			}
		}
		out[i] = enriched
	}
	return out
}
