package offersummary

import "testing"

func lineItem(id, productID int64) OfferLineItem {
	return OfferLineItem{ID: id, Count: "1", Price: "100", Product: ProductRef{ID: productID}}
}

func catalogWith(key string, values map[int64]string) ProductCatalog {
	catalog := make(ProductCatalog, len(values))
	for id, v := range values {
		catalog[id] = ProductDetail{Name: "Produkt", Code: "P", CustomFields: CustomFields{key: v}}
	}
	return catalog
}

func TestGroupByField_OrdersLabelsAndKeepsItemOrder(t *testing.T) {
	items := []OfferLineItem{lineItem(1, 10), lineItem(2, 20), lineItem(3, 30)}
	catalog := catalogWith("X", map[int64]string{10: "B", 20: "A", 30: "A"})

	groups, unresolved := GroupByField(items, catalog, "X")

	if len(unresolved) != 0 {
		t.Fatalf("expected no unresolved items, got %d", len(unresolved))
	}
	if len(groups) != 2 || groups[0].Label != "A" || groups[1].Label != "B" {
		t.Fatalf("expected groups [A B], got %+v", groups)
	}
	if len(groups[0].Items) != 2 || groups[0].Items[0].ID != 2 || groups[0].Items[1].ID != 3 {
		t.Fatalf("expected A group to hold items 2,3 in order, got %+v", groups[0].Items)
	}
}

func TestGroupByField_MissingAndBlankValuesAreUnclassified(t *testing.T) {
	items := []OfferLineItem{lineItem(1, 10), lineItem(2, 20), lineItem(3, 30)}
	catalog := ProductCatalog{
		10: {CustomFields: CustomFields{"X": "Přední"}},
		20: {CustomFields: CustomFields{"X": "  "}},
		30: {},
	}

	groups, _ := GroupByField(items, catalog, "X")

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != Unclassified || !groups[0].Unclassified || len(groups[0].Items) != 2 {
		t.Fatalf("expected unclassified group first with 2 items, got %+v", groups[0])
	}
	if groups[1].Value != "Přední" {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestGroupByField_SentinelValueStaysClassified(t *testing.T) {
	items := []OfferLineItem{lineItem(1, 10), lineItem(2, 20)}
	catalog := ProductCatalog{
		10: {CustomFields: CustomFields{DefaultGroupKey: Unclassified}},
		20: {},
	}

	groups := DecorateGroups(mustGroups(t, items, catalog), DefaultGroupKey)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", groups)
	}
	if groups[0].Unclassified || groups[0].Label != "Náprava: "+Unclassified || len(groups[0].Items) != 1 || groups[0].Items[0].ID != 1 {
		t.Fatalf("expected classified sentinel group first, got %+v", groups[0])
	}
	if !groups[1].Unclassified || groups[1].Label != "Náprava" || len(groups[1].Items) != 1 || groups[1].Items[0].ID != 2 {
		t.Fatalf("expected unclassified group holding item 2, got %+v", groups[1])
	}
}

func mustGroups(t *testing.T, items []OfferLineItem, catalog ProductCatalog) []ProductGroup {
	t.Helper()
	groups, unresolved := GroupByField(items, catalog, DefaultGroupKey)
	if len(unresolved) != 0 {
		t.Fatalf("expected no unresolved items, got %d", len(unresolved))
	}
	return groups
}

func TestGroupByField_ExcludesUnresolvedProducts(t *testing.T) {
	items := []OfferLineItem{lineItem(1, 10), lineItem(2, 99), lineItem(3, 10)}
	catalog := catalogWith("X", map[int64]string{10: "A"})

	groups, unresolved := GroupByField(items, catalog, "X")

	grouped := 0
	for _, g := range groups {
		grouped += len(g.Items)
	}
	if grouped+len(unresolved) != len(items) {
		t.Fatalf("expected %d items accounted for, got %d grouped + %d unresolved", len(items), grouped, len(unresolved))
	}
	if len(unresolved) != 1 || unresolved[0].ID != 2 {
		t.Fatalf("expected item 2 unresolved, got %+v", unresolved)
	}
}

func TestGroupByField_NoneKeyUsesSingleGroup(t *testing.T) {
	items := []OfferLineItem{lineItem(1, 10), lineItem(2, 20)}
	catalog := catalogWith("X", map[int64]string{10: "B", 20: "A"})

	groups, _ := GroupByField(items, catalog, GroupKeyNone)

	if len(groups) != 1 || groups[0].Label != Unclassified || len(groups[0].Items) != 2 {
		t.Fatalf("expected one implicit group with both items, got %+v", groups)
	}
	if groups[0].Items[0].ID != 1 {
		t.Fatal("expected input order to be kept")
	}
}

func TestDecorateGroups(t *testing.T) {
	groups := []ProductGroup{
		{Label: Unclassified, Unclassified: true},
		{Label: "Hnací", Value: "Hnací"},
	}

	decorated := DecorateGroups(groups, "Naprava_fe9fa")
	if decorated[0].Label != "Náprava" || decorated[1].Label != "Náprava: Hnací" {
		t.Fatalf("unexpected decorated labels %q, %q", decorated[0].Label, decorated[1].Label)
	}
	if groups[1].Label != "Hnací" {
		t.Fatal("expected input groups to stay undecorated")
	}

	custom := DecorateGroups(groups, "Barva_123")
	if custom[1].Label != "Barva_123: Hnací" {
		t.Fatalf("expected raw key prefix for unknown keys, got %q", custom[1].Label)
	}

	none := DecorateGroups(groups, GroupKeyNone)
	if none[0].Label != Unclassified {
		t.Fatalf("expected no decoration for none, got %q", none[0].Label)
	}
}

func TestGroupingKeys(t *testing.T) {
	keys := GroupingKeys()
	if keys[0].Key != DefaultGroupKey || keys[len(keys)-1].Key != GroupKeyNone {
		t.Fatalf("unexpected key order %+v", keys)
	}
	if !IsGroupingKey("Index_rych_a74ff") || !IsGroupingKey(GroupKeyNone) || IsGroupingKey("Barva") {
		t.Fatal("unexpected grouping key recognition")
	}
}
