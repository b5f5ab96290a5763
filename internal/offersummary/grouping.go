package offersummary

import "sort"

// GroupingKey is a recognized product attribute items can be grouped by.
type GroupingKey struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	// Display marks the attributes shown as columns of the product overview.
	Display bool `json:"display"`
}

var groupingKeys = []GroupingKey{
	{Key: "Naprava_fe9fa", Label: "Náprava", Display: true},
	{Key: "Vločka_key", Label: "Vločka", Display: true},
	{Key: "Spotřeba_key", Label: "Spotřeba", Display: true},
	{Key: "Provoz_2c25f", Label: "Provoz", Display: true},
	{Key: "M_S_50472", Label: "M+S", Display: true},
	{Key: "Přilnavost_key", Label: "Přilnavost", Display: true},
	{Key: "Hluk_key", Label: "Hluk", Display: true},
	{Key: "Sirka_04504", Label: "Šířka"},
	{Key: "Dezen_e771c", Label: "Dezén"},
	{Key: "Rafek_1f4ee", Label: "Ráfek"},
	{Key: "Index_rych_a74ff", Label: "Index rychlosti"},
	{Key: "Profil_c69ed", Label: "Profil"},
}

// DefaultGroupKey is the attribute offers are grouped by unless the caller picks another.
const DefaultGroupKey = "Naprava_fe9fa"

// GroupingKeys returns the recognized grouping keys, GroupKeyNone last.
func GroupingKeys() []GroupingKey {
	out := make([]GroupingKey, 0, len(groupingKeys)+1)
	out = append(out, groupingKeys...)
	return append(out, GroupingKey{Key: GroupKeyNone, Label: "Bez seskupení"})
}

// IsGroupingKey reports whether key is recognized (GroupKeyNone included).
func IsGroupingKey(key string) bool {
	if key == GroupKeyNone {
		return true
	}
	_, ok := lookupGroupingKey(key)
	return ok
}

// displayKeys returns the attributes rendered as overview columns, in column order.
func displayKeys() []GroupingKey {
	out := make([]GroupingKey, 0, len(groupingKeys))
	for _, k := range groupingKeys {
		if k.Display {
			out = append(out, k)
		}
	}
	return out
}

func lookupGroupingKey(key string) (GroupingKey, bool) {
	for _, k := range groupingKeys {
		if k.Key == key {
			return k, true
		}
	}
	return GroupingKey{}, false
}

// groupBucket separates the unclassified bucket from an attribute whose value happens to
// read like the Unclassified sentinel.
type groupBucket struct {
	value        string
	unclassified bool
}

// GroupByField partitions items by the product attribute fieldKey read from details.
// Items whose product has no detail entry are returned as unresolved and belong to no group.
// Groups are ordered by raw label (byte-wise); items keep their input order. When a value
// equals the Unclassified label, its group sorts before the unclassified one.
func GroupByField(items []OfferLineItem, details ProductCatalog, fieldKey string) ([]ProductGroup, []OfferLineItem) {
	unresolved := make([]OfferLineItem, 0)
	buckets := make(map[groupBucket]*ProductGroup)

	for _, item := range items {
		detail, ok := details[item.Product.ID]
		if !ok {
			unresolved = append(unresolved, item)
			continue
		}

		key := groupBucket{unclassified: true}
		if fieldKey != GroupKeyNone {
			if v, present := detail.CustomFields.Get(fieldKey); present {
				key = groupBucket{value: v}
			}
		}

		bucket, exists := buckets[key]
		if !exists {
			label := key.value
			if key.unclassified {
				label = Unclassified
			}
			bucket = &ProductGroup{Label: label, Value: key.value, Unclassified: key.unclassified}
			buckets[key] = bucket
		}
		bucket.Items = append(bucket.Items, item)
	}

	groups := make([]ProductGroup, 0, len(buckets))
	for _, bucket := range buckets {
		groups = append(groups, *bucket)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Label != groups[j].Label {
			return groups[i].Label < groups[j].Label
		}
		return !groups[i].Unclassified && groups[j].Unclassified
	})
	return groups, unresolved
}

// DecorateGroups replaces raw labels with "<prefix>: <value>", or just the prefix for the
// unclassified group. Unknown keys use the key itself as prefix. GroupKeyNone is left as is.
func DecorateGroups(groups []ProductGroup, fieldKey string) []ProductGroup {
	if fieldKey == GroupKeyNone {
		return groups
	}

	prefix := fieldKey
	if k, ok := lookupGroupingKey(fieldKey); ok {
		prefix = k.Label
	}

	out := make([]ProductGroup, len(groups))
	for i, g := range groups {
		g.Label = prefix
		if !g.Unclassified {
			g.Label = prefix + ": " + g.Value
		}
		out[i] = g
	}
	return out
}
