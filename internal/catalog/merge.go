package catalog

import "sort"

// BrandLookup resolves an uppercased brand key to its brand.
type BrandLookup interface {
	Lookup(key string) (Brand, bool)
}

type MergeResult struct {
	Products  []Product
	Anomalies []GroupingAnomaly
	// Unresolved are observations dropped because their brand is unknown.
	Unresolved []RawObservation
	Merged     int
}

type groupKey struct {
	name, brandKey string
}

// Merge pairs pre-order and resale observations of the same (name, brand)
// and assigns product ids: merged pairs first, then single-channel products,
// each block in encounter order.
func Merge(obs []RawObservation, brands BrandLookup) MergeResult {
	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, o := range obs {
		k := groupKey{o.DisplayName, o.BrandKey}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	var res MergeResult
	var merged []Product
	var single []int

	for _, k := range order {
		members := groups[k]
		if len(members) == 1 {
			single = append(single, members[0])
			continue
		}

		var pre, resale []int
		for _, idx := range members {
			if obs[idx].Channel == ChannelPreorder {
				pre = append(pre, idx)
			} else {
				resale = append(resale, idx)
			}
		}
		if len(pre) != 1 || len(resale) != 1 {
			res.Anomalies = append(res.Anomalies, GroupingAnomaly{
				Name:      k.name,
				BrandKey:  k.brandKey,
				Preorders: len(pre),
				Resales:   len(resale),
			})
			single = append(single, members...)
			continue
		}

		p, r := obs[pre[0]], obs[resale[0]]
		brand, ok := brands.Lookup(p.BrandKey)
		if !ok {
			res.Unresolved = append(res.Unresolved, p, r)
			continue
		}
		merged = append(merged, Product{
			Name:               p.DisplayName,
			BrandID:            brand.ID,
			LineUp:             p.LineUp,
			Availability20mg:   Combine(r.Presence20mg, p.Presence20mg),
			Availability4560mg: Combine(r.Presence4560mg, p.Presence4560mg),
			Price:              p.Price,
		})
	}

	sort.Ints(single)
	products := merged
	for _, idx := range single {
		o := obs[idx]
		brand, ok := brands.Lookup(o.BrandKey)
		if !ok {
			res.Unresolved = append(res.Unresolved, o)
			continue
		}
		products = append(products, Product{
			Name:               o.DisplayName,
			BrandID:            brand.ID,
			LineUp:             o.LineUp,
			Availability20mg:   OnChannel(o.Channel, o.Presence20mg),
			Availability4560mg: OnChannel(o.Channel, o.Presence4560mg),
			Price:              o.Price,
		})
	}

	for i := range products {
		products[i].ID = i + 1
	}
	res.Products = products
	res.Merged = len(merged)
	return res
}
