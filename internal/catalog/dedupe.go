package catalog

type observationKey struct {
	name, brandKey, brandName, lineUp string
	channel                           Channel
	p20, p4560                        bool
	price                             string
}

func keyOf(o RawObservation) observationKey {
	return observationKey{
		name:      o.DisplayName,
		brandKey:  o.BrandKey,
		brandName: o.BrandName,
		lineUp:    o.LineUp,
		channel:   o.Channel,
		p20:       o.Presence20mg,
		p4560:     o.Presence4560mg,
		price:     o.Price.String(),
	}
}

// Deduplicate drops observations identical on every field, keeping the first
// occurrence and the original order.
func Deduplicate(obs []RawObservation) []RawObservation {
	seen := make(map[observationKey]struct{}, len(obs))
	out := make([]RawObservation, 0, len(obs))
	for _, o := range obs {
		k := keyOf(o)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}
