package analysis

import "strconv"

// KeyFunc selects the grouping key of a record.
type KeyFunc func(Record) string

// ByCategory groups records by their category value.
func ByCategory(r Record) string { return r.Category }

// ByMeasure groups records by the value of a numeric measure (for example the
// start year). Records lacking the measure share the UnknownCategory key;
// callers normally Require the measure first.
func ByMeasure(name string) KeyFunc {
	return func(r Record) string {
		v, ok := r.Measure(name)
		if !ok {
			return UnknownCategory
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Group is a non-empty set of records sharing a key.
type Group struct {
	Key     string
	Records []Record
}

// Len returns the group size.
func (g Group) Len() int { return len(g.Records) }

// Groups is the result of partitioning records by key. Keys keep first-seen
// order, which is stable for a given input but carries no meaning; apply a
// Policy before presenting.
type Groups struct {
	keys  []string
	byKey map[string][]Record
	total int
}

// GroupBy partitions records by key. Every input record lands in exactly one
// group. Empty input yields empty Groups.
func GroupBy(records []Record, key KeyFunc) *Groups {
	g := &Groups{byKey: make(map[string][]Record)}
	for _, r := range records {
		k := key(r)
		if _, ok := g.byKey[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.byKey[k] = append(g.byKey[k], r)
	}
	g.total = len(records)
	return g
}

// Len returns the number of groups.
func (g *Groups) Len() int { return len(g.keys) }

// Total returns the number of records across all groups.
func (g *Groups) Total() int { return g.total }

// Keys returns group keys in first-seen order.
func (g *Groups) Keys() []string { return append([]string(nil), g.keys...) }

// Get returns the group for key.
func (g *Groups) Get(key string) (Group, bool) {
	recs, ok := g.byKey[key]
	if !ok {
		return Group{}, false
	}
	return Group{Key: key, Records: recs}, true
}

// All returns every group in first-seen key order.
func (g *Groups) All() []Group {
	out := make([]Group, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, Group{Key: k, Records: g.byKey[k]})
	}
	return out
}

// Select returns the groups for the given keys, in the order requested.
// Keys with no records are skipped.
func (g *Groups) Select(keys ...string) []Group {
	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		if grp, ok := g.Get(k); ok {
			out = append(out, grp)
		}
	}
	return out
}
