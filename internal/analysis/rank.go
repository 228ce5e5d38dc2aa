package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortKey names the statistic groups are ordered by.
type SortKey string

const (
	SortByMean   SortKey = "mean"
	SortByMedian SortKey = "median"
	SortByCount  SortKey = "count"
	// SortByKey orders by group key, lexically.
	SortByKey SortKey = "key"
	// SortByKeyNumeric orders by group key read as a number (years);
	// non-numeric keys sort after numeric ones.
	SortByKeyNumeric SortKey = "key-numeric"
)

// Order is the sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Policy orders ranked items. Ties are broken by ascending lexical key so
// results are deterministic.
type Policy struct {
	Key   SortKey
	Order Order
}

func (p Policy) String() string { return string(p.Key) + ":" + string(p.Order) }

// ParsePolicy parses "median:desc"; the order defaults to ascending.
func ParsePolicy(s string) (Policy, error) {
	key, order, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	p := Policy{Key: SortKey(key), Order: Order(order)}
	switch p.Key {
	case SortByMean, SortByMedian, SortByCount, SortByKey, SortByKeyNumeric:
	default:
		return Policy{}, fmt.Errorf("unknown sort key %q (use mean|median|count|key|key-numeric)", key)
	}
	switch p.Order {
	case "":
		p.Order = Ascending
	case Ascending, Descending:
	default:
		return Policy{}, fmt.Errorf("unknown sort order %q (use asc|desc)", order)
	}
	return p, nil
}

// Ranked is anything a Policy can order.
type Ranked interface {
	RankKey() string
	RankValue(SortKey) (float64, bool)
}

// RankKey implements Ranked.
func (g GroupSummary) RankKey() string { return g.Key }

// RankValue implements Ranked.
func (g GroupSummary) RankValue(k SortKey) (float64, bool) {
	switch k {
	case SortByMean:
		return g.Summary.Mean, true
	case SortByMedian:
		return g.Summary.Median, true
	case SortByCount:
		return float64(g.Summary.N), true
	}
	return keyValue(g.Key, k)
}

// RankKey implements Ranked.
func (c GroupCount) RankKey() string { return c.Key }

// RankValue implements Ranked.
func (c GroupCount) RankValue(k SortKey) (float64, bool) {
	if k == SortByCount {
		return float64(c.Count), true
	}
	return keyValue(c.Key, k)
}

// RankKey implements Ranked.
func (d GroupDensity) RankKey() string { return d.Key }

// RankValue implements Ranked. Densities can only be ordered by key.
func (d GroupDensity) RankValue(k SortKey) (float64, bool) { return keyValue(d.Key, k) }

func keyValue(key string, k SortKey) (float64, bool) {
	if k != SortByKeyNumeric {
		return 0, false
	}
	v, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Sort returns a new slice holding items ordered by p. The input is not
// modified.
func Sort[T Ranked](items []T, p Policy) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return p.less(out[i], out[j])
	})
	return out
}

func (p Policy) less(a, b Ranked) bool {
	ka, kb := a.RankKey(), b.RankKey()
	if p.Key != SortByKey {
		va, oka := a.RankValue(p.Key)
		vb, okb := b.RankValue(p.Key)
		switch {
		case oka && !okb:
			return true
		case !oka && okb:
			return false
		case oka && okb && va != vb:
			if p.Order == Descending {
				return va > vb
			}
			return va < vb
		}
	} else if ka != kb {
		if p.Order == Descending {
			return ka > kb
		}
		return ka < kb
	}
	return ka < kb
}
