// Package diversify reorders relevance-ranked news so that no single source
// dominates the top of the list.
package diversify

import (
	"sort"

	"github.com/diretoriaja/portal/pkg/common"
)

// UnknownSource groups items that carry neither a source id nor a name.
const UnknownSource = "unknown"

type group struct {
	key       string
	items     []common.Noticia
	best      float64
	bestIndex int
}

// SourceKey returns the grouping key of n: its source id, else its source
// name, else UnknownSource.
func SourceKey(n common.Noticia) string {
	if n.FonteID != "" {
		return n.FonteID
	}
	if n.FonteNome != "" {
		return n.FonteNome
	}
	return UnknownSource
}

// Diversify returns at most limit items from items, interleaved across
// sources and without two items sharing a URL. Items without a URL are never
// considered duplicates.
//
// Lists that already fit in limit, or that come from a single source, keep
// their order. Otherwise sources are ranked by their best relevance score and
// emitted round-robin, one item per source per pass, until limit items are
// emitted or every source is exhausted.
func Diversify(items []common.Noticia, limit int) []common.Noticia {
	if limit <= 0 || len(items) == 0 {
		return []common.Noticia{}
	}
	if len(items) <= limit {
		return dedupe(items, limit)
	}

	groups := groupBySource(items)
	if len(groups) == 1 {
		return dedupe(items, limit)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].best != groups[j].best {
			return groups[i].best > groups[j].best
		}
		return groups[i].bestIndex < groups[j].bestIndex
	})

	result := make([]common.Noticia, 0, limit)
	seen := make(map[string]struct{}, limit)
	idx := make([]int, len(groups))

	for len(result) < limit {
		added := false

		for i, g := range groups {
			for idx[i] < len(g.items) {
				n := g.items[idx[i]]
				idx[i]++
				if n.URL != "" {
					if _, dup := seen[n.URL]; dup {
						continue
					}
					seen[n.URL] = struct{}{}
				}
				result = append(result, n)
				added = true
				break
			}
			if len(result) >= limit {
				break
			}
		}

		// every source is exhausted
		if !added {
			break
		}
	}

	return result
}

// groupBySource buckets items in order of first appearance and records each
// bucket's best score and the input position of that best item.
func groupBySource(items []common.Noticia) []*group {
	byKey := make(map[string]*group)
	var groups []*group
	for i, n := range items {
		key := SourceKey(n)
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key, best: n.RelevanciaTotal, bestIndex: i}
			byKey[key] = g
			groups = append(groups, g)
		}
		if n.RelevanciaTotal > g.best {
			g.best = n.RelevanciaTotal
			g.bestIndex = i
		}
		g.items = append(g.items, n)
	}
	return groups
}

// dedupe keeps input order, drops repeated URLs and truncates to limit.
func dedupe(items []common.Noticia, limit int) []common.Noticia {
	out := make([]common.Noticia, 0, min(len(items), limit))
	seen := make(map[string]struct{}, len(items))
	for _, n := range items {
		if len(out) >= limit {
			break
		}
		if n.URL != "" {
			if _, dup := seen[n.URL]; dup {
				continue
			}
			seen[n.URL] = struct{}{}
		}
		out = append(out, n)
	}
	return out
}
