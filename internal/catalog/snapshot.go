package catalog

import "strings"

// StoreListing is the ordered product list of one store.
type StoreListing struct {
	Store    string
	Products []Product
}

// Snapshot is an immutable point-in-time view of all known products
// grouped by store. Stores keep the order they were refreshed in, so
// matching stays deterministic for a given snapshot.
type Snapshot struct {
	listings []StoreListing
	total    int
}

// NewSnapshot builds a snapshot from per-store listings. The listings
// slice is taken as-is; callers must not mutate it afterwards.
func NewSnapshot(listings []StoreListing) *Snapshot {
	total := 0
	for _, l := range listings {
		total += len(l.Products)
	}
	return &Snapshot{listings: listings, total: total}
}

// Flatten returns all products in store-by-store insertion order.
func (s *Snapshot) Flatten() []Product {
	out := make([]Product, 0, s.total)
	for _, l := range s.listings {
		out = append(out, l.Products...)
	}
	return out
}

func (s *Snapshot) Total() int { return s.total }

// MatchResult carries the outcome of matching a query against a
// snapshot: the first product whose name contains the query, up to
// three alternatives, and the total product count.
type MatchResult struct {
	Matched      *Product
	Alternatives []Product
	Total        int
}

// Match finds the best product for a query. Policy: case-insensitive
// substring containment of the full query in a product name; the first
// hit in flattened catalog order wins. Multi-word queries that contain
// no product name verbatim fall back to a keyword pass, so "laptop
// Lenovo" still finds the Lenovo. When nothing matches, the first
// three products of the flattened catalog are still offered as
// alternatives so the responder always has something to show.
func (s *Snapshot) Match(query string) MatchResult {
	all := s.Flatten()

	var matched *Product
	for i := range all {
		if all[i].MatchesQuery(query) {
			matched = &all[i]
			break
		}
	}
	if matched == nil {
		if keywords := ExtractKeywords(query); len(keywords) > 0 {
		scan:
			for i := range all {
				name := strings.ToLower(all[i].Name)
				for _, kw := range keywords {
					if strings.Contains(name, kw) {
						matched = &all[i]
						break scan
					}
				}
			}
		}
	}

	alternatives := all
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}

	return MatchResult{
		Matched:      matched,
		Alternatives: alternatives,
		Total:        len(all),
	}
}
