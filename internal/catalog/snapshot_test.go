package catalog

import (
	"reflect"
	"testing"
)

func testSnapshot() *Snapshot {
	return NewSnapshot([]StoreListing{
		{Store: "MegaPack", Products: []Product{
			NewProduct("Lenovo ThinkPad E14", "MegaPack"),
			NewProduct("Monitor LG 24", "MegaPack"),
		}},
		{Store: "MegaComputer", Products: []Product{
			NewProduct("iPhone 13 Pro", "MegaComputer"),
			NewProduct("Teclado Logitech K380", "MegaComputer"),
		}},
	})
}

func TestFlattenPreservesStoreOrder(t *testing.T) {
	all := testSnapshot().Flatten()
	want := []string{"Lenovo ThinkPad E14", "Monitor LG 24", "iPhone 13 Pro", "Teclado Logitech K380"}
	if len(all) != len(want) {
		t.Fatalf("want %d products, got %d", len(want), len(all))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Fatalf("position %d: want %q, got %q", i, name, all[i].Name)
		}
	}
}

func TestMatchFirstHitWins(t *testing.T) {
	snap := testSnapshot()
	res := snap.Match("Lenovo")
	if res.Matched == nil || res.Matched.Name != "Lenovo ThinkPad E14" {
		t.Fatalf("unexpected match: %+v", res.Matched)
	}
	if res.Total != 4 {
		t.Fatalf("want total 4, got %d", res.Total)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	res := testSnapshot().Match("iphone 13")
	if res.Matched == nil || res.Matched.Name != "iPhone 13 Pro" {
		t.Fatalf("case-insensitive match failed: %+v", res.Matched)
	}
}

func TestMatchMultiWordQueryFallsBackToKeywords(t *testing.T) {
	res := testSnapshot().Match("laptop Lenovo")
	if res.Matched == nil || res.Matched.Name != "Lenovo ThinkPad E14" {
		t.Fatalf("keyword pass should find the Lenovo: %+v", res.Matched)
	}
}

func TestMatchNoHitStillOffersAlternatives(t *testing.T) {
	res := testSnapshot().Match("nevera")
	if res.Matched != nil {
		t.Fatalf("unexpected match: %+v", res.Matched)
	}
	if len(res.Alternatives) != 3 {
		t.Fatalf("want 3 alternatives, got %d", len(res.Alternatives))
	}
	if res.Alternatives[0].Name != "Lenovo ThinkPad E14" {
		t.Fatalf("alternatives should be the first flattened products, got %+v", res.Alternatives[0])
	}
}

func TestMatchDeterministic(t *testing.T) {
	snap := testSnapshot()
	first := snap.Match("teclado")
	for i := 0; i < 10; i++ {
		again := snap.Match("teclado")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("match is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestMatchEmptyCatalog(t *testing.T) {
	snap := NewSnapshot(nil)
	res := snap.Match("hola")
	if res.Matched != nil || len(res.Alternatives) != 0 || res.Total != 0 {
		t.Fatalf("empty catalog should match nothing: %+v", res)
	}
}

func TestNewProductDefaults(t *testing.T) {
	p := NewProduct("Laptop HP", "MegaPack")
	if p.Price != "Ask" || p.Availability != "Ask" {
		t.Fatalf("price/availability should default to Ask: %+v", p)
	}
	if p.ImageURL != "" {
		t.Fatalf("image should default empty: %+v", p)
	}
}
