package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sales-agent/internal/config"
)

const storePage = `<html><body>
<h1>Inicio</h1>
<h2>Laptop Lenovo ThinkPad E14</h2>
<h3>iPhone 13 Pro Max 256GB</h3>
<h3>ab</h3>
<h4>Contacto</h4>
<h2>Monitor LG UltraWide 29"</h2>
<h5>Promociones del mes</h5>
</body></html>`

func TestExtractProducts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(storePage))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	products := ExtractProducts(doc, "MegaPack")
	want := []string{
		"Laptop Lenovo ThinkPad E14",
		"iPhone 13 Pro Max 256GB",
		`Monitor LG UltraWide 29"`,
	}
	if len(products) != len(want) {
		t.Fatalf("want %d products, got %d: %+v", len(want), len(products), products)
	}
	for i, name := range want {
		if products[i].Name != name {
			t.Fatalf("position %d: want %q, got %q", i, name, products[i].Name)
		}
		if products[i].Store != "MegaPack" {
			t.Fatalf("store not pre-filled: %+v", products[i])
		}
		if products[i].Price != "Ask" {
			t.Fatalf("price should default to Ask: %+v", products[i])
		}
	}
}

func TestIsProductTitle(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Laptop HP Pavilion", true},
		{"Inicio", false},
		{"Contacto", false},
		{"ab", false},
		{strings.Repeat("x", 151) + " laptop", false},
		{"Noticias de la semana", false}, // no tech keyword
		{"Teclado mecánico RGB", true},
	}
	for _, tc := range cases {
		if got := isProductTitle(tc.title); got != tc.want {
			t.Fatalf("isProductTitle(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestFetchStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("fetch should send a browser User-Agent")
		}
		_, _ = w.Write([]byte(storePage))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	products := f.FetchStore(context.Background(), config.Store{Name: "MegaPack", URL: srv.URL})
	if len(products) != 3 {
		t.Fatalf("want 3 products, got %d", len(products))
	}
}

func TestFetchStoreFailuresYieldEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	if got := f.FetchStore(context.Background(), config.Store{Name: "Bad", URL: srv.URL}); len(got) != 0 {
		t.Fatalf("server error should yield empty list, got %+v", got)
	}
	if got := f.FetchStore(context.Background(), config.Store{Name: "Gone", URL: "http://127.0.0.1:1"}); len(got) != 0 {
		t.Fatalf("unreachable host should yield empty list, got %+v", got)
	}
}
