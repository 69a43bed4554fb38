package scraper

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sales-agent/internal/catalog"
	"sales-agent/internal/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Words indicating a heading names a real product.
var productKeywords = []string{
	"laptop", "computador", "pc", "notebook", "portátil",
	"iphone", "samsung", "xiaomi", "huawei", "motorola",
	"tablet", "ipad", "galaxy", "pro", "max", "plus",
	"ssd", "hdd", "ram", "memoria", "procesador", "cpu",
	"monitor", "pantalla", "teclado", "mouse", "auricular",
	"cargador", "batería", "adaptador", "cable", "usb",
}

// Headings that belong to navigation or footer chrome, not products.
var navigationWords = []string{
	"inicio", "contacto", "nosotros", "servicios", "productos", "categorías",
}

// Fetcher extracts product listings from store pages. Best effort: any
// failure yields an empty list and a logged warning.
type Fetcher struct {
	http *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{http: &http.Client{Timeout: timeout}}
}

// FetchStore downloads a store page and extracts its products, with the
// store name pre-filled on every record.
func (f *Fetcher) FetchStore(ctx context.Context, store config.Store) []catalog.Product {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, store.URL, nil)
	if err != nil {
		log.Printf("⚠️ scrape %s: bad request: %v", store.Name, err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		log.Printf("⚠️ scrape %s: %v", store.Name, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ scrape %s: status %d", store.Name, resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("⚠️ scrape %s: parse: %v", store.Name, err)
		return nil
	}

	products := ExtractProducts(doc, store.Name)
	log.Printf("found %d products at %s", len(products), store.Name)
	return products
}

// ExtractProducts walks h1-h6 headings and keeps the ones that look
// like product names.
func ExtractProducts(doc *goquery.Document, storeName string) []catalog.Product {
	var products []catalog.Product
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if isProductTitle(name) {
			products = append(products, catalog.NewProduct(name, storeName))
		}
	})
	return products
}

// isProductTitle filters headings down to plausible product names: a
// tech keyword must be present, navigation chrome is excluded, and the
// length must fit a product name (degenerate short titles rejected).
func isProductTitle(title string) bool {
	n := len([]rune(title))
	if n < 3 || n > 150 {
		return false
	}
	lower := strings.ToLower(title)
	for _, nav := range navigationWords {
		if strings.Contains(lower, nav) {
			return false
		}
	}
	for _, kw := range productKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
