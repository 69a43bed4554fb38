package catalog

import (
	"fmt"
	"strings"
)

const askDefault = "Ask"

// Product is one immutable catalog entry scraped from a store page.
type Product struct {
	Name         string `json:"name"`
	Store        string `json:"store"`
	Price        string `json:"price"`
	Availability string `json:"availability"`
	ImageURL     string `json:"image_url,omitempty"`
}

// NewProduct fills the free-form price/availability fields with their
// "Ask" defaults when unknown.
func NewProduct(name, store string) Product {
	return Product{
		Name:         name,
		Store:        store,
		Price:        askDefault,
		Availability: askDefault,
	}
}

// MatchesQuery reports whether the whole query is contained in the
// product name, case-insensitively.
func (p Product) MatchesQuery(query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}

// DisplayInfo is the short one-line rendering used in prompts and image
// captions.
func (p Product) DisplayInfo() string {
	return fmt.Sprintf("%s - %s 💻", p.Name, p.Store)
}

// DetailedInfo is the multi-line rendering with price and availability.
func (p Product) DetailedInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📱 %s\n", p.Name)
	fmt.Fprintf(&b, "🏪 Store: %s\n", p.Store)
	fmt.Fprintf(&b, "💰 Price: %s\n", p.Price)
	fmt.Fprintf(&b, "📦 Availability: %s", p.Availability)
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "\n🖼️ Image: %s", p.ImageURL)
	}
	return b.String()
}
