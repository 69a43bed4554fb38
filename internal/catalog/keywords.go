package catalog

import "strings"

// Domain vocabulary for intent detection. Mixed Spanish/English because
// the merchant's customers write in both.
var techVocabulary = map[string]bool{
	"laptop": true, "computador": true, "pc": true, "notebook": true, "portátil": true,
	"iphone": true, "samsung": true, "xiaomi": true, "huawei": true, "motorola": true,
	"tablet": true, "ipad": true, "galaxy": true, "pro": true, "max": true, "plus": true,
	"ssd": true, "hdd": true, "ram": true, "memoria": true, "procesador": true, "cpu": true,
	"monitor": true, "pantalla": true, "teclado": true, "mouse": true, "auricular": true,
	"cargador": true, "batería": true, "adaptador": true, "cable": true, "usb": true,
	"precio": true, "costo": true, "disponible": true, "stock": true, "compra": true,
}

// Salutations and price-question words are long enough to pass the
// length rule but signal intent, not a product; keeping them out lets
// the greeting and price eligibility rules see them.
var intentStopwords = map[string]bool{
	"hola": true, "buenos": true, "buenas": true, "saludos": true, "hello": true, "hi": true,
	"cuánto": true, "existencia": true,
}

const punctuationCutset = ".,!?¿¡()[]{}\"'"

// ExtractKeywords tokenizes a message on whitespace, strips surrounding
// punctuation and keeps a token when it belongs to the tech vocabulary
// or is a non-numeric word longer than 3 characters. Duplicates are
// removed; order is not significant.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		clean := strings.Trim(word, punctuationCutset)
		if clean == "" || seen[clean] || intentStopwords[clean] {
			continue
		}
		if techVocabulary[clean] || (len([]rune(clean)) > 3 && !isNumeric(clean)) {
			seen[clean] = true
			keywords = append(keywords, clean)
		}
	}
	return keywords
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
