package recommendation

import (
	"net/url"
	"strings"
)

const (
	amazonSearchURL      = "https://www.amazon.com/s?k="
	barnesNobleSearchURL = "https://www.barnesandnoble.com/s/"
	bookshopSearchURL    = "https://bookshop.org/search?keywords="
)

// componentReplacer turns url.QueryEscape output into the encoding browsers
// produce with encodeURIComponent, which storefront search pages expect.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EnsureHTTPS upgrades an http: URL to https:. It is idempotent and leaves
// empty and already secure URLs untouched.
func EnsureHTTPS(raw string) string {
	if strings.HasPrefix(raw, "http:") {
		return "https:" + strings.TrimPrefix(raw, "http:")
	}
	return raw
}

// StoreLinks builds storefront search URLs. The Amazon query includes the
// author when one is known.
func StoreLinks(title, author string) BuyingLinks {
	return BuyingLinks{
		Amazon:      amazonSearchURL + encodeComponent(title+" "+author),
		BarnesNoble: barnesNobleSearchURL + encodeComponent(title),
		Bookshop:    bookshopSearchURL + encodeComponent(title),
	}
}

func encodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}
