package recommendation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/recombooks/pkg/metrics"
)

const (
	unknownAuthor   = "Unknown Author"
	defaultCurrency = "USD"
	bestPriceStore  = "Amazon"
)

// Enricher resolves a title to a full book record. Lookup failures are
// reported as a miss, never as an error.
type Enricher struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewEnricher builds an enricher backed by catalog.
func NewEnricher(catalog Catalog, logger *slog.Logger) *Enricher {
	return &Enricher{
		catalog: catalog,
		logger:  logger.With("component", "recommendation.enricher"),
	}
}

// Enrich returns the book for title, or false when the catalog has no match
// or the lookup failed.
func (e *Enricher) Enrich(ctx context.Context, title string) (book *Book, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.EnrichmentOutcomesTotal.WithLabelValues("error").Inc()
			e.logger.Error("catalog lookup panicked", "title", title, "panic", rec)
			book, ok = nil, false
		}
	}()

	vol, found, err := e.catalog.SearchTitle(ctx, title)
	if err != nil {
		metrics.EnrichmentOutcomesTotal.WithLabelValues("error").Inc()
		e.logger.Warn("error fetching details for book", "title", title, "error", err)
		return nil, false
	}
	if !found {
		metrics.EnrichmentOutcomesTotal.WithLabelValues("miss").Inc()
		e.logger.Info("no catalog match for book", "title", title)
		return nil, false
	}
	metrics.EnrichmentOutcomesTotal.WithLabelValues("hit").Inc()
	enriched := BuildBook(title, vol)
	return &enriched, true
}

// BuildBook maps a catalog volume onto a Book. requested is the title the
// model produced; it seeds the storefront links and stands in when the
// volume has no title.
func BuildBook(requested string, vol Volume) Book {
	firstAuthor := ""
	if len(vol.Authors) > 0 {
		firstAuthor = strings.TrimSpace(vol.Authors[0])
	}
	links := StoreLinks(requested, firstAuthor)

	currency := vol.PriceCurrency
	if currency == "" {
		currency = defaultCurrency
	}

	return Book{
		ID:           vol.ID,
		Title:        firstNonEmpty(vol.Title, requested),
		Author:       firstNonEmpty(firstAuthor, unknownAuthor),
		Cover:        EnsureHTTPS(vol.Thumbnail),
		Description:  vol.Description,
		Rating:       vol.AverageRating,
		RatingsCount: vol.RatingsCount,
		BuyingLinks:  links,
		Price: Price{
			Amount:   vol.PriceAmount,
			Currency: currency,
		},
		// Store price comparison is not implemented; Amazon is always reported.
		BestPrice: BestPrice{
			Store:    bestPriceStore,
			Amount:   0,
			Currency: defaultCurrency,
			Link:     links.Amazon,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
