package recommendation

import "github.com/yanqian/recombooks/pkg/metrics"

// Request captures the payload accepted by the recommendation service.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response is serialized back to API consumers.
type Response struct {
	Books []Book `json:"books"`
}

// Book is the enriched record rendered by the front-end card grid.
type Book struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Author       string      `json:"author"`
	Cover        string      `json:"cover"`
	Description  string      `json:"description"`
	Rating       float64     `json:"rating"`
	RatingsCount int         `json:"ratingsCount"`
	BuyingLinks  BuyingLinks `json:"buyingLinks"`
	Price        Price       `json:"price"`
	BestPrice    BestPrice   `json:"bestPrice"`
}

// BuyingLinks are storefront search URLs derived from the title.
type BuyingLinks struct {
	Amazon      string `json:"amazon"`
	BarnesNoble string `json:"barnesNoble"`
	Bookshop    string `json:"bookshop"`
}

// Price is the catalog retail price.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// BestPrice names the cheapest known store offer.
type BestPrice struct {
	Store    string  `json:"store"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Link     string  `json:"link"`
}

// Volume is the top catalog hit for a title, normalized by the catalog adapter.
type Volume struct {
	ID            string
	Title         string
	Authors       []string
	Description   string
	AverageRating float64
	RatingsCount  int
	Thumbnail     string
	PriceAmount   float64
	PriceCurrency string
}

// Generation is the raw text returned by a generative model.
type Generation struct {
	Text     string
	Provider string
	Usage    metrics.TokenUsage
}

// Genre is a browsable reading category.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Config wires runtime dependencies for the recommendation domain.
type Config struct {
	// Prompt is the instruction template; %s receives the user preferences.
	Prompt    string
	MaxTitles int
	// MissingCredentials lists unconfigured upstream keys. Any entry makes
	// every request fail with a configuration error.
	MissingCredentials []string
}
