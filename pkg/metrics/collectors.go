package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recombooks_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recombooks_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// ResolverOutcomesTotal counts title resolution results by outcome
	// (success, no_titles, llm_error).
	ResolverOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recombooks_resolver_outcomes_total",
		Help: "Title resolution attempts by outcome",
	}, []string{"outcome"})

	// TitleParserHitsTotal counts which parser in the fallback chain produced titles.
	TitleParserHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recombooks_title_parser_hits_total",
		Help: "Generated texts decoded by each title parser",
	}, []string{"parser"})

	// EnrichmentOutcomesTotal counts catalog lookups by outcome (hit, miss, error).
	EnrichmentOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recombooks_enrichment_outcomes_total",
		Help: "Catalog lookups by outcome",
	}, []string{"outcome"})

	LLMTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recombooks_llm_tokens_total",
		Help: "Tokens reported by the generative model",
	}, []string{"provider", "kind"})
)
