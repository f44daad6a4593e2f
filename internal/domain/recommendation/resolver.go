package recommendation

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/recombooks/pkg/errors"
	"github.com/yanqian/recombooks/pkg/metrics"
)

// TitleLimit is the most titles a single recommendation may resolve.
const TitleLimit = 3

// Resolver turns a reading preference prompt into candidate book titles.
type Resolver struct {
	generator TextGenerator
	template  string
	maxTitles int
	parsers   []TitleParser
	logger    *slog.Logger
}

// NewResolver builds a resolver that applies template to every prompt. The
// first %s in template is replaced by the prompt; maxTitles is capped at
// TitleLimit.
func NewResolver(generator TextGenerator, template string, maxTitles int, logger *slog.Logger) *Resolver {
	if maxTitles <= 0 || maxTitles > TitleLimit {
		maxTitles = TitleLimit
	}
	return &Resolver{
		generator: generator,
		template:  template,
		maxTitles: maxTitles,
		parsers:   DefaultTitleParsers,
		logger:    logger.With("component", "recommendation.resolver"),
	}
}

// Resolve makes exactly one generator call and returns 1..maxTitles titles in
// model order.
func (r *Resolver) Resolve(ctx context.Context, prompt string) ([]string, error) {
	generation, err := r.generator.Generate(ctx, r.instruction(prompt))
	if err != nil {
		metrics.ResolverOutcomesTotal.WithLabelValues(apperrors.CodeLLM).Inc()
		return nil, apperrors.Wrap(apperrors.CodeLLM, "text generation failed", err)
	}
	generation.Usage.Observe(generation.Provider)
	r.logger.Debug("generated recommendation text", "provider", generation.Provider, "text", generation.Text, "total_tokens", generation.Usage.TotalTokens)

	titles, parser := ParseTitles(generation.Text, r.maxTitles, r.parsers)
	if len(titles) == 0 {
		metrics.ResolverOutcomesTotal.WithLabelValues(apperrors.CodeNoTitles).Inc()
		r.logger.Warn("could not parse book recommendations", "text", generation.Text)
		return nil, apperrors.Wrap(apperrors.CodeNoTitles, "No book recommendations found", nil)
	}
	metrics.ResolverOutcomesTotal.WithLabelValues("success").Inc()
	metrics.TitleParserHitsTotal.WithLabelValues(parser).Inc()
	r.logger.Info("titles resolved", "parser", parser, "titles", titles)
	return titles, nil
}

func (r *Resolver) instruction(prompt string) string {
	return strings.Replace(r.template, "%s", prompt, 1)
}
