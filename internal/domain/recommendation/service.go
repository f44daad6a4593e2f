package recommendation

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/recombooks/pkg/errors"
)

// Service exposes book recommendation capabilities.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	Genres() []Genre
}

type service struct {
	cfg      Config
	resolver *Resolver
	enricher *Enricher
	logger   *slog.Logger
}

// NewService wires up the recommendation domain.
func NewService(cfg Config, generator TextGenerator, catalog Catalog, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		resolver: NewResolver(generator, cfg.Prompt, cfg.MaxTitles, logger),
		enricher: NewEnricher(catalog, logger),
		logger:   logger.With("component", "recommendation.service"),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Please provide a valid search prompt", nil)
	}
	if len(s.cfg.MissingCredentials) > 0 {
		s.logger.Error("upstream credentials not configured", "missing", s.cfg.MissingCredentials)
		return Response{}, apperrors.Wrap(apperrors.CodeConfig, "API credentials are not configured: "+strings.Join(s.cfg.MissingCredentials, ", "), nil)
	}

	titles, err := s.resolver.Resolve(ctx, prompt)
	if err != nil {
		return Response{}, err
	}

	books := s.enrichAll(ctx, titles)
	s.logger.Info("recommendations enriched", "titles", len(titles), "books", len(books))
	if len(books) == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeNoResults, "Could not find details for any of the recommended books", nil)
	}
	return Response{Books: books}, nil
}

// enrichAll looks up every title concurrently and keeps the hits in title
// order. Each branch owns one slot of results and always returns nil, so a
// miss never cancels its siblings.
func (s *service) enrichAll(ctx context.Context, titles []string) []Book {
	results := make([]*Book, len(titles))
	var g errgroup.Group
	for i, title := range titles {
		g.Go(func() error {
			if book, ok := s.enricher.Enrich(ctx, title); ok {
				results[i] = book
			}
			return nil
		})
	}
	_ = g.Wait()

	books := make([]Book, 0, len(results))
	for _, book := range results {
		if book != nil {
			books = append(books, *book)
		}
	}
	return books
}

func (s *service) Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

var genres = []Genre{
	{ID: "fiction", Name: "Fiction"},
	{ID: "non-fiction", Name: "Non-Fiction"},
	{ID: "mystery", Name: "Mystery"},
	{ID: "sci-fi", Name: "Science Fiction"},
	{ID: "fantasy", Name: "Fantasy"},
}
