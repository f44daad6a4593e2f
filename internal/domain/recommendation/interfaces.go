package recommendation

import "context"

// TextGenerator sends a single instruction to a generative-language model.
type TextGenerator interface {
	Generate(ctx context.Context, instruction string) (Generation, error)
}

// Catalog looks up the most relevant catalog volume for a title.
// found is false when the catalog has no match.
type Catalog interface {
	SearchTitle(ctx context.Context, title string) (vol Volume, found bool, err error)
}
