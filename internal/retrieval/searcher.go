package retrieval

import "context"

// Document is one stored chunk of study material.
type Document struct {
	// ID is the content handle assigned at Add time.
	ID string

	// Text is the chunk content.
	Text string

	// Metadata is opaque per-chunk information (source file, subject).
	// The core never interprets it, only carries it back to the caller.
	Metadata map[string]string
}

// Searcher is the semantic-search collaborator contract. The similarity
// metric and storage format are the collaborator's business; the core
// only relies on ranked results.
type Searcher interface {
	// Search returns up to k documents ranked by similarity to query.
	// Fewer than k results (including zero) is a normal outcome.
	Search(ctx context.Context, query string, k int) ([]Document, error)

	// Add stores documents in bulk and returns their content handles,
	// in input order.
	Add(ctx context.Context, docs []Document) ([]string, error)
}
