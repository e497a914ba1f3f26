package retrieval

import (
	"context"
	"fmt"
	"strings"
)

// TopK is the fixed number of chunks fetched per query.
const TopK = 3

// Result is the retrieval output for one query. Ephemeral: produced per
// query, never persisted.
type Result struct {
	// RetrievedContent is the matched chunks concatenated in rank order,
	// each under a "Source N:" label.
	RetrievedContent string

	// Sources carries the per-chunk metadata in the same rank order.
	Sources []map[string]string
}

// Retriever fetches supporting study material for a query.
type Retriever struct {
	searcher Searcher
	topK     int
}

// NewRetriever creates a Retriever over the given search collaborator.
// topK <= 0 falls back to the default of 3.
func NewRetriever(searcher Searcher, topK int) *Retriever {
	if topK <= 0 {
		topK = TopK
	}
	return &Retriever{searcher: searcher, topK: topK}
}

// Retrieve returns the most relevant stored chunks for the query.
// Short result sets are fine: the Result is built from whatever comes
// back, including nothing. Only collaborator failures return an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	docs, err := r.searcher.Search(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search study material: %w", err)
	}

	parts := make([]string, len(docs))
	sources := make([]map[string]string, len(docs))
	for i, d := range docs {
		parts[i] = fmt.Sprintf("Source %d: %s", i+1, d.Text)
		sources[i] = d.Metadata
	}

	return &Result{
		RetrievedContent: strings.Join(parts, "\n\n"),
		Sources:          sources,
	}, nil
}
