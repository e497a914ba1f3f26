package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryIndex is an in-process Searcher: documents are embedded at Add
// time and ranked by cosine similarity at Search time. It stands in for
// an external vector store in local and test setups; nothing in the core
// depends on it being this implementation.
type MemoryIndex struct {
	embedder Embedder

	mu   sync.RWMutex
	docs []indexedDoc
}

type indexedDoc struct {
	doc Document
	vec []float32
}

// NewMemoryIndex creates an empty index over the given embedder.
func NewMemoryIndex(embedder Embedder) *MemoryIndex {
	return &MemoryIndex{embedder: embedder}
}

// Add embeds and stores the documents, assigning each a fresh handle.
func (m *MemoryIndex) Add(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vecs, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	handles := make([]string, len(docs))
	for i, d := range docs {
		d.ID = uuid.NewString()
		handles[i] = d.ID
		m.docs = append(m.docs, indexedDoc{doc: d, vec: vecs[i]})
	}
	return handles, nil
}

// Search embeds the query and returns the k nearest documents by cosine
// similarity, best first. An empty index returns no documents without
// touching the embedder.
func (m *MemoryIndex) Search(ctx context.Context, query string, k int) ([]Document, error) {
	if m.Len() == 0 {
		return nil, nil
	}

	vecs, err := m.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := vecs[0]

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		doc   Document
		score float64
	}
	candidates := make([]scored, 0, len(m.docs))
	for _, d := range m.docs {
		candidates = append(candidates, scored{doc: d.doc, score: cosine(qv, d.vec)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]Document, k)
	for i := range out {
		out[i] = candidates[i].doc
	}
	return out, nil
}

// Len returns the number of stored documents.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
