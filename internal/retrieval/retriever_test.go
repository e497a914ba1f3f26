package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeSearcher returns canned documents.
type fakeSearcher struct {
	docs []Document
	err  error
	gotK int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, k int) ([]Document, error) {
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	if k > len(f.docs) {
		k = len(f.docs)
	}
	return f.docs[:k], nil
}

func (f *fakeSearcher) Add(_ context.Context, docs []Document) ([]string, error) {
	f.docs = append(f.docs, docs...)
	return make([]string, len(docs)), nil
}

func TestRetrieve_SourceLabels(t *testing.T) {
	searcher := &fakeSearcher{docs: []Document{
		{Text: "Newton's first law", Metadata: map[string]string{"source": "physics.md"}},
		{Text: "Newton's second law", Metadata: map[string]string{"source": "physics.md"}},
		{Text: "Newton's third law", Metadata: map[string]string{"source": "physics.md"}},
	}}
	r := NewRetriever(searcher, 3)

	res, err := r.Retrieve(context.Background(), "laws of motion")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}

	want := "Source 1: Newton's first law\n\nSource 2: Newton's second law\n\nSource 3: Newton's third law"
	if res.RetrievedContent != want {
		t.Errorf("RetrievedContent = %q, want %q", res.RetrievedContent, want)
	}
	if len(res.Sources) != 3 {
		t.Errorf("Sources len = %d, want 3", len(res.Sources))
	}
	if searcher.gotK != 3 {
		t.Errorf("searched with k = %d, want 3", searcher.gotK)
	}
}

func TestRetrieve_ShortResultSet(t *testing.T) {
	searcher := &fakeSearcher{docs: []Document{{Text: "only one chunk"}}}
	r := NewRetriever(searcher, 3)

	res, err := r.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if res.RetrievedContent != "Source 1: only one chunk" {
		t.Errorf("RetrievedContent = %q", res.RetrievedContent)
	}
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeSearcher{}, 3)

	res, err := r.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if res.RetrievedContent != "" {
		t.Errorf("RetrievedContent = %q, want empty", res.RetrievedContent)
	}
}

func TestRetrieve_SearcherFailure(t *testing.T) {
	r := NewRetriever(&fakeSearcher{err: errors.New("index offline")}, 3)
	if _, err := r.Retrieve(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from failing searcher")
	}
}

func TestNewRetriever_DefaultTopK(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, 0)
	r.Retrieve(context.Background(), "q")
	if searcher.gotK != TopK {
		t.Errorf("k = %d, want default %d", searcher.gotK, TopK)
	}
}

// fakeEmbedder maps known phrases to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			return nil, errors.New("unknown text: " + text)
		}
		out[i] = vec
	}
	return out, nil
}

func TestMemoryIndex_RanksByCosine(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"algebra basics":  {1, 0},
		"organic farming": {0, 1},
		"linear algebra":  {0.9, 0.1},
		"solve equations": {1, 0.05},
	}}
	index := NewMemoryIndex(emb)

	handles, err := index.Add(context.Background(), []Document{
		{Text: "algebra basics"},
		{Text: "organic farming"},
		{Text: "linear algebra"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("got %d handles, want 3", len(handles))
	}
	for i, h := range handles {
		if h == "" {
			t.Errorf("handle %d is empty", i)
		}
	}

	docs, err := index.Search(context.Background(), "solve equations", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Text != "algebra basics" {
		t.Errorf("best match = %q, want algebra basics", docs[0].Text)
	}
	if docs[1].Text != "linear algebra" {
		t.Errorf("second match = %q, want linear algebra", docs[1].Text)
	}
}

func TestMemoryIndex_EmptySkipsEmbedder(t *testing.T) {
	// Embedder knows nothing; Search must not consult it when empty.
	index := NewMemoryIndex(&fakeEmbedder{})

	docs, err := index.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Search on empty index: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d docs, want 0", len(docs))
	}
}

func TestMemoryIndex_KLargerThanIndex(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"one": {1, 0},
		"q":   {1, 0},
	}}
	index := NewMemoryIndex(emb)
	index.Add(context.Background(), []Document{{Text: "one"}})

	docs, err := index.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("got %d docs, want 1", len(docs))
	}
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n\n\nThird."
	chunks := ChunkText(text, 10)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %v", len(chunks), chunks)
	}
}

func TestChunkText_MergesSmallParagraphs(t *testing.T) {
	text := "aa\n\nbb\n\ncc"
	chunks := ChunkText(text, 100)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "aa") || !strings.Contains(chunks[0], "cc") {
		t.Errorf("merged chunk missing content: %q", chunks[0])
	}
}

func TestChunkText_Empty(t *testing.T) {
	if chunks := ChunkText("  \n\n  ", 100); len(chunks) != 0 {
		t.Errorf("got %v, want no chunks", chunks)
	}
}
