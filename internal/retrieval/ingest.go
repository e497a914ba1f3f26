package retrieval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultChunkChars caps the size of one indexed chunk. Paragraphs are
// merged up to this limit so tiny fragments don't dominate the index.
const DefaultChunkChars = 1200

// ChunkText splits text into paragraph-based chunks. Paragraphs are
// separated by blank lines; consecutive paragraphs are merged while they
// fit within maxChars. maxChars <= 0 uses DefaultChunkChars.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkChars
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para)+2 > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// LoadMaterials reads study-material files (or directories of them) and
// returns one Document per chunk, tagged with its source file. Only .txt
// and .md files are picked up from directories; explicitly named files
// are always read.
func LoadMaterials(paths []string, maxChars int) ([]Document, error) {
	var docs []Document

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			fileDocs, err := loadFile(path, maxChars)
			if err != nil {
				return nil, err
			}
			docs = append(docs, fileDocs...)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".txt", ".md":
				fileDocs, err := loadFile(p, maxChars)
				if err != nil {
					return err
				}
				docs = append(docs, fileDocs...)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	return docs, nil
}

func loadFile(path string, maxChars int) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	chunks := ChunkText(string(data), maxChars)
	docs := make([]Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = Document{
			Text: chunk,
			Metadata: map[string]string{
				"source": filepath.Base(path),
				"chunk":  fmt.Sprintf("%d", i+1),
			},
		}
	}
	return docs, nil
}
