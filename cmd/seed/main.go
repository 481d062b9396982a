// Command seed loads strategy passages into the vector store. Input is either
// JSON lines ({"text": "...", "metadata": {...}}) or a plain text document
// that is split into overlapping chunks.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"urban-assistant-be/internal/config"
	"urban-assistant-be/internal/entity"
	"urban-assistant-be/internal/repository/implementation"
	"urban-assistant-be/pkg/database"
	"urban-assistant-be/pkg/embedding"
	"urban-assistant-be/pkg/utils"

	"github.com/google/uuid"
)

type line struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func main() {
	file := flag.String("file", "", "input file, see -format")
	collection := flag.String("collection", "", "collection name, defaults to RAG_COLLECTION")
	force := flag.Bool("force", false, "append even when the collection already has chunks")
	batch := flag.Int("batch", 50, "chunks per insert")
	format := flag.String("format", "jsonl", "jsonl or text")
	chunkSize := flag.Int("chunk-size", 1500, "text format: runes per chunk")
	overlap := flag.Int("overlap", 200, "text format: runes shared by neighbouring chunks")
	flag.Parse()

	cfg := config.Load()
	if *collection == "" {
		*collection = cfg.RAG.Collection
	}
	if *file == "" {
		log.Fatal("Error: -file is required")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	repo := implementation.NewDocumentChunkRepository(db)

	embedder, err := embedding.NewProvider(cfg.RAG.EmbeddingProvider, cfg.RAG.EmbeddingURL, cfg.RAG.EmbeddingModel, cfg.RAG.EmbeddingAPIKey, cfg.LLM.Timeout)
	if err != nil {
		log.Fatal("Error: Failed to create embedding provider:", err)
	}

	ctx := context.Background()
	existing, err := repo.CountByCollection(ctx, *collection)
	if err != nil {
		log.Fatal("Error: Failed to count chunks:", err)
	}
	if existing > 0 && !*force {
		log.Printf("Collection %s already has %d chunks, use -force to append", *collection, existing)
		return
	}

	lines, err := readLines(*file, *format, *chunkSize, *overlap)
	if err != nil {
		log.Fatal(err)
	}

	var pending []*entity.DocumentChunk
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if err := repo.CreateBulk(ctx, pending); err != nil {
			log.Fatalf("Error: Failed to insert chunks: %v", err)
		}
		pending = pending[:0]
	}

	index := int(existing)
	for _, l := range lines {
		vec, err := embedder.Embed(ctx, l.Text)
		if err != nil {
			log.Fatalf("Error: Failed to embed chunk %d: %v", index, err)
		}

		pending = append(pending, &entity.DocumentChunk{
			Id:             uuid.New(),
			Collection:     *collection,
			ChunkIndex:     index,
			Document:       l.Text,
			Metadata:       l.Metadata,
			EmbeddingValue: vec,
			CreatedAt:      time.Now(),
		})
		index++

		if len(pending) >= *batch {
			flush()
		}
	}
	flush()

	log.Printf("Success: %d chunks in collection %s", index, *collection)
}

func readLines(path, format string, chunkSize, overlap int) ([]line, error) {
	if format == "text" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		source := filepath.Base(path)
		var out []line
		for i, text := range utils.SplitText(string(raw), chunkSize, overlap) {
			out = append(out, line{Text: text, Metadata: map[string]any{"source": source, "part": i}})
		}
		return out, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []line
	for n := 1; scanner.Scan(); n++ {
		var l line
		if err := json.Unmarshal(scanner.Bytes(), &l); err != nil || l.Text == "" {
			log.Printf("Warn: skipping malformed line %d", n)
			continue
		}
		out = append(out, l)
	}
	return out, scanner.Err()
}
