//go:build ignore

package main

import (
	"fmt"
	"log"

	"support-routing-be/internal/config"
	"support-routing-be/pkg/embedding"
)

func main() {
	// 1. Load Config
	cfg := config.Load()
	fmt.Printf("Loaded Config > Ollama URL: %s\n", cfg.Knowledge.OllamaBaseURL)
	fmt.Printf("Loaded Config > Embedding Model: %s\n", cfg.Knowledge.EmbeddingModel)

	// 2. Initialize Provider
	provider := embedding.NewOllamaProvider(cfg.Knowledge.OllamaBaseURL, cfg.Knowledge.EmbeddingModel)

	// 3. Test Text
	text := "Meu cartão de crédito foi bloqueado e não consigo desbloquear pelo aplicativo."
	fmt.Printf("\nGenerating embedding for: %q\n", text)

	// 4. Generate
	resp, err := provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		log.Fatalf("Error generating embedding: %v", err)
	}

	// 5. Inspect Result
	dims := len(resp.Embedding.Values)
	fmt.Printf("Success! Generated Embedding Dimensions: %d\n", dims)

	if dims > 5 {
		fmt.Printf("First 5 values: %v...\n", resp.Embedding.Values[:5])
	}

	// 6. Validation (knowledge_chunks.embedding_value is vector(768))
	if dims != 768 {
		log.Fatalf("Dimension mismatch: got %d, schema expects 768", dims)
	}
	fmt.Println("Dimensions match the knowledge_chunks schema.")
}
