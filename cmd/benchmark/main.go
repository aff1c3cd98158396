package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"essayqa/config"
	"essayqa/internal/adapter/encoding"
	"essayqa/internal/adapter/fs"
	"essayqa/internal/adapter/segmenter"
	"essayqa/internal/domain"
	"essayqa/internal/usecase"
)

func main() {
	essayPath := flag.String("essay", "", "Path to essay file")
	queriesPath := flag.String("queries", "", "Path to queries file (one query per line)")
	query := flag.String("q", "", "Single query to test")
	mode := flag.String("mode", "flat", "Retrieval mode: flat, section or two-tier")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *essayPath == "" || (*query == "" && *queriesPath == "") {
		fmt.Println("Usage: go run cmd/benchmark/main.go -essay essay.txt -q \"query\"")
		fmt.Println("\nTests:")
		fmt.Println("  1. Encoder infrastructure (model connection, vector shapes)")
		fmt.Println("  2. Segmentation (sections and sentences found in the essay)")
		fmt.Println("  3. Retrieval quality (per-answer similarity ratings)")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		wd, _ := os.Getwd()
		cfg, err = config.LoadFromDir(wd)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	retrievalMode, ok := domain.ParseMode(*mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}

	essay, err := fs.ReadEssay(*essayPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading essay: %v\n", err)
		os.Exit(1)
	}

	queries, err := loadQueries(*query, *queriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading queries: %v\n", err)
		os.Exit(1)
	}

	encoder, err := encoding.FromConfig(cfg.Encoder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encoder not available: %v\n", err)
		os.Exit(1)
	}

	seg := segmenter.New(cfg.Segmenter.MaxHeadingChars, cfg.Segmenter.DefaultTitle)

	fmt.Println("ANSWER RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Model: %s (%s)\n", cfg.Encoder.Model, cfg.Encoder.Provider)
	fmt.Printf("Dimension: %d\n", encoder.Dimension())
	fmt.Printf("Mode: %s\n", retrievalMode)
	fmt.Printf("Sections: %d, body sentences: %d\n",
		seg.Segment(essay).Len(), len(seg.BodySentences(essay)))
	fmt.Println()

	answerUC := usecase.NewAnswerUseCase(seg, encoder)
	answers, err := answerUC.Answer(essay, queries, retrievalMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Retrieval error: %v\n", err)
		os.Exit(1)
	}

	if len(answers) == 0 {
		fmt.Println("No answers: the essay has nothing to retrieve from.")
		return
	}

	totalScore := 0.0
	for i, a := range answers {
		rating := "LOW"
		if a.Score > 0.7 {
			rating = "HIGH"
		} else if a.Score > 0.5 {
			rating = "GOOD"
		} else if a.Score > 0.3 {
			rating = "OK"
		}
		totalScore += a.Score

		fmt.Printf("%d. [%s %.3f] %s\n", i+1, rating, a.Score, a.Query)
		fmt.Printf("   %s\n\n", a.Answer)
	}

	avgScore := totalScore / float64(len(answers))
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  Answered queries:   %d/%d\n", len(answers), len(queries))
	fmt.Printf("  Average similarity: %.3f\n", avgScore)
	fmt.Printf("  Top-1 similarity:   %.3f\n", answers[0].Score)

	if avgScore > 0.5 {
		fmt.Println("  Status: GOOD - retrieval working well")
	} else if avgScore > 0.3 {
		fmt.Println("  Status: OK - answers are somewhat related")
	} else {
		fmt.Println("  Status: POOR - may need a better embedding model")
	}
}

func loadQueries(single, path string) ([]string, error) {
	if single != "" {
		return []string{single}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			queries = append(queries, line)
		}
	}
	return queries, scanner.Err()
}
