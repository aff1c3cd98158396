package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"essayqa/internal/adapter/encoding"
	"essayqa/internal/adapter/fs"
	"essayqa/internal/adapter/segmenter"
	"essayqa/internal/domain"
	"essayqa/internal/usecase"
)

var (
	answerQueries  []string
	answerMode     string
	answerJSON     bool
	answerIncludes []string
	answerExcludes []string
)

var answerCmd = &cobra.Command{
	Use:   "answer [path]",
	Short: "Answer queries against local essay files",
	Long: `Answer one or more queries against an essay file, or against every
essay file found under a directory. Each file is treated as its own
document; there is no cross-file retrieval.

Examples:
  essayqa answer essay.txt -q "What is courage?"
  essayqa answer essays/ -q "What is bravery?" --mode two-tier
  essayqa answer essays/ -q "..." --include "**/*.txt" --exclude "**/drafts/**"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnswer,
}

func init() {
	rootCmd.AddCommand(answerCmd)
	answerCmd.Flags().StringArrayVarP(&answerQueries, "query", "q", nil, "query to answer (repeatable, required)")
	answerCmd.Flags().StringVar(&answerMode, "mode", "", "retrieval mode: flat, section or two-tier (default from config)")
	answerCmd.Flags().BoolVar(&answerJSON, "json", false, "output as JSON")
	answerCmd.Flags().StringArrayVar(&answerIncludes, "include", nil, "glob patterns for essay files (default **/*.txt, **/*.md)")
	answerCmd.Flags().StringArrayVar(&answerExcludes, "exclude", nil, "glob patterns to skip")
	answerCmd.MarkFlagRequired("query")
}

// fileAnswers holds the answers for one essay file.
type fileAnswers struct {
	Path    string                `json:"path"`
	Answers []domain.RankedAnswer `json:"answers"`
}

func runAnswer(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	modeStr := answerMode
	if modeStr == "" {
		modeStr = cfg.Retrieval.Mode
	}
	mode, ok := domain.ParseMode(modeStr)
	if !ok {
		return fmt.Errorf("unknown mode: %s", modeStr)
	}

	files, err := collectEssayFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no essay files found under %s", args[0])
	}

	encoder, err := encoding.FromConfig(cfg.Encoder)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	seg := segmenter.New(cfg.Segmenter.MaxHeadingChars, cfg.Segmenter.DefaultTitle)
	answerUC := usecase.NewAnswerUseCase(seg, encoder)

	var bar *progressbar.ProgressBar
	if len(files) > 1 && !answerJSON {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Answering[reset]"),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	results := make([]fileAnswers, 0, len(files))
	for i, path := range files {
		essay, err := fs.ReadEssay(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		answers, err := answerUC.Answer(essay, answerQueries, mode)
		if err != nil {
			return fmt.Errorf("retrieval failed for %s: %w", path, err)
		}

		results = append(results, fileAnswers{Path: path, Answers: answers})
		if bar != nil {
			bar.Set(i + 1)
		}
	}

	if answerJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for _, r := range results {
		if len(results) > 1 {
			fmt.Printf("=== %s ===\n", r.Path)
		}
		if len(r.Answers) == 0 {
			fmt.Println("No answers (nothing to retrieve from).")
			continue
		}
		for _, a := range r.Answers {
			fmt.Printf("Q: %s\nA: %s (score: %.3f)\n\n", a.Query, a.Answer, a.Score)
		}
	}

	return nil
}

// collectEssayFiles resolves the positional argument into a list of files:
// a file path stands alone, a directory is walked with the glob patterns.
func collectEssayFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	walker := fs.NewWalker(answerIncludes, answerExcludes)
	return walker.Walk(path)
}
