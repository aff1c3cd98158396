package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"essayqa/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "essayqa",
	Short: "Answer natural-language queries against an essay by embedding similarity",
	Long: `essayqa locates the span of an essay most semantically similar to each
query, using a two-tier retrieval pipeline: structural segmentation into a
subtitle-to-sentences hierarchy, then nearest-neighbor ranking over
externally computed embedding vectors.

Example usage:
  essayqa serve                                   # Run the HTTP API
  essayqa answer essay.txt -q "What is courage?"  # Answer against a file`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./essayqa.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}
