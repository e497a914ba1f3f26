package cmd

import (
	"fmt"

	"github.com/abhisek/tutoriz/internal/retrieval"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Preview how study material files will be chunked for retrieval",
	Long: "Splits the given files (or directories of .txt/.md files) into the " +
		"paragraph chunks the retriever indexes at startup, and reports the result. " +
		"Use --materials (or retrieval.materials in the config file) to index them " +
		"in a tutoring session.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxChars, _ := cmd.Flags().GetInt("chunk-chars")

		docs, err := retrieval.LoadMaterials(args, maxChars)
		if err != nil {
			return err
		}

		perSource := make(map[string]int)
		var order []string
		for _, d := range docs {
			src := d.Metadata["source"]
			if perSource[src] == 0 {
				order = append(order, src)
			}
			perSource[src]++
		}

		for _, src := range order {
			fmt.Printf("%-32s  %d chunks\n", src, perSource[src])
		}
		fmt.Printf("\n%d chunks total from %d files\n", len(docs), len(order))
		return nil
	},
}

func init() {
	ingestCmd.Flags().Int("chunk-chars", retrieval.DefaultChunkChars, "Maximum characters per chunk")
}
