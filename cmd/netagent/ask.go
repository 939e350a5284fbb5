package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JustinLoye/network-agents/internal/pipeline"
	"github.com/JustinLoye/network-agents/internal/prompt"
	"github.com/JustinLoye/network-agents/internal/types"
)

var askRaw bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the IYP retrieval pipeline a single question",
	Long: `Runs one question through entity extraction, Cypher synthesis, and
query execution against IYP, then presents the answer. With --raw the
normalized result rows are printed instead of a model-written answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	question := strings.Join(args, " ")

	var opts []pipeline.RunOption
	if askRaw {
		opts = append(opts, pipeline.Raw())
	}

	sess, err := a.pipeline.Run(cmd.Context(), question, opts...)
	if err != nil {
		// Show the artifacts that led to the failure when we have them
		if query := types.QueryTextOf(err); query != "" {
			cmd.PrintErrf("Failed query: %s\n", query)
		}
		return err
	}

	cmd.Printf("Entities: %s\n", strings.Join(sess.Entities, ", "))
	cmd.Printf("Query: %s\n\n", sess.CypherQuery)

	if askRaw {
		fmt.Fprintln(cmd.OutOrStdout(), prompt.FormatRecords(sess.Records))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), sess.Answer)
	return nil
}

func init() {
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "Print result rows without the presentation stage")
}
