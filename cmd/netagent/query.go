package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/prompt"
)

var (
	queryNoCache    bool
	queryProvenance bool
)

var queryCmd = &cobra.Command{
	Use:   "query <cypher>",
	Short: "Run a raw Cypher query against IYP",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var opts []iyp.ExecuteOption
	if queryNoCache {
		opts = append(opts, iyp.WithoutCache())
	}
	if queryProvenance {
		opts = append(opts, iyp.WithProvenance())
	}

	records, err := a.iyp.Execute(cmd.Context(), strings.Join(args, " "), opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), prompt.FormatRecords(records))
	return nil
}

func init() {
	queryCmd.Flags().BoolVar(&queryNoCache, "no-cache", false, "Bypass the response cache")
	queryCmd.Flags().BoolVar(&queryProvenance, "provenance", false, "Keep provenance reference fields in the output")
}
