package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JustinLoye/network-agents/internal/schema"
)

var (
	schemaEntities []string
	schemaMode     string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the IYP graph schema as given to the model",
	Long: `Prints the node properties, relationship properties, and triples of
the IYP schema in the exact rendering the Cypher synthesis prompt uses.
With --entities the schema is projected down to the given labels first.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(cfg.Pipeline)
	if err != nil {
		return err
	}

	if len(schemaEntities) > 0 {
		mode := schema.ModeAnd
		if schemaMode == "or" {
			mode = schema.ModeOr
		}
		s = s.Project(schemaEntities, mode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), s.Render())
	return nil
}

func init() {
	schemaCmd.Flags().StringSliceVar(&schemaEntities, "entities", nil, "Project the schema down to these labels")
	schemaCmd.Flags().StringVar(&schemaMode, "mode", "and", "Projection mode: and (both endpoints kept) or or (either endpoint kept)")
}
