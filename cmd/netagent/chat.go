package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive session with the supervisor agent",
	Long: `Starts a read-eval-print loop against the supervisor, which routes
each message between the data-retriever and network-operator agents.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd.Println("netagent chat. Type your question, or 'exit' to quit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		result, err := a.supervisor.Run(cmd.Context(), line)
		if err != nil {
			cmd.PrintErrf("error: %v\n", err)
			continue
		}

		for _, h := range result.Handoffs {
			logger.Debug("handoff", "agent", h.Agent, "task", h.Task)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
	}
}
