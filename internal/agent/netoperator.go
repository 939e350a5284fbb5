package agent

import (
	"context"
	"log/slog"

	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/netops"
)

const networkOperatorPrompt = `You are an Internet expert with many tool to get real-time information about the Internet.
Use tools if related to the user question.
Use tools one at a time, and process the output of the previous tool before running a new one.
If you dont need any more tool call, reply to the user in a professional tone.
Reply to the user question only, no apologies and no follow-up questions`

// NetworkOperator runs local diagnostics: ping, traceroute, routing table,
// and the current time.
type NetworkOperator struct {
	agent *reactAgent
}

// NewNetworkOperator assembles the operator agent over the shell tools.
func NewNetworkOperator(provider llm.Provider, tools *netops.Tools, logger *slog.Logger) *NetworkOperator {
	if logger == nil {
		logger = slog.Default()
	}

	defs := []llm.ToolDef{
		llm.NewToolDef("ping",
			"Sends ICMP echo requests to a given host to test connectivity. Returns the raw output from the ping command.",
			llm.ObjectSchema(map[string]string{
				"host": "The target host to ping (e.g. \"google.com\" or \"8.8.8.8\").",
			}, "host")),
		llm.NewToolDef("traceroute",
			"Traces the route packets take to reach the specified host. Returns a list of ips and hostnames with the latency and hop number.",
			llm.ObjectSchema(map[string]string{
				"host": "The destination host or IP address.",
			}, "host")),
		llm.NewToolDef("get_routing_table",
			"Retrieves the current IP routing table of the system. Useful to get the router ip.",
			llm.ObjectSchema(map[string]string{})),
		llm.NewToolDef("get_current_time",
			"Get the current time in the YYYY-MM-DD HH:MM:SS format.",
			llm.ObjectSchema(map[string]string{})),
	}

	handlers := map[string]toolFunc{
		"ping": func(ctx context.Context, call llm.ToolCall) (string, error) {
			var args struct {
				Host string `json:"host"`
			}
			if err := call.ParseArguments(&args); err != nil {
				return "", err
			}
			return tools.Ping(ctx, args.Host, netops.DefaultPingCount)
		},
		"traceroute": func(ctx context.Context, call llm.ToolCall) (string, error) {
			var args struct {
				Host string `json:"host"`
			}
			if err := call.ParseArguments(&args); err != nil {
				return "", err
			}
			return tools.Traceroute(ctx, args.Host, netops.DefaultMaxHops)
		},
		"get_routing_table": func(ctx context.Context, call llm.ToolCall) (string, error) {
			return tools.RoutingTable(ctx)
		},
		"get_current_time": func(ctx context.Context, call llm.ToolCall) (string, error) {
			return tools.CurrentTime(), nil
		},
	}

	return &NetworkOperator{agent: &reactAgent{
		name:     "network_operator",
		provider: provider,
		prompt:   networkOperatorPrompt,
		tools:    defs,
		handlers: handlers,
		logger:   logger,
		maxSteps: DefaultMaxSteps,
	}}
}

// Run answers one diagnostics task.
func (n *NetworkOperator) Run(ctx context.Context, task string) (string, error) {
	return n.agent.run(ctx, task)
}
