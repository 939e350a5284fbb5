package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/netops"
	"github.com/JustinLoye/network-agents/internal/pipeline"
)

const dataRetrieverPrompt = `You are an expert in retrieving Internet data.
You have two tools to answer user message: ` + "`whois` and `iyp_ask`" + `.
Carefully evaluate how ` + "`whois`" + ` tool is able to answer the user request.
If not, always assume ` + "`iyp_ask`" + ` has the answer.
Forward the user message to ` + "`iyp_ask`" + ` without alteration`

// DataRetriever answers information-retrieval tasks with the IYP pipeline
// and the bgp.tools whois service.
type DataRetriever struct {
	agent *reactAgent
}

// NewDataRetriever assembles the retriever agent over its two tools.
func NewDataRetriever(provider llm.Provider, pipe *pipeline.Pipeline, tools *netops.Tools, logger *slog.Logger) *DataRetriever {
	if logger == nil {
		logger = slog.Default()
	}

	defs := []llm.ToolDef{
		llm.NewToolDef("iyp_ask",
			"Queries the Internet Yellow Pages (IYP) knowledge graph using a natural language prompt. Useful to learn about: AS dependencies, ranks, IXPs, and many other things.",
			llm.ObjectSchema(map[string]string{
				"prompt": "A natural language query describing the information to retrieve from the IYP database.",
			}, "prompt")),
		llm.NewToolDef("whois",
			"Query WHOIS information from bgp.tools for an ASN, IP address, or MAC address. Returns the AS number, BGP prefix, country code, registry, allocation date, and AS name.",
			llm.ObjectSchema(map[string]string{
				"resource": "The identifier to look up: an ASN (e.g. \"AS2497\" or \"2497\"), an IPv4/IPv6 address, or a MAC address.",
			}, "resource")),
	}

	handlers := map[string]toolFunc{
		"iyp_ask": func(ctx context.Context, call llm.ToolCall) (string, error) {
			var args struct {
				Prompt string `json:"prompt"`
			}
			if err := call.ParseArguments(&args); err != nil {
				return "", err
			}
			sess, err := pipe.Run(ctx, args.Prompt)
			if err != nil {
				return "", err
			}
			return sess.Answer, nil
		},
		"whois": func(ctx context.Context, call llm.ToolCall) (string, error) {
			var args struct {
				Resource string `json:"resource"`
			}
			if err := call.ParseArguments(&args); err != nil {
				return "", err
			}
			result, err := tools.Whois(ctx, args.Resource)
			if err != nil {
				return "", err
			}
			return netops.FrameTool(fmt.Sprintf("%v", result)), nil
		},
	}

	return &DataRetriever{agent: &reactAgent{
		name:     "data_retriever",
		provider: provider,
		prompt:   dataRetrieverPrompt,
		tools:    defs,
		handlers: handlers,
		logger:   logger,
		maxSteps: DefaultMaxSteps,
	}}
}

// Run answers one retrieval task.
func (d *DataRetriever) Run(ctx context.Context, task string) (string, error) {
	return d.agent.run(ctx, task)
}
