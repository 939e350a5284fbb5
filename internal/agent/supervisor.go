package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/types"
)

const supervisorPrompt = `You are a supervisor managing two agents in order to reply to the last user message:
- 'network_operator' agent, a network operator agent. Assign concrete actions like ping, traceroute, ip route show to this agent.
- 'data_retriever', an Internet data retriever agent. Assign information-retrieval tasks to this agent.


Assign work to one agent at a time, do not call agents in parallel.
Carefully plan the steps to resolve the user message and clearly separate each step so each agent is focused on a simple task.
Do not do any work yourself except basic common sense tasks.
After workflow execution always reply to the user original question (the user don't see the agents response so you need to forward it).
Assume the user has a background on Internet data and knows what he wants.


Example workflow (for reference only):

Example user message: "Get my ISP via traceroute to google.com, then find its AS number and check if the AS is present in a Japanese IXP."

Example supervisor workflow (this is a text description, you are meant to execute these steps):
1. transfer_to_network_operator(task_description="Run traceroute to google.com")
2. [extract the first-hop IP]
3. transfer_to_data_retriever(task_description="Lookup ASN for IP 12.34.56.78")
4. [extract the ASN]
5. transfer_to_data_retriever(task_description="Check whether ASN 2497 is present in any Japanese IXP")
6. [aggregate results and return summary to user]`

// Handoff tool names the supervisor model calls to delegate work.
const (
	toolTransferToDataRetriever   = "transfer_to_data_retriever"
	toolTransferToNetworkOperator = "transfer_to_network_operator"
)

// Specialist is an agent the supervisor can delegate a task to.
type Specialist interface {
	Run(ctx context.Context, task string) (string, error)
}

// Handoff records one delegation for the conversation trace.
type Handoff struct {
	Agent string
	Task  string
	Reply string
}

// Result is the outcome of a supervised run.
type Result struct {
	Answer   string
	Handoffs []Handoff
}

// Supervisor routes a user request between the data retriever and the
// network operator, one delegation at a time, then composes the final
// answer itself.
type Supervisor struct {
	provider  llm.Provider
	retriever Specialist
	operator  Specialist
	logger    *slog.Logger
	maxSteps  int
}

// SupervisorOption adjusts supervisor construction.
type SupervisorOption func(*Supervisor)

// WithMaxSteps overrides the delegation round-trip bound.
func WithMaxSteps(maxSteps int) SupervisorOption {
	return func(s *Supervisor) { s.maxSteps = maxSteps }
}

// NewSupervisor assembles the router over its two specialists.
func NewSupervisor(provider llm.Provider, retriever, operator Specialist, logger *slog.Logger, opts ...SupervisorOption) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Supervisor{
		provider:  provider,
		retriever: retriever,
		operator:  operator,
		logger:    logger,
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func supervisorTools() []llm.ToolDef {
	taskSchema := llm.ObjectSchema(map[string]string{
		"task_description": "Description of what the next agent should do, including all of the relevant context.",
	}, "task_description")

	return []llm.ToolDef{
		llm.NewToolDef(toolTransferToDataRetriever,
			"Assign task to a data_retriever agent. Useful to get data about the Internet entities like AS, IXP, prefix, ip.",
			taskSchema),
		llm.NewToolDef(toolTransferToNetworkOperator,
			"Assign task to a network_operator agent. Useful to do: ping, traceroute, ip tables, get the current time.",
			taskSchema),
	}
}

// Run resolves one user message, delegating to specialists as the model
// decides, and returns the final answer with the delegation trace.
func (s *Supervisor) Run(ctx context.Context, userMessage string) (*Result, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(supervisorPrompt),
		llm.NewUserMessage(userMessage),
	}
	tools := supervisorTools()

	result := &Result{}
	for step := 0; step < s.maxSteps; step++ {
		resp, err := s.provider.CompleteWithTools(ctx, llm.CompletionRequest{Messages: messages}, tools)
		if err != nil {
			return nil, types.WrapError(types.AGENT_TOOL_FAILED, "supervisor completion failed", err)
		}

		if !resp.HasToolCalls() {
			answer := strings.TrimSpace(resp.Text())
			if answer == "" {
				return nil, types.NewError(types.AGENT_TOOL_FAILED, "supervisor returned empty answer")
			}
			result.Answer = answer
			return result, nil
		}

		messages = append(messages, resp.Message)
		for _, call := range resp.Message.ToolCalls {
			reply := s.delegate(ctx, call, result)
			messages = append(messages, llm.NewToolResultMessage(call.ID, reply))
		}
	}

	return nil, types.NewError(types.AGENT_STEP_EXCEEDED,
		fmt.Sprintf("supervisor exceeded %d steps", s.maxSteps))
}

// delegate routes one handoff tool call to its specialist and reports the
// outcome back as the tool payload.
func (s *Supervisor) delegate(ctx context.Context, call llm.ToolCall, result *Result) string {
	var specialist Specialist
	var agentName string
	switch call.Name {
	case toolTransferToDataRetriever:
		specialist, agentName = s.retriever, "data_retriever"
	case toolTransferToNetworkOperator:
		specialist, agentName = s.operator, "network_operator"
	default:
		s.logger.Warn("unknown handoff tool", "tool", call.Name)
		return fmt.Sprintf("error: unknown tool %q", call.Name)
	}

	var args struct {
		TaskDescription string `json:"task_description"`
	}
	if err := call.ParseArguments(&args); err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	s.logger.Info("handoff", "agent", agentName, "task", args.TaskDescription)
	reply, err := specialist.Run(ctx, args.TaskDescription)
	if err != nil {
		s.logger.Warn("specialist failed", "agent", agentName, "error", err)
		return fmt.Sprintf("error: %s failed: %v", agentName, err)
	}

	result.Handoffs = append(result.Handoffs, Handoff{
		Agent: agentName,
		Task:  args.TaskDescription,
		Reply: reply,
	})
	return fmt.Sprintf("Successfully transferred to %s with payload [%s]\n%s", agentName, args.TaskDescription, reply)
}
