// Package agent holds the conversational layer: two specialist agents
// running a tool-calling loop, and a supervisor routing user requests
// between them.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/types"
)

// DefaultMaxSteps bounds the completion/tool round trips of a single agent
// run. A model stuck calling tools forever fails instead of spinning.
const DefaultMaxSteps = 10

// toolFunc executes one tool call and returns its payload for the model.
type toolFunc func(ctx context.Context, call llm.ToolCall) (string, error)

// reactAgent is a tool-calling loop over a single system prompt. Tools run
// one at a time; the loop ends when the model answers with plain text.
type reactAgent struct {
	name     string
	provider llm.Provider
	prompt   string
	tools    []llm.ToolDef
	handlers map[string]toolFunc
	logger   *slog.Logger
	maxSteps int
}

// run drives the loop for one task and returns the model's final text.
func (a *reactAgent) run(ctx context.Context, task string) (string, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(a.prompt),
		llm.NewUserMessage(task),
	}

	for step := 0; step < a.maxSteps; step++ {
		resp, err := a.provider.CompleteWithTools(ctx, llm.CompletionRequest{Messages: messages}, a.tools)
		if err != nil {
			return "", types.WrapError(types.AGENT_TOOL_FAILED,
				fmt.Sprintf("agent %s completion failed", a.name), err)
		}

		if !resp.HasToolCalls() {
			answer := strings.TrimSpace(resp.Text())
			if answer == "" {
				return "", types.NewError(types.AGENT_TOOL_FAILED,
					fmt.Sprintf("agent %s returned empty answer", a.name))
			}
			return answer, nil
		}

		messages = append(messages, resp.Message)
		for _, call := range resp.Message.ToolCalls {
			result := a.dispatch(ctx, call)
			messages = append(messages, llm.NewToolResultMessage(call.ID, result))
		}
	}

	return "", types.NewError(types.AGENT_STEP_EXCEEDED,
		fmt.Sprintf("agent %s exceeded %d steps", a.name, a.maxSteps))
}

// dispatch runs one tool call. Tool failures are reported back to the model
// as payloads so it can recover or rephrase instead of aborting the run.
func (a *reactAgent) dispatch(ctx context.Context, call llm.ToolCall) string {
	handler, ok := a.handlers[call.Name]
	if !ok {
		a.logger.Warn("unknown tool requested", "agent", a.name, "tool", call.Name)
		return fmt.Sprintf("error: unknown tool %q", call.Name)
	}

	result, err := handler(ctx, call)
	if err != nil {
		a.logger.Warn("tool failed", "agent", a.name, "tool", call.Name, "error", err)
		return fmt.Sprintf("error: %v", err)
	}
	return result
}
