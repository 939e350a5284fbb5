package providers

import (
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/JustinLoye/network-agents/internal/llm"
)

// toLangchainMessages converts messages to langchaingo MessageContent
func toLangchainMessages(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		var role llms.ChatMessageType
		switch msg.Role {
		case llm.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = llms.ChatMessageTypeAI
		case llm.RoleTool:
			role = llms.ChatMessageTypeTool
		default:
			role = llms.ChatMessageTypeHuman
		}

		var parts []llms.ContentPart
		switch msg.Role {
		case llm.RoleTool:
			parts = []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.Name,
					Content:    msg.Content,
				},
			}
		case llm.RoleAssistant:
			if msg.Content != "" {
				parts = append(parts, llms.TextPart(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, llms.ToolCall{
					ID:   tc.ID,
					Type: tc.Type,
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
		default:
			parts = []llms.ContentPart{llms.TextPart(msg.Content)}
		}

		result = append(result, llms.MessageContent{Role: role, Parts: parts})
	}

	return result
}

// fromLangchainResponse converts a langchaingo response to a CompletionResponse
func fromLangchainResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	if resp == nil || len(resp.Choices) == 0 {
		return &llm.CompletionResponse{
			ID:    uuid.New().String(),
			Model: model,
		}
	}

	choice := resp.Choices[0]

	var toolCalls []llm.ToolCall
	if len(choice.ToolCalls) > 0 {
		toolCalls = make([]llm.ToolCall, 0, len(choice.ToolCalls))
		for _, tc := range choice.ToolCalls {
			var name, arguments string
			if tc.FunctionCall != nil {
				name = tc.FunctionCall.Name
				arguments = tc.FunctionCall.Arguments
			}
			toolCalls = append(toolCalls, llm.ToolCall{
				ID:        tc.ID,
				Type:      tc.Type,
				Name:      name,
				Arguments: arguments,
			})
		}
	}

	finishReason := llm.FinishReasonStop
	if len(toolCalls) > 0 {
		finishReason = llm.FinishReasonToolCalls
	} else if choice.StopReason == "length" {
		finishReason = llm.FinishReasonLength
	}

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: model,
		Message: llm.Message{
			Role:      llm.RoleAssistant,
			Content:   choice.Content,
			ToolCalls: toolCalls,
		},
		FinishReason: finishReason,
	}
}

// buildCallOptions converts a request to langchaingo call options
func buildCallOptions(req llm.CompletionRequest) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0)

	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if len(req.StopSequences) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(req.StopSequences))
	}

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	return callOpts
}

// toLangchainTools converts ToolDefs to the langchaingo Tool format
func toLangchainTools(tools []llm.ToolDef) []llms.Tool {
	if len(tools) == 0 {
		return nil
	}

	result := make([]llms.Tool, 0, len(tools))
	for _, tool := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return result
}

// buildCallOptionsWithTools adds tools to call options
func buildCallOptionsWithTools(req llm.CompletionRequest, tools []llm.ToolDef) []llms.CallOption {
	callOpts := buildCallOptions(req)
	if len(tools) > 0 {
		callOpts = append(callOpts, llms.WithTools(toLangchainTools(tools)))
	}
	return callOpts
}
