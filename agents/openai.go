package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/samrat0033/financial-agent/tools"
)

// GroqBaseURL is the OpenAI-compatible endpoint of the Groq API.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// OpenAIProvider drives OpenAI-compatible chat APIs: OpenAI itself, or Groq
// through its compatibility endpoint.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg)}
}

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req *Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Tools:       openaiTools(req.Tools),
	}
	if req.SystemPrompt != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Query,
	})

	for round := 0; ; round++ {
		resp, err := p.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("empty model response")
		}
		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if round >= req.toolRounds() {
			return "", fmt.Errorf("model still requesting tools after %d rounds", req.toolRounds())
		}
		chatReq.Messages = append(chatReq.Messages, msg)
		for _, call := range msg.ToolCalls {
			args := map[string]any{}
			if call.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
					return "", fmt.Errorf("decode tool call arguments: %w", err)
				}
			}
			result, err := req.Invoke(ctx, ToolCall{Name: call.Function.Name, Args: args})
			if err != nil {
				result = fmt.Sprintf("tool error: %v", err)
			}
			chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
}

func openaiTools(specs []tools.Spec) []openai.Tool {
	if len(specs) == 0 {
		return nil
	}
	ret := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		ret = append(ret, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.JSONSchema(),
			},
		})
	}
	return ret
}
