package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/samrat0033/financial-agent/tools"
)

// GeminiProvider drives Google Gemini models through the official SDK.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req *Request) (string, error) {
	model := p.client.GenerativeModel(req.Model)
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.Tools = geminiTools(req.Tools)

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(req.Query))
	if err != nil {
		return "", err
	}
	for round := 0; round < req.toolRounds(); round++ {
		calls := geminiFunctionCalls(resp)
		if len(calls) == 0 {
			break
		}
		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			response := map[string]any{}
			if result, err := req.Invoke(ctx, ToolCall{Name: call.Name, Args: call.Args}); err != nil {
				response["error"] = err.Error()
			} else {
				response["content"] = result
			}
			parts = append(parts, genai.FunctionResponse{Name: call.Name, Response: response})
		}
		if resp, err = session.SendMessage(ctx, parts...); err != nil {
			return "", err
		}
	}
	return geminiText(resp)
}

func geminiTools(specs []tools.Spec) []*genai.Tool {
	if len(specs) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  geminiSchema(spec),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiSchema(spec tools.Spec) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(spec.Params))
	for name, param := range spec.Params {
		properties[name] = geminiParam(param)
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   spec.Required,
	}
}

func geminiParam(p tools.Param) *genai.Schema {
	ret := &genai.Schema{
		Description: p.Description,
		Enum:        p.Enum,
	}
	switch p.Type {
	case "number":
		ret.Type = genai.TypeNumber
	case "integer":
		ret.Type = genai.TypeInteger
	case "boolean":
		ret.Type = genai.TypeBoolean
	case "array":
		ret.Type = genai.TypeArray
		if p.Items != nil {
			ret.Items = geminiParam(*p.Items)
		}
	default:
		ret.Type = genai.TypeString
	}
	return ret
}

func geminiFunctionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if call, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, call)
			}
		}
	}
	return calls
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("empty model response")
	}
	return sb.String(), nil
}
