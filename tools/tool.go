package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Param describes a single tool parameter surfaced to the language model.
type Param struct {
	// Type is the JSON schema type name ("string", "number", "integer", "boolean", "array")
	Type string
	// Description tells the model what the parameter means
	Description string
	// Enum restricts the parameter to a fixed set of values
	Enum []string
	// Items is the element type when Type is "array"
	Items *Param
}

// Spec is the callable surface of a tool as presented to the model.
type Spec struct {
	Name        string
	Description string
	Params      map[string]Param
	Required    []string
}

// JSONSchema renders the spec parameters as a JSON schema object suitable
// for OpenAI-style function definitions.
func (s Spec) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Params))
	for name, p := range s.Params {
		properties[name] = p.schema()
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(s.Required) > 0 {
		schema["required"] = s.Required
	}
	return schema
}

func (p Param) schema() map[string]any {
	ret := map[string]any{"type": p.Type}
	if p.Description != "" {
		ret["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		ret["enum"] = p.Enum
	}
	if p.Items != nil {
		ret["items"] = p.Items.schema()
	}
	return ret
}

// Caller is a tool invokable with model-supplied arguments. Call returns the
// tool result serialized as text for the model to read.
type Caller interface {
	Title() string
	Description() string
	Spec() Spec
	Call(ctx context.Context, args map[string]any) (string, error)
}

var validate = validator.New()

// DecodeArgs round-trips model-supplied arguments into a typed input struct
// and validates it. Arguments come from a language model, so the validate
// tags are enforced rather than trusted.
func DecodeArgs(args map[string]any, input any) error {
	bs, err := json.Marshal(args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, input); err != nil {
		return fmt.Errorf("decode tool arguments: %w", err)
	}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}
