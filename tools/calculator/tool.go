package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/samrat0033/financial-agent/tools"
)

// Input for performing calculations. Supports basic arithmetic operations
// like addition, subtraction, multiplication, and division, as well as more
// complex operations like exponentiation.
type Input struct {
	// Expression Mathematical expression to evaluate. For example, '2 + 2'.
	Expression string `json:"expression" jsonschema:"title=expression,description=Mathematical expression to evaluate. For example, '2 + 2'." validate:"required"`
}

func NewInput(exp string) *Input {
	return &Input{Expression: exp}
}

// Output of the calculator tool.
type Output struct {
	// Result Result of the calculation
	Result any `json:"result,omitempty"`
}

func (o Output) String() string {
	bs, _ := json.Marshal(o)
	return string(bs)
}

// Tool evaluates arithmetic expressions. The finance agent uses it for
// growth rates and ratio arithmetic over fetched market data.
type Tool struct {
	tools.Config
}

var _ tools.Caller = (*Tool)(nil)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CalculatorTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Evaluate a mathematical expression, e.g. '(242.84 - 238.59) / 238.59 * 100'.")
	}
	return ret
}

// Spec implements tools.Caller.
func (t *Tool) Spec() tools.Spec {
	return tools.Spec{
		Name:        "calculator",
		Description: t.Description(),
		Params: map[string]tools.Param{
			"expression": {
				Type:        "string",
				Description: "Mathematical expression to evaluate. For example, '2 + 2'.",
			},
		},
		Required: []string{"expression"},
	}
}

// Call implements tools.Caller.
func (t *Tool) Call(ctx context.Context, args map[string]any) (string, error) {
	input := new(Input)
	if err := tools.DecodeArgs(args, input); err != nil {
		return "", err
	}
	output, err := t.Run(ctx, input)
	if err != nil {
		return "", err
	}
	return output.String(), nil
}

// Run evaluates the expression synchronously.
func (t *Tool) Run(_ context.Context, input *Input) (*Output, error) {
	expr, err := govaluate.NewEvaluableExpression(input.Expression)
	if err != nil {
		return nil, fmt.Errorf("parse expression: %w", err)
	}
	result, err := expr.Evaluate(nil)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression: %w", err)
	}
	return &Output{Result: result}, nil
}
