package calculator

import (
	"context"
	"strings"
	"testing"
)

func TestCalculate(t *testing.T) {
	tool := New()
	result, err := tool.Run(context.Background(), NewInput("(10 - 8) / 8 * 100"))
	if err != nil {
		t.Fatalf("Error running calculator: %v", err)
	}
	got, ok := result.Result.(float64)
	if !ok {
		t.Fatalf("Expect float64 result, but got %T", result.Result)
	}
	if got != 25 {
		t.Errorf("Expect 25, but got %f", got)
	}
}

func TestCalculateInvalidExpression(t *testing.T) {
	tool := New()
	if _, err := tool.Run(context.Background(), NewInput("2 +* 2")); err == nil {
		t.Error("expected parse error")
	}
}

func TestCalculateCall(t *testing.T) {
	tool := New()
	out, err := tool.Call(context.Background(), map[string]any{"expression": "2 + 2"})
	if err != nil {
		t.Fatalf("Error calling calculator: %v", err)
	}
	if !strings.Contains(out, "4") {
		t.Errorf("Expect result 4 in %q", out)
	}
}
