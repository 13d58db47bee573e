package agents

import (
	"encoding/json"
	"fmt"
	"io"
)

// Transcript styling mirrors console agent output: the web layer strips
// these sequences before rendering, terminals show them as-is.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiCyan  = "\x1b[36m"
)

func writeHeading(w io.Writer, name, query string) {
	fmt.Fprintf(w, "%s%s▌ %s%s\n", ansiBold, ansiCyan, name, ansiReset)
	fmt.Fprintf(w, "%sQuery: %s%s\n\n", ansiDim, query, ansiReset)
}

func writeToolTrace(w io.Writer, agentName string, call ToolCall) {
	args, _ := json.Marshal(call.Args)
	fmt.Fprintf(w, "%s• %s → %s(%s)%s\n", ansiDim, agentName, call.Name, args, ansiReset)
}

func writeDelegation(w io.Writer, from, to, query string) {
	fmt.Fprintf(w, "%s• %s → %s: %s%s\n", ansiDim, from, to, query, ansiReset)
}

func writeAnswer(w io.Writer, answer string) {
	fmt.Fprintf(w, "\n%s\n", answer)
}
