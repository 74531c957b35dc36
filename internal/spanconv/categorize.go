package spanconv

import (
	"strings"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

// Category labels assigned by the categorization pass.
const (
	CategoryLLM      = "llm"
	CategoryTool     = "tool"
	CategoryAgent    = "agent"
	CategoryDB       = "db"
	CategoryHTTP     = "http"
	CategoryRPC      = "rpc"
	CategoryInternal = "internal"
)

// CategoryFor assigns a coarse category label from the span's name
// and attribute conventions. The operation-name convention wins over
// prefix sniffing; unrecognized spans land in "internal".
func CategoryFor(name string, attrs map[string]trace.AttrValue) string {
	if op, ok := attrs["gen_ai.operation.name"]; ok && op.Kind == trace.AttrString {
		switch op.Str {
		case "execute_tool":
			return CategoryTool
		case "invoke_agent", "create_agent":
			return CategoryAgent
		default:
			return CategoryLLM
		}
	}

	// Prefix classes are checked in a fixed priority order so the
	// result never depends on map iteration order.
	prefixClasses := []struct {
		prefix   string
		category string
	}{
		{"gen_ai.", CategoryLLM},
		{"llm.", CategoryLLM},
		{"tool.", CategoryTool},
		{"db.", CategoryDB},
		{"http.", CategoryHTTP},
		{"rpc.", CategoryRPC},
	}
	for _, class := range prefixClasses {
		for key := range attrs {
			if strings.HasPrefix(key, class.prefix) {
				return class.category
			}
		}
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "agent"):
		return CategoryAgent
	case strings.Contains(lower, "tool"):
		return CategoryTool
	case strings.Contains(lower, "llm") || strings.Contains(lower, "chat"):
		return CategoryLLM
	}
	return CategoryInternal
}
