package responder

import (
	"strings"

	"ollamastub/internal/state"
)

// ClassifyRole decides which response path a request takes. It is pure and
// case-insensitive.
func ClassifyRole(prompt, model string) state.Role {
	token := strings.ToLower(model + " " + prompt)
	switch {
	case strings.Contains(token, "tool_call") || strings.Contains(token, "<tool_call>"):
		return state.RoleAction
	case strings.Contains(token, "long-term goal") ||
		strings.Contains(token, "short-term goals") ||
		strings.Contains(token, "long_term_goal"):
		return state.RolePlanner
	default:
		return state.RoleUnknown
	}
}
