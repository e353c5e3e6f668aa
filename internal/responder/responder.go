package responder

import (
	"ollamastub/internal/state"
	"ollamastub/pkg/logging"
	pkgstrings "ollamastub/pkg/strings"
)

// DefaultResponse is returned for requests that are neither actions nor
// planner prompts.
const DefaultResponse = "OK"

// Responder resolves classified requests against the shared store.
type Responder struct {
	store *state.Store
}

// New creates a Responder backed by store.
func New(store *state.Store) *Responder {
	return &Responder{store: store}
}

// Respond produces the response text for role. It consumes from the queues,
// records the text as the last response, and logs what was sent.
func (r *Responder) Respond(role state.Role, prompt string) string {
	var text string
	switch role {
	case state.RoleAction:
		action := r.store.ConsumeAction()
		text = FormatToolCall(action.Name, action.Arguments)
		logging.Info("Responder", "responding with action: %s", action.Name)
	case state.RolePlanner:
		text = r.store.ConsumePlannerResponse(prompt)
		logging.Info("Responder", "responding with planner text: %s", pkgstrings.Preview(text, pkgstrings.ResponsePreviewLen))
	default:
		text = DefaultResponse
		logging.Info("Responder", "responding with default text")
	}

	r.store.SetLastResponse(text)
	return text
}
