package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ollamastub/internal/responder"
	"ollamastub/internal/state"
)

// ActionCommand queues an arbitrary action with optional JSON arguments.
type ActionCommand struct {
	*BaseCommand
}

// NewActionCommand creates a new action command
func NewActionCommand(env *Env) *ActionCommand {
	return &ActionCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute queues args[0] with args[1] parsed as a JSON object.
func (a *ActionCommand) Execute(ctx context.Context, args []string) error {
	name := arg(args, 0)
	if name == "" {
		return usagef("usage: %s", a.Usage())
	}

	arguments, err := ParseJSONObject(arg(args, 1))
	if err != nil {
		return err
	}

	a.enqueue(name, arguments, " "+marshal(arguments))
	return nil
}

// ParseJSONObject parses text as a JSON object, keeping its key order.
// Blank text yields an empty object.
func ParseJSONObject(text string) (state.Object, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return state.Object{}, nil
	}

	value, err := responder.DecodeJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	obj, ok := value.(state.Object)
	if !ok {
		return nil, errors.New("invalid JSON: JSON must be an object")
	}
	return obj, nil
}

// Usage returns the usage string
func (a *ActionCommand) Usage() string {
	return "action <name> [json_args]"
}

// Description returns the command description
func (a *ActionCommand) Description() string {
	return "Queue an action with optional JSON arguments"
}

// Completions suggests the action names the fixed commands use.
func (a *ActionCommand) Completions(input string) []string {
	return completeFrom(KnownActions, input)
}

// Fixed action names.
const (
	ActionIdle        = "request_idle"
	ActionEnterGrind  = "request_enter_grind"
	ActionStopGrind   = "request_stop_grind"
	ActionAttackPull  = "request_enter_attack_pull"
	ActionStay        = "request_stay"
	ActionUnstay      = "request_unstay"
	ActionTalk        = "request_talk_to_quest_giver"
	ActionMoveHop     = "request_move_hop"
	ActionProfession  = "request_profession"
	legacyLabelSuffix = " (legacy)"
)

// KnownActions lists action names offered for completion.
var KnownActions = []string{
	ActionAttackPull, ActionEnterGrind, ActionIdle, ActionMoveHop, ActionProfession,
	ActionStay, ActionStopGrind, ActionTalk, ActionUnstay,
}

// QueueCommand queues one fixed action with empty arguments.
type QueueCommand struct {
	*BaseCommand
	name        string
	action      string
	aliases     []string
	description string
	legacy      bool
}

// NewQueueCommand creates a command that queues action when invoked as name.
func NewQueueCommand(env *Env, name, action, description string, aliases ...string) *QueueCommand {
	return &QueueCommand{
		BaseCommand: NewBaseCommand(env),
		name:        name,
		action:      action,
		aliases:     aliases,
		description: description,
	}
}

// Legacy marks the command as legacy in its log line.
func (q *QueueCommand) Legacy() *QueueCommand {
	q.legacy = true
	return q
}

// Execute queues the fixed action.
func (q *QueueCommand) Execute(ctx context.Context, args []string) error {
	suffix := ""
	if q.legacy {
		suffix = legacyLabelSuffix
	}
	q.enqueue(q.action, state.Object{}, suffix)
	return nil
}

// Usage returns the usage string
func (q *QueueCommand) Usage() string {
	return q.name
}

// Description returns the command description
func (q *QueueCommand) Description() string {
	return q.description
}

// Aliases returns command aliases
func (q *QueueCommand) Aliases() []string {
	return q.aliases
}

// TalkCommand queues a talk-to-quest-giver action.
type TalkCommand struct {
	*BaseCommand
}

// NewTalkCommand creates a new talk command
func NewTalkCommand(env *Env) *TalkCommand {
	return &TalkCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute uses args[0] as the quest id, or the stored quest id knob.
func (t *TalkCommand) Execute(ctx context.Context, args []string) error {
	questID := t.store().QuestID()
	if raw := arg(args, 0); raw != "" {
		parsed, ok := parseInt(raw)
		if !ok {
			return usagef("talk expects a numeric quest id")
		}
		questID = parsed
	}

	t.enqueue(ActionTalk, state.Object{}.Set("quest_id", questID), fmt.Sprintf(` {"quest_id": %d}`, questID))
	return nil
}

// Usage returns the usage string
func (t *TalkCommand) Usage() string {
	return "talk [quest_id]"
}

// Description returns the command description
func (t *TalkCommand) Description() string {
	return "Queue a talk to the quest giver"
}

// Directions maps move keywords to navigation candidates.
var Directions = map[string]string{
	"forward":  "nav_0",
	"backward": "nav_1",
	"left":     "nav_2",
	"right":    "nav_3",
}

// MoveCommand queues a hop to a navigation candidate.
type MoveCommand struct {
	*BaseCommand
}

// NewMoveCommand creates a new move command
func NewMoveCommand(env *Env) *MoveCommand {
	return &MoveCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute resolves args[0] to a candidate id and queues a move hop carrying
// the current nav epoch.
func (m *MoveCommand) Execute(ctx context.Context, args []string) error {
	raw := arg(args, 0)
	if raw == "" {
		return usagef("usage: move <idx|candidate_id|forward|backward|left|right>")
	}

	candidate, ok := ResolveCandidate(raw)
	if !ok {
		return usagef("unknown direction. use forward/backward/left/right or nav_<idx>.")
	}

	epoch := m.store().NavEpoch()
	m.enqueue(ActionMoveHop,
		state.Object{}.Set("nav_epoch", epoch).Set("candidate_id", candidate),
		fmt.Sprintf(` {"nav_epoch":%d,"candidate_id":"%s"}`, epoch, candidate))
	return nil
}

// ResolveCandidate normalizes a move token: nav_* as is, digits to nav_<n>
// without leading zeros, or a direction keyword. Digit runs of any length
// are accepted.
func ResolveCandidate(token string) (string, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	switch {
	case strings.HasPrefix(token, "nav_"):
		return token, true
	case isDigits(token):
		n := strings.TrimLeft(token, "0")
		if n == "" {
			n = "0"
		}
		return "nav_" + n, true
	}
	candidate, ok := Directions[token]
	return candidate, ok
}

// Usage returns the usage string
func (m *MoveCommand) Usage() string {
	return "move <idx|candidate_id|direction>"
}

// Description returns the command description
func (m *MoveCommand) Description() string {
	return "Queue a move hop to a navigation candidate"
}

// Completions returns the direction keywords.
func (m *MoveCommand) Completions(input string) []string {
	return completeFrom([]string{"backward", "forward", "left", "right"}, input)
}
