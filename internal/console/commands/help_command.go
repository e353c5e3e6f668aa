package commands

import (
	"context"
)

// HelpText is the full command reference printed in plain mode.
const HelpText = `Commands:
  status
  history [n]
  last
  help
  quit

Control:
  action <name> [json_args]
    example: action request_idle {}
    example: action request_move_hop {"nav_epoch":42,"candidate_id":"nav_0"}
  idle | move <idx|candidate_id|direction>
  grind | stay | unstay | talk [quest_id]
  action request_profession {"skill":"fishing","intent":"fish"}

Planner:
  long <text>
  short  (enter 1+ lines; end with a single '.' line)

Knobs (legacy):
  band <idx|label>
  nav <idx>
  epoch <n>
  quest <id>

Session:
  load <file>  (queue actions and goals from a YAML script)
  clear        (drop everything queued)`

// SidebarHint is logged for help in dashboard mode, where the sidebar
// already lists the commands.
const SidebarHint = "commands are listed in the sidebar. type 'help' in plain mode for full list."

// HelpCommand shows the command reference.
type HelpCommand struct {
	*BaseCommand
}

// NewHelpCommand creates a new help command
func NewHelpCommand(env *Env) *HelpCommand {
	return &HelpCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute prints HelpText in plain mode and points at the sidebar otherwise.
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if h.env.plain() {
		h.env.Out.Print(HelpText)
		return nil
	}
	h.log(SidebarHint)
	return nil
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show available commands"
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"h", "?"}
}
