package commands

import (
	"context"
	"fmt"
	"strings"

	"ollamastub/internal/state"
)

// BandCommand sets the distance band knob.
type BandCommand struct {
	*BaseCommand
}

// NewBandCommand creates a new band command
func NewBandCommand(env *Env) *BandCommand {
	return &BandCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute accepts an index (clamped) or a band label such as "medium far".
func (b *BandCommand) Execute(ctx context.Context, args []string) error {
	value := strings.ToLower(strings.TrimSpace(strings.Join(args, " ")))
	if value == "" {
		return usagef("usage: %s", b.Usage())
	}

	if isDigits(value) {
		idx, _ := parseInt(value)
		b.store().SetDistanceBand(idx)
	} else {
		idx, ok := state.DistanceBandByLabel(value)
		if !ok {
			return usagef("unknown band label. valid: %s", strings.Join(state.DistanceBands, ", "))
		}
		b.store().SetDistanceBand(idx)
	}

	b.log("distance_band now: " + b.store().DistanceBand())
	return nil
}

// Usage returns the usage string
func (b *BandCommand) Usage() string {
	return "band <idx|label>"
}

// Description returns the command description
func (b *BandCommand) Description() string {
	return "Set the distance band (legacy)"
}

// Completions returns the band labels.
func (b *BandCommand) Completions(input string) []string {
	return completeFrom(state.DistanceBands, input)
}

// IntKnobCommand sets one integer knob on the store.
type IntKnobCommand struct {
	*BaseCommand
	name        string
	knob        string
	usage       string
	parseError  string
	description string
	set         func(*state.Store, int) int
}

// NewNavCommand creates the nav command.
func NewNavCommand(env *Env) *IntKnobCommand {
	return &IntKnobCommand{
		BaseCommand: NewBaseCommand(env),
		name:        "nav",
		knob:        "nav_target_index",
		usage:       "nav <idx>",
		parseError:  "nav expects an integer index",
		description: "Set the navigation target index (legacy)",
		set:         (*state.Store).SetNavTargetIndex,
	}
}

// NewEpochCommand creates the epoch command.
func NewEpochCommand(env *Env) *IntKnobCommand {
	return &IntKnobCommand{
		BaseCommand: NewBaseCommand(env),
		name:        "epoch",
		knob:        "nav_epoch",
		usage:       "epoch <n>",
		parseError:  "epoch must be an integer",
		description: "Set the navigation epoch used by move",
		set:         (*state.Store).SetNavEpoch,
	}
}

// NewQuestCommand creates the quest command.
func NewQuestCommand(env *Env) *IntKnobCommand {
	return &IntKnobCommand{
		BaseCommand: NewBaseCommand(env),
		name:        "quest",
		knob:        "quest_id",
		usage:       "quest <id>",
		parseError:  "quest expects a numeric id",
		description: "Set the quest id used by talk",
		set:         (*state.Store).SetQuestID,
	}
}

// Execute parses args[0], stores it (clamped at zero), and logs the result.
func (k *IntKnobCommand) Execute(ctx context.Context, args []string) error {
	raw := arg(args, 0)
	if raw == "" {
		return usagef("usage: %s", k.usage)
	}
	n, ok := parseInt(raw)
	if !ok {
		return usagef("%s", k.parseError)
	}

	stored := k.set(k.store(), n)
	k.log(fmt.Sprintf("%s now: %d", k.knob, stored))
	return nil
}

// Usage returns the usage string
func (k *IntKnobCommand) Usage() string {
	return k.usage
}

// Description returns the command description
func (k *IntKnobCommand) Description() string {
	return k.description
}
