package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ollamastub/internal/responder"
	"ollamastub/internal/state"
)

// StatusCommand logs queue depths, knobs, and what was last sent.
type StatusCommand struct {
	*BaseCommand
	now func() time.Time
}

// NewStatusCommand creates a new status command
func NewStatusCommand(env *Env) *StatusCommand {
	return &StatusCommand{BaseCommand: NewBaseCommand(env), now: time.Now}
}

// Execute logs the status report.
func (s *StatusCommand) Execute(ctx context.Context, args []string) error {
	s.log(FormatStatus(s.store().Snapshot(), s.now()))
	return nil
}

// FormatStatus renders the status report for snap.
func FormatStatus(snap state.Snapshot, now time.Time) string {
	rows := [][2]string{
		{"time:", now.Format("2006-01-02 15:04:05")},
		{"queued actions:", fmt.Sprint(snap.Queues.Actions)},
		{"queued long goals:", fmt.Sprint(snap.Queues.LongTerm)},
		{"queued short goals:", fmt.Sprint(snap.Queues.ShortTerm)},
		{"distance_band:", snap.DistanceBand},
		{"nav_target_index:", fmt.Sprint(snap.NavTargetIndex)},
		{"nav_epoch:", fmt.Sprint(snap.NavEpoch)},
		{"quest_id:", fmt.Sprint(snap.QuestID)},
		{"last_role:", string(snap.LastRole)},
		{"served:", fmt.Sprintf("action=%d planner=%d unknown=%d",
			snap.Served[state.RoleAction], snap.Served[state.RolePlanner], snap.Served[state.RoleUnknown])},
	}
	if snap.LastAction != nil {
		rows = append(rows, [2]string{"last_action_sent:", responder.MarshalAction(snap.LastAction.Name, snap.LastAction.Arguments)})
	}
	if snap.LastLongTermGoal != "" {
		rows = append(rows, [2]string{"last_long_term_goal:", snap.LastLongTermGoal})
	}
	if len(snap.LastShortTermGoals) > 0 {
		rows = append(rows, [2]string{"last_short_term_goals:", marshal(snap.LastShortTermGoals)})
	}
	if snap.LastResponseText != "" {
		rows = append(rows, [2]string{"last_response_len:", fmt.Sprint(len(snap.LastResponseText))})
	}

	t := newPlainTable()
	for _, row := range rows {
		t.AppendRow(table.Row{row[0], row[1]})
	}
	return "STATUS\n" + trimRight(t.Render())
}

// Usage returns the usage string
func (s *StatusCommand) Usage() string {
	return "status"
}

// Description returns the command description
func (s *StatusCommand) Description() string {
	return "Show queue depths, knobs, and the last response sent"
}

// newPlainTable returns a borderless table whose lines fit the log pane.
func newPlainTable() table.Writer {
	style := table.StyleDefault
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "  "
	style.Format.Header = text.FormatDefault

	t := table.NewWriter()
	t.SetStyle(style)
	return t
}

// trimRight drops trailing padding from every rendered table line.
func trimRight(rendered string) string {
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
