package dashboard

import (
	"fmt"

	"ollamastub/internal/state"
)

// SidebarTitle heads the sidebar.
const SidebarTitle = "Ollama Stub (bot-amigo)"

// SidebarLine is one row of sidebar text. Heading rows are styled.
type SidebarLine struct {
	Text    string
	Heading bool
}

func heading(text string) SidebarLine { return SidebarLine{Text: text, Heading: true} }
func text(s string) SidebarLine       { return SidebarLine{Text: s} }
func blank() SidebarLine              { return SidebarLine{} }

// SidebarLines builds the sidebar content for snap. endpoint is the URL
// clients should post to.
func SidebarLines(snap state.Snapshot, endpoint string) []SidebarLine {
	lastModel := snap.LastRequestModel
	if lastModel == "" {
		lastModel = "-"
	}
	lastAt := "-"
	if !snap.LastRequestAt.IsZero() {
		lastAt = snap.LastRequestAt.Local().Format("15:04:05")
	}

	return []SidebarLine{
		heading(SidebarTitle),
		text("URL: " + endpoint),
		blank(),
		heading("Queues"),
		text(fmt.Sprintf(" actions: %d", snap.Queues.Actions)),
		text(fmt.Sprintf(" long:    %d", snap.Queues.LongTerm)),
		text(fmt.Sprintf(" short:   %d", snap.Queues.ShortTerm)),
		blank(),
		heading("Last Request"),
		text(fmt.Sprintf(" role:   %s", snap.LastRole)),
		text(fmt.Sprintf(" model:  %s", lastModel)),
		text(fmt.Sprintf(" prompt: %d chars", snap.LastRequestPromptLen)),
		text(fmt.Sprintf(" time:   %s", lastAt)),
		blank(),
		heading("Commands"),
		text(" status | history [n]"),
		text(" last   | help | quit"),
		blank(),
		heading("Control"),
		text(" action <name> [json]"),
		text(" idle | move <idx|dir>"),
		text(" grind | stay | unstay"),
		text(" talk [quest_id]"),
		text(" action request_profession"),
		text(`   {"skill":"fishing",`),
		text(`    "intent":"fish"}`),
		blank(),
		heading("Planner"),
		text(" long <text>"),
		text(" short (multi-line)"),
		blank(),
		heading("Notes"),
		text(" attack is legacy"),
		text(" band is legacy"),
	}
}

// FitSidebar trims every line to width and pads or cuts the list to rows.
func FitSidebar(lines []SidebarLine, width, rows int) []SidebarLine {
	if rows <= 0 {
		return nil
	}
	out := make([]SidebarLine, rows)
	for i := 0; i < rows && i < len(lines); i++ {
		out[i] = SidebarLine{Text: TrimLine(lines[i].Text, width), Heading: lines[i].Heading}
	}
	return out
}
