package state

import "time"

// Role classifies an inbound request and selects the response path.
type Role string

const (
	RoleAction  Role = "action"
	RolePlanner Role = "planner"
	RoleUnknown Role = "unknown"
)

// Fallback responses used when a queue is empty.
const (
	IdleActionName      = "request_idle"
	DefaultLongTermGoal = "Complete the most relevant nearby objective safely."
	DefaultMaxHistory   = 50
)

// DefaultShortTermGoals is the plan returned when no short-term goals are queued.
var DefaultShortTermGoals = []string{
	"Scan nearby quest givers or objectives and pick the most relevant next step.",
	"Move carefully toward the closest relevant objective or NPC; avoid unnecessary combat.",
	"Execute the task and reassess; if progress stalls, reposition and try an alternate approach.",
}

// DistanceBands are the labels addressable by the distance band knob.
var DistanceBands = []string{"very close", "close", "medium", "medium far", "far"}

// Action is one queued tool call.
type Action struct {
	Name      string `json:"name"`
	Arguments Object `json:"arguments"`
}

// IdleAction returns a fresh copy of the idle fallback.
func IdleAction() Action {
	return Action{Name: IdleActionName, Arguments: Object{}}
}

// Clone returns a deep copy of the action.
func (a Action) Clone() Action {
	return Action{Name: a.Name, Arguments: a.Arguments.Clone()}
}

// RequestRecord is one entry in the request history.
type RequestRecord struct {
	ID        string
	Timestamp time.Time
	Role      Role
	Model     string
	Prompt    string
}

// QueueDepths reports how many items wait in each queue.
type QueueDepths struct {
	Actions   int
	LongTerm  int
	ShortTerm int
}

// Snapshot is a point-in-time copy of everything the console and dashboard
// display. It shares no memory with the store.
type Snapshot struct {
	Queues QueueDepths

	DistanceBandIndex int
	DistanceBand      string
	NavTargetIndex    int
	NavEpoch          int
	QuestID           int

	LastAction         *Action
	LastLongTermGoal   string
	LastShortTermGoals []string
	LastResponseText   string
	LastRole           Role

	LastRequestAt        time.Time
	LastRequestModel     string
	LastRequestPromptLen int

	Served map[Role]int
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Object:
		return t.Clone()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
