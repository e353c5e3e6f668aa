package state

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Config configures a Store.
type Config struct {
	// MaxHistory caps the request history. Values below 1 use DefaultMaxHistory.
	MaxHistory int
	// Clock stamps request records. Defaults to RealClock.
	Clock Clock
}

// Store is the single source of truth shared by the HTTP handler and the
// console. All fields are guarded by mu.
type Store struct {
	mu sync.Mutex

	clock      Clock
	maxHistory int

	actions        []Action
	longTermGoals  []string
	shortTermGoals [][]string

	distanceBandIndex int
	navTargetIndex    int
	navEpoch          int
	questID           int

	history []RequestRecord

	lastAction         *Action
	lastLongTermGoal   string
	lastShortTermGoals []string
	lastResponseText   string
	lastRole           Role

	lastRequest RequestRecord
	lastPromptN int

	served map[Role]int
}

// NewStore creates a Store with the legacy knob defaults (band "close",
// nav target 0, epoch 1, quest 1).
func NewStore(cfg Config) *Store {
	if cfg.MaxHistory < 1 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	return &Store{
		clock:             cfg.Clock,
		maxHistory:        cfg.MaxHistory,
		distanceBandIndex: 1,
		navEpoch:          1,
		questID:           1,
		lastRole:          RoleUnknown,
		served:            make(map[Role]int),
	}
}

// EnqueueAction appends an action. Arguments are copied; nil becomes {}.
func (s *Store) EnqueueAction(name string, arguments Object) {
	action := Action{Name: name, Arguments: arguments.Clone()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

// EnqueueLongTermGoal appends a long-term goal.
func (s *Store) EnqueueLongTermGoal(goal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.longTermGoals = append(s.longTermGoals, goal)
}

// EnqueueShortTermGoals appends one short-term plan.
func (s *Store) EnqueueShortTermGoals(goals []string) {
	plan := cloneStrings(goals)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shortTermGoals = append(s.shortTermGoals, plan)
}

// ConsumeAction pops the oldest action, or the idle fallback when the queue
// is empty or the popped action has no name.
func (s *Store) ConsumeAction() Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := IdleAction()
	if len(s.actions) > 0 {
		action = s.actions[0]
		s.actions[0] = Action{}
		s.actions = s.actions[1:]
	}
	if action.Name == "" {
		action = IdleAction()
	}
	if action.Arguments == nil {
		action.Arguments = Object{}
	}

	last := action.Clone()
	s.lastAction = &last
	return action
}

// ConsumeLongTermGoal pops the oldest long-term goal or DefaultLongTermGoal.
func (s *Store) ConsumeLongTermGoal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumeLongTermGoalLocked()
}

func (s *Store) consumeLongTermGoalLocked() string {
	goal := DefaultLongTermGoal
	if len(s.longTermGoals) > 0 {
		goal = s.longTermGoals[0]
		s.longTermGoals = s.longTermGoals[1:]
	}
	s.lastLongTermGoal = goal
	return goal
}

// ConsumeShortTermGoals pops the oldest short-term plan or DefaultShortTermGoals.
func (s *Store) ConsumeShortTermGoals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.consumeShortTermGoalsLocked())
}

func (s *Store) consumeShortTermGoalsLocked() []string {
	goals := DefaultShortTermGoals
	if len(s.shortTermGoals) > 0 {
		goals = s.shortTermGoals[0]
		s.shortTermGoals[0] = nil
		s.shortTermGoals = s.shortTermGoals[1:]
	}
	s.lastShortTermGoals = cloneStrings(goals)
	return goals
}

// ConsumePlannerResponse answers a planner prompt. The order of checks is
// significant:
//
//  1. "short-term goals" / "short_term_goal": next short-term plan joined by newlines
//  2. "proposed_long_term_goal" / "proposed long-term goal": the long-term goal
//     already sent, if any, otherwise a fresh one
//  3. anything else: a fresh long-term goal
//
// Matching is case-insensitive.
func (s *Store) ConsumePlannerResponse(prompt string) string {
	token := strings.ToLower(prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.Contains(token, "short-term goals") || strings.Contains(token, "short_term_goal") {
		return strings.Join(s.consumeShortTermGoalsLocked(), "\n")
	}
	if strings.Contains(token, "proposed_long_term_goal") || strings.Contains(token, "proposed long-term goal") {
		if s.lastLongTermGoal != "" {
			return s.lastLongTermGoal
		}
	}
	return s.consumeLongTermGoalLocked()
}

// ClearQueues drops every queued item and reports how many were removed.
func (s *Store) ClearQueues() QueueDepths {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.depthsLocked()
	s.actions = nil
	s.longTermGoals = nil
	s.shortTermGoals = nil
	return removed
}

// RecordRequest appends rec to the history, trimming the oldest entries past
// the cap, and updates the last-request fields. A missing ID or timestamp is
// filled in. The stored record is returned.
func (s *Store) RecordRequest(rec RequestRecord) RequestRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Role == "" {
		rec.Role = RoleUnknown
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.clock.Now()
	}

	s.history = append(s.history, rec)
	if over := len(s.history) - s.maxHistory; over > 0 {
		trimmed := make([]RequestRecord, s.maxHistory)
		copy(trimmed, s.history[over:])
		s.history = trimmed
	}

	s.lastRole = rec.Role
	s.lastRequest = rec
	s.lastPromptN = utf8.RuneCountInString(rec.Prompt)
	s.served[rec.Role]++
	return rec
}

// SetLastResponse stores the text most recently sent to a client.
func (s *Store) SetLastResponse(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResponseText = text
}

// LastResponse returns the text most recently sent to a client.
func (s *Store) LastResponse() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResponseText
}

// MaxHistory returns the history cap.
func (s *Store) MaxHistory() int {
	return s.maxHistory
}

// History returns up to n most recent records, oldest first. n <= 0 returns
// nothing.
func (s *Store) History(n int) []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil
	}
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]RequestRecord, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// QueueDepths returns the current queue lengths.
func (s *Store) QueueDepths() QueueDepths {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depthsLocked()
}

func (s *Store) depthsLocked() QueueDepths {
	return QueueDepths{
		Actions:   len(s.actions),
		LongTerm:  len(s.longTermGoals),
		ShortTerm: len(s.shortTermGoals),
	}
}

// Snapshot copies out everything the console and dashboard display.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Queues:               s.depthsLocked(),
		DistanceBandIndex:    s.distanceBandIndex,
		DistanceBand:         DistanceBands[s.distanceBandIndex],
		NavTargetIndex:       s.navTargetIndex,
		NavEpoch:             s.navEpoch,
		QuestID:              s.questID,
		LastLongTermGoal:     s.lastLongTermGoal,
		LastShortTermGoals:   cloneStrings(s.lastShortTermGoals),
		LastResponseText:     s.lastResponseText,
		LastRole:             s.lastRole,
		LastRequestAt:        s.lastRequest.Timestamp,
		LastRequestModel:     s.lastRequest.Model,
		LastRequestPromptLen: s.lastPromptN,
		Served:               make(map[Role]int, len(s.served)),
	}
	if s.lastAction != nil {
		last := s.lastAction.Clone()
		snap.LastAction = &last
	}
	for role, n := range s.served {
		snap.Served[role] = n
	}
	return snap
}
