package preload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ollamastub/internal/state"
)

// Script is the parsed content of a preload file.
type Script struct {
	Actions        []state.Action
	LongTermGoals  []string
	ShortTermGoals [][]string
}

// scriptFile is the on-disk layout. Arguments stay YAML nodes so that their
// key order survives decoding.
type scriptFile struct {
	Actions []struct {
		Name      string    `yaml:"name"`
		Arguments yaml.Node `yaml:"arguments"`
	} `yaml:"actions"`
	LongTermGoals  []string   `yaml:"long_term_goals"`
	ShortTermGoals [][]string `yaml:"short_term_goals"`
}

// Counts reports how many items a script queued.
type Counts struct {
	Actions   int
	LongTerm  int
	ShortTerm int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d actions, %d long-term goals, %d short-term plans", c.Actions, c.LongTerm, c.ShortTerm)
}

// ScriptError describes a preload file that could not be used.
type ScriptError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ScriptError) Error() string {
	msg := "preload script"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScriptError{Path: path, Reason: "failed to read file", Err: err}
	}
	script, err := Parse(data)
	if err != nil {
		var se *ScriptError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return script, nil
}

// Parse decodes a script. Unknown keys are rejected. An empty document is a
// valid script that queues nothing.
func Parse(data []byte) (*Script, error) {
	var file scriptFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ScriptError{Reason: "failed to parse YAML", Err: err}
	}

	script := &Script{
		LongTermGoals:  file.LongTermGoals,
		ShortTermGoals: file.ShortTermGoals,
	}
	for i, action := range file.Actions {
		arguments, err := argumentsFromNode(&action.Arguments)
		if err != nil {
			return nil, &ScriptError{Reason: fmt.Sprintf("actions[%d] (%s): arguments are not JSON-compatible", i, action.Name), Err: err}
		}
		script.Actions = append(script.Actions, state.Action{Name: action.Name, Arguments: arguments})
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}
	return script, nil
}

// Validate checks that every action has a name and JSON-compatible
// arguments, and that no goal is blank.
func (s *Script) Validate() error {
	for i, action := range s.Actions {
		if strings.TrimSpace(action.Name) == "" {
			return &ScriptError{Reason: fmt.Sprintf("actions[%d]: name is required", i)}
		}
		if _, err := json.Marshal(action.Arguments); err != nil {
			return &ScriptError{Reason: fmt.Sprintf("actions[%d] (%s): arguments are not JSON-compatible", i, action.Name), Err: err}
		}
	}
	for i, goal := range s.LongTermGoals {
		if strings.TrimSpace(goal) == "" {
			return &ScriptError{Reason: fmt.Sprintf("long_term_goals[%d] is empty", i)}
		}
	}
	for i, plan := range s.ShortTermGoals {
		if len(plan) == 0 {
			return &ScriptError{Reason: fmt.Sprintf("short_term_goals[%d] has no goals", i)}
		}
	}
	return nil
}

// Apply enqueues everything in the script, in file order, and reports what
// was queued. Goals are trimmed and blank short-term lines dropped, as the
// console does.
func (s *Script) Apply(store *state.Store) Counts {
	var counts Counts
	for _, action := range s.Actions {
		store.EnqueueAction(strings.TrimSpace(action.Name), action.Arguments)
		counts.Actions++
	}
	for _, goal := range s.LongTermGoals {
		store.EnqueueLongTermGoal(strings.TrimSpace(goal))
		counts.LongTerm++
	}
	for _, plan := range s.ShortTermGoals {
		var goals []string
		for _, goal := range plan {
			if g := strings.TrimSpace(goal); g != "" {
				goals = append(goals, g)
			}
		}
		if len(goals) == 0 {
			continue
		}
		store.EnqueueShortTermGoals(goals)
		counts.ShortTerm++
	}
	return counts
}

// LoadAndApply loads the script at path and applies it to store.
func LoadAndApply(path string, store *state.Store) (Counts, error) {
	script, err := Load(path)
	if err != nil {
		return Counts{}, err
	}
	return script.Apply(store), nil
}

// argumentsFromNode converts an arguments mapping into an Object in document
// order. An absent or null node yields nil.
func argumentsFromNode(node *yaml.Node) (state.Object, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	value, err := valueFromNode(node)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(state.Object)
	if !ok {
		return nil, fmt.Errorf("line %d: arguments must be a mapping", node.Line)
	}
	return obj, nil
}

func valueFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	case yaml.MappingNode:
		obj := state.Object{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || key.Tag != "!!str" {
				return nil, fmt.Errorf("line %d: mapping key %q is not a string", key.Line, key.Value)
			}
			v, err := valueFromNode(value)
			if err != nil {
				return nil, err
			}
			obj = obj.Set(key.Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := valueFromNode(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
