// Package responder turns an inbound prompt/model pair into response text.
//
// ClassifyRole sniffs the lower-cased "model prompt" string for trigger
// substrings. The action check runs before the planner check, so a prompt
// containing both kinds of trigger is always an action request.
//
// Responder resolves a role against the state store:
//
//	action  -> next queued action wrapped in a tool-call envelope
//	planner -> state.Store.ConsumePlannerResponse
//	unknown -> "OK"
//
// The tool-call envelope emulates the output grammar of the real model:
//
//	<tool_call>
//	{"name": "request_stay", "arguments": {}}
//	</tool_call>
//
// JSON in the envelope and in HTTP bodies is rendered by Marshal, which uses
// the ", " and ": " separators and \uXXXX escaping of non-ASCII text of
// Python's json.dumps, which is what the game client's parser expects.
package responder
