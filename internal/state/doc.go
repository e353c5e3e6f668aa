// Package state owns the shared state of the stub: response queues, request
// history, legacy operator knobs and the "last seen" snapshot.
//
// A single Store is created at startup and injected into the HTTP handler,
// the responder and the console. Every field is guarded by one mutex so that
// concurrent HTTP requests and console commands are linearized: two requests
// consuming the same queue always receive distinct items or a fallback.
//
// Consumption never blocks. Each queue has a deterministic fallback:
//
//   - actions: {"name":"request_idle","arguments":{}}
//   - long-term goals: DefaultLongTermGoal
//   - short-term goals: DefaultShortTermGoals
//
// Read accessors (Snapshot, History, QueueDepths) copy data out under the
// lock and never expose internal slices or maps.
package state
