// Package preload seeds the state store from a YAML script so a session can
// be replayed without retyping console commands.
//
// A script looks like:
//
//	actions:
//	  - name: request_move_hop
//	    arguments: {nav_epoch: 3, candidate_id: nav_0}
//	  - name: request_stay
//	long_term_goals:
//	  - Reach the inn
//	short_term_goals:
//	  - ["Find the innkeeper", "Ask about rooms"]
//
// Scripts are applied with Script.Apply. A Watcher re-applies the file each
// time it is written.
package preload
