// Package console runs the operator's read-eval loop.
//
// Each iteration redraws the dashboard, reads one line, splits it into at
// most three tokens (command, first argument, rest of the line), and
// dispatches through a commands.Registry. Command failures are reported to
// the log and never end the loop; only quit, end of input, or an interrupt
// do.
package console
