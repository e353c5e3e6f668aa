// Package dashboard renders the split-screen console view: a scrolling,
// bottom-anchored log on the left and a fixed-width status sidebar on the
// right.
//
// A frame is rebuilt from scratch on every call to Renderer.Render. When the
// terminal is too small for the layout the renderer switches permanently to
// plain output, where log lines are echoed straight to stdout instead.
package dashboard
