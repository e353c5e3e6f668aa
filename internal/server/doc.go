// Package server exposes the stubbed generate endpoint over HTTP.
//
// Handler implements the per-request state machine: wrong path is a 404,
// malformed JSON is logged and replaced by an empty payload, the prompt and
// model fields are coerced to strings, the request is classified and
// recorded, and the resolved text is returned as {"response": "..."}.
// Any failure, including a panic, is logged and answered with a 500; the
// process never goes down because of a single request.
//
// Server wraps net/http with an explicit Listen step so that callers can
// detect an occupied port (BindError.InUse) and retry on another one before
// serving.
package server
