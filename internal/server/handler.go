package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"ollamastub/internal/responder"
	"ollamastub/internal/state"
	"ollamastub/pkg/logging"
)

// GeneratePath is the only path the stub answers.
const GeneratePath = "/api/generate"

// Resolver produces response text for a classified request.
type Resolver interface {
	Respond(role state.Role, prompt string) string
}

// Handler serves GeneratePath.
type Handler struct {
	store    *state.Store
	resolver Resolver
}

// NewHandler creates a Handler recording into store and answering through resolver.
func NewHandler(store *state.Store, resolver Resolver) *Handler {
	return &Handler{store: store, resolver: resolver}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tw := &trackingWriter{ResponseWriter: w}

	defer func() {
		if rec := recover(); rec != nil {
			h.fail(tw, fmt.Errorf("panic: %v", rec))
		}
	}()

	if r.URL.Path != GeneratePath {
		tw.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		tw.Header().Set("Allow", http.MethodPost)
		tw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := h.generate(tw, r); err != nil {
		h.fail(tw, err)
	}
}

func (h *Handler) generate(w *trackingWriter, r *http.Request) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	payload := decodePayload(raw)
	prompt := coerceString(payload.Get("prompt"))
	model := coerceString(payload.Get("model"))

	role := responder.ClassifyRole(prompt, model)
	h.store.RecordRequest(state.RequestRecord{Role: role, Model: model, Prompt: prompt})

	depths := h.store.QueueDepths()
	logging.Info("Server", "incoming request (role=%s, model=%s, prompt_len=%d, queues: actions=%d, long=%d, short=%d)",
		role, orDash(model), utf8.RuneCountInString(prompt), depths.Actions, depths.LongTerm, depths.ShortTerm)

	text := h.resolver.Respond(role, prompt)

	body := responder.Marshal(map[string]any{"response": text}) + "\n"
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		logging.Debug("Server", "client went away before the response was written: %v", err)
	}
	return nil
}

// fail logs err and answers 500 unless a response has already started.
// Errors while writing the 500 are ignored.
func (h *Handler) fail(w *trackingWriter, err error) {
	logging.Error("Server", err, "error handling request")
	if w.wroteHeader {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, responder.Marshal(map[string]any{"error": "internal error"}))
}

// decodePayload parses the body as a JSON object. An empty body, invalid
// JSON, or a non-object value all yield an empty payload.
func decodePayload(raw []byte) state.Object {
	if len(bytes.TrimSpace(raw)) == 0 {
		return state.Object{}
	}

	value, err := responder.DecodeJSON(raw)
	if err != nil {
		logging.Warn("Server", "invalid JSON payload; using empty payload. error=%v", err)
		return state.Object{}
	}

	obj, ok := value.(state.Object)
	if !ok {
		return state.Object{}
	}
	return obj
}

// coerceString converts a payload field to text. Absent and falsy values
// (null, false, 0, "", empty array or object) become "". Other arrays and
// objects are shown as Python would print them.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return ""
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
	case []any:
		if len(t) == 0 {
			return ""
		}
	case state.Object:
		if len(t) == 0 {
			return ""
		}
	}
	return responder.Repr(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// trackingWriter remembers whether the status line has been sent.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *trackingWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(p)
}
