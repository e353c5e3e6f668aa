package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamastub/internal/responder"
	"ollamastub/internal/state"
	"ollamastub/pkg/logging"
)

type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureSink) Append(entry logging.LogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, entry.Text())
}

func (c *captureSink) joined() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

func captureLogs(t *testing.T) *captureSink {
	t.Helper()
	sink := &captureSink{}
	logging.InitForConsole(logging.LevelDebug, sink)
	t.Cleanup(func() { logging.InitForCLI(logging.LevelInfo, &bytes.Buffer{}) })
	return sink
}

func newTestHandler() (*Handler, *state.Store) {
	store := state.NewStore(state.Config{})
	return NewHandler(store, responder.New(store)), store
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["response"]
}

func TestHandlerQueuedActionScenario(t *testing.T) {
	captureLogs(t)
	h, store := newTestHandler()
	store.EnqueueAction("request_stay", state.Object{})

	rec := post(h, GeneratePath, `{"model":"agent","prompt":"please <tool_call> now"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasSuffix(rec.Body.String(), "\n"))
	assert.Equal(t, "<tool_call>\n{\"name\": \"request_stay\", \"arguments\": {}}\n</tool_call>", decodeResponse(t, rec))
	assert.Equal(t, 0, store.QueueDepths().Actions)
}

func TestHandlerShortTermDefaultScenario(t *testing.T) {
	captureLogs(t)
	h, _ := newTestHandler()

	rec := post(h, GeneratePath, `{"model":"planner","prompt":"give short-term goals"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.Join(state.DefaultShortTermGoals, "\n"), decodeResponse(t, rec))
}

func TestHandlerMalformedJSONScenario(t *testing.T) {
	sink := captureLogs(t)
	h, store := newTestHandler()

	rec := post(h, GeneratePath, `{not json`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\"response\": \"OK\"}\n", rec.Body.String())
	assert.Contains(t, sink.joined(), "invalid JSON payload; using empty payload. error=")
	assert.Equal(t, state.RoleUnknown, store.Snapshot().LastRole)
}

func TestHandlerWrongPathScenario(t *testing.T) {
	captureLogs(t)
	h, store := newTestHandler()

	rec := post(h, "/wrong", `{"prompt":"<tool_call>"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, store.History(10))
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	captureLogs(t)
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, GeneratePath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandlerPayloadCoercion(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantModel  string
		wantPrompt string
	}{
		{"empty body", ``, "", ""},
		{"non-object JSON", `[1,2,3]`, "", ""},
		{"trailing garbage", `{"prompt":"x"} extra`, "", ""},
		{"null fields", `{"model":null,"prompt":null}`, "", ""},
		{"numeric model", `{"model":7,"prompt":"hi"}`, "7", "hi"},
		{"zero is falsy", `{"model":0}`, "", ""},
		{"true becomes True", `{"model":true}`, "True", ""},
		{"object prompt", `{"prompt":{"b":1,"a":"x"}}`, "", `{'b': 1, 'a': 'x'}`},
		{"array prompt", `{"prompt":[true,null,"it's",1.50]}`, "", `[True, None, "it's", 1.5]`},
		{"float model", `{"model":1e5}`, "100000.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			h, store := newTestHandler()

			rec := post(h, GeneratePath, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			history := store.History(1)
			require.Len(t, history, 1)
			assert.Equal(t, tt.wantModel, history[0].Model)
			assert.Equal(t, tt.wantPrompt, history[0].Prompt)
		})
	}
}

func TestHandlerLogsIncomingSummary(t *testing.T) {
	sink := captureLogs(t)
	h, store := newTestHandler()
	store.EnqueueLongTermGoal("g")

	post(h, GeneratePath, `{"prompt":"hello"}`)

	assert.Contains(t, sink.joined(),
		"incoming request (role=unknown, model=-, prompt_len=5, queues: actions=0, long=1, short=0)")
	assert.Contains(t, sink.joined(), "responding with default text")
}

func TestHandlerCountsPromptCharacters(t *testing.T) {
	sink := captureLogs(t)
	h, store := newTestHandler()

	post(h, GeneratePath, `{"prompt":"héllo"}`)

	assert.Contains(t, sink.joined(), "prompt_len=5,")
	assert.Equal(t, 5, store.Snapshot().LastRequestPromptLen)
}

func TestHandlerServesArgumentsInQueuedOrder(t *testing.T) {
	captureLogs(t)
	h, store := newTestHandler()
	store.EnqueueAction("request_move_hop", state.Object{}.Set("nav_epoch", 1).Set("candidate_id", "nav_0"))

	rec := post(h, GeneratePath, `{"prompt":"<tool_call>"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		`{"response": "<tool_call>\n{\"name\": \"request_move_hop\", \"arguments\": {\"nav_epoch\": 1, \"candidate_id\": \"nav_0\"}}\n</tool_call>"}`+"\n",
		rec.Body.String())
}

type panicResolver struct{}

func (panicResolver) Respond(state.Role, string) string { panic("resolver exploded") }

func TestHandlerRecoversFromPanic(t *testing.T) {
	sink := captureLogs(t)
	store := state.NewStore(state.Config{})
	h := NewHandler(store, panicResolver{})

	rec := post(h, GeneratePath, `{"prompt":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `{"error": "internal error"}`, rec.Body.String())
	assert.Contains(t, sink.joined(), "error handling request: panic: resolver exploded")
}

func TestHandlerConcurrentRequestsConsumeDistinctActions(t *testing.T) {
	captureLogs(t)
	h, store := newTestHandler()
	const n = 50
	for i := 0; i < n; i++ {
		store.EnqueueAction("request_stay", state.Object{}.Set("i", i))
	}

	var wg sync.WaitGroup
	responses := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := post(h, GeneratePath, `{"prompt":"<tool_call>"}`)
			responses[i] = rec.Body.String()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, body := range responses {
		assert.False(t, seen[body], "duplicate response %s", body)
		seen[body] = true
	}
	assert.Equal(t, 0, store.QueueDepths().Actions)
	assert.Len(t, store.History(100), n)
}
