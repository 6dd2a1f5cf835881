package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonetle/internal/lexicon"
	"phonetle/internal/store"
)

const testDict = `;;; server fixture
CAT  K AE1 T
SALAD  S AE1 L AH0 D
SEVEN  S EH1 V AH0 N
LEMON  L EH1 M AH0 N
CAMEL  K AE1 M AH0 L
`

const testFreq = `salad
seven
lemon
camel
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lex, err := lexicon.Load(strings.NewReader(testDict), strings.NewReader(testFreq), lexicon.Options{})
	require.NoError(t, err)
	return New(store.NewMemoryStore(), lex, 1600*time.Millisecond, 5*time.Second)
}

// do runs one request against the router and decodes the JSON body into out
// (when out is non-nil).
func do(t *testing.T, s *Server, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code < 400 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func newRound(t *testing.T, s *Server, answer string) string {
	t.Helper()
	var res map[string]any
	rec := do(t, s, http.MethodPost, "/round/new", map[string]string{"answer": answer}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	id, _ := res["roundId"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDebugLexicon(t *testing.T) {
	s := newTestServer(t)
	var res map[string]int
	rec := do(t, s, http.MethodGet, "/debug/lexicon", nil, &res)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, res["words"])
	assert.Equal(t, 4, res["candidates"])
}

func TestNewRound(t *testing.T) {
	s := newTestServer(t)
	var res map[string]any
	rec := do(t, s, http.MethodPost, "/round/new", map[string]string{"answer": "SALAD"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotEmpty(t, res["roundId"])
	assert.EqualValues(t, 6, res["rows"])
	assert.EqualValues(t, 5, res["cols"])
	assert.EqualValues(t, 1600, res["revealMs"])
	assert.NotEmpty(t, res["alphabet"])

	// Round is bound to a cookie for GET /round/current.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "phonetle_round", cookies[0].Name)
	assert.Equal(t, res["roundId"], cookies[0].Value)
}

func TestNewRoundRejectsUnknownAnswer(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/round/new", map[string]string{"answer": "ZEBRA"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStateWithholdsAnswer(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	var res map[string]any
	rec := do(t, s, http.MethodGet, "/round/"+id, nil, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", res["phase"])
	_, hasAnswer := res["answer"]
	assert.False(t, hasAnswer, "answer must be withheld while playing")
}

func TestGuessFlowToWin(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	var guess map[string]any
	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "SEVEN"}, &guess)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"correct", "absent", "absent", "correct", "absent"}, guess["marks"])
	assert.Equal(t, "revealing", guess["phase"])

	// Revealing locks further guesses out until finalize.
	var locked map[string]any
	rec = do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "LEMON"}, &locked)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, locked["marks"])
	assert.Equal(t, "revealing", locked["phase"])

	var fin map[string]any
	rec = do(t, s, http.MethodPost, "/round/finalize", map[string]string{"roundId": id}, &fin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", fin["phase"])
	_, hasAnswer := fin["answer"]
	assert.False(t, hasAnswer)

	do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "SALAD"}, &guess)
	assert.Equal(t, []any{"correct", "correct", "correct", "correct", "correct"}, guess["marks"])

	do(t, s, http.MethodPost, "/round/finalize", map[string]string{"roundId": id}, &fin)
	assert.Equal(t, "over", fin["phase"])
	assert.Equal(t, true, fin["won"])
	assert.Equal(t, "SALAD", fin["answer"])

	// The state snapshot now discloses the answer too.
	var state map[string]any
	do(t, s, http.MethodGet, "/round/"+id, nil, &state)
	assert.Equal(t, "SALAD", state["answer"])
}

func TestGuessUnknownWord(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "QQQQQ"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Phase unchanged, buffer cleared.
	var state map[string]any
	do(t, s, http.MethodGet, "/round/"+id, nil, &state)
	assert.Equal(t, "playing", state["phase"])
	assert.Equal(t, "", state["input"])
}

func TestGuessWrongLength(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "CAT"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGuessRoundNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": "nope", "guess": "SALAD"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKeyAndBackspace(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	var res map[string]string
	for _, k := range []string{"s", "e", "v"} {
		do(t, s, http.MethodPost, "/round/key", map[string]string{"roundId": id, "key": k}, &res)
	}
	assert.Equal(t, "SEV", res["input"])

	do(t, s, http.MethodPost, "/round/backspace", map[string]string{"roundId": id}, &res)
	assert.Equal(t, "SE", res["input"])
}

func TestRestartOnlyWhenOver(t *testing.T) {
	s := newTestServer(t)
	id := newRound(t, s, "SALAD")

	// Ignored while playing.
	var res map[string]any
	rec := do(t, s, http.MethodPost, "/round/restart", map[string]string{"roundId": id}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", res["phase"])

	do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "guess": "SALAD"}, nil)
	do(t, s, http.MethodPost, "/round/finalize", map[string]string{"roundId": id}, nil)

	do(t, s, http.MethodPost, "/round/restart", map[string]string{"roundId": id}, &res)
	assert.Equal(t, "playing", res["phase"])

	var state map[string]any
	do(t, s, http.MethodGet, "/round/"+id, nil, &state)
	assert.Empty(t, state["guesses"])
	_, hasAnswer := state["answer"]
	assert.False(t, hasAnswer, "new deal must hide the answer again")
}

func TestCurrentRoundCookie(t *testing.T) {
	s := newTestServer(t)

	var res map[string]any
	rec := do(t, s, http.MethodPost, "/round/new", map[string]string{"answer": "SALAD"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/round/current", nil)
	req.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	s.Router().ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)

	var state map[string]any
	require.NoError(t, json.NewDecoder(rec2.Body).Decode(&state))
	assert.Equal(t, res["roundId"], state["roundId"])

	// No cookie → 404.
	rec3 := do(t, s, http.MethodGet, "/round/current", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec3.Code)
}
