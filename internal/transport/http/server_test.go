package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordrush/internal/app"
	"wordrush/internal/config"
	"wordrush/internal/dictionary"
	"wordrush/internal/domain"
	"wordrush/internal/store"
)

type fixedLetters string

func (f fixedLetters) GenerateLetters() string { return string(f) }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func newTestServer(t *testing.T, dict *dictionary.Dictionary) *httptest.Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	svc := app.NewGameService(store.NewMemory(), dict, fixedLetters("MASTER"), nil, zerolog.Nop(), app.Options{
		Duration: time.Minute,
	})
	srv := NewServer(cfg, svc, dict, zerolog.Nop())

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, body interface{}, out interface{}) (int, *envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && env.Success {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode, &env
}

type snapshot struct {
	Code          string                    `json:"code"`
	Letters       string                    `json:"letters"`
	Status        string                    `json:"status"`
	StartTime     *time.Time                `json:"startTime"`
	Duration      int                       `json:"duration"`
	Players       map[string]*domain.Player `json:"players"`
	TimeRemaining int                       `json:"timeRemaining"`
	Standings     []domain.Standing         `json:"standings"`
}

func TestGameFlow(t *testing.T) {
	ts := newTestServer(t, dictionary.New([]string{"MAST", "TEAM", "MASTER"}))

	var created CreateGameResponse
	status, _ := call(t, ts, http.MethodPost, "/api/games", nil, &created)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, created.Code, domain.CodeLength)
	assert.Equal(t, "MASTER", created.Letters)
	base := "/api/games/" + created.Code

	var joined struct {
		PlayerID string    `json:"playerId"`
		Game     *snapshot `json:"game"`
	}
	status, _ = call(t, ts, http.MethodPost, base+"/join", JoinRequest{Name: "Alice"}, &joined)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, joined.PlayerID)
	assert.Equal(t, "waiting", joined.Game.Status)
	assert.Equal(t, "Alice", joined.Game.Players[joined.PlayerID].Name)
	alice := joined.PlayerID

	status, env := call(t, ts, http.MethodPost, base+"/join", JoinRequest{Name: "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	// Words are refused until the round starts.
	status, env = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: alice, Word: "MAST"}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	var started snapshot
	status, _ = call(t, ts, http.MethodPost, base+"/start", nil, &started)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "active", started.Status)
	assert.NotNil(t, started.StartTime)
	assert.InDelta(t, 60, started.TimeRemaining, 1)

	status, env = call(t, ts, http.MethodPost, base+"/join", JoinRequest{Name: "Bob"}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	var sub domain.Submission
	status, _ = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: alice, Word: "mast"}, &sub)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, sub.Accepted)
	assert.Equal(t, 400, sub.Points)

	status, _ = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: alice, Word: "mast"}, &sub)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, sub.Accepted)
	assert.Equal(t, domain.ReasonAlreadySubmitted, sub.Reason)

	status, _ = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: alice, Word: "STEAM"}, &sub)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, sub.Accepted)
	assert.Equal(t, domain.ReasonNotInDictionary, sub.Reason)

	status, env = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: "ghost", Word: "MAST"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	var game snapshot
	status, _ = call(t, ts, http.MethodGet, base, nil, &game)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 400, game.Players[alice].Score)
	require.Len(t, game.Standings, 1)
	assert.Equal(t, 1, game.Standings[0].Rank)

	var retracted RetractResponse
	status, _ = call(t, ts, http.MethodDelete, base+"/words", WordRequest{PlayerID: alice, Word: "MAST"}, &retracted)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, retracted.Success)

	status, _ = call(t, ts, http.MethodGet, base, nil, &game)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, game.Players[alice].Score)
	assert.Empty(t, game.Players[alice].Words)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t, dictionary.Empty())

	status, env := call(t, ts, http.MethodGet, "/api/games/ZZZZZZ", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)

	var exists GameExistsResponse
	status, _ = call(t, ts, http.MethodGet, "/api/games/ZZZZZZ/exists", nil, &exists)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, exists.Exists)
}

func TestLowerCaseCode(t *testing.T) {
	ts := newTestServer(t, dictionary.Empty())

	var created CreateGameResponse
	call(t, ts, http.MethodPost, "/api/games", nil, &created)

	var exists GameExistsResponse
	status, _ := call(t, ts, http.MethodGet, "/api/games/"+strings.ToLower(created.Code)+"/exists", nil, &exists)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, exists.Exists)
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t, dictionary.Empty())

	var created CreateGameResponse
	call(t, ts, http.MethodPost, "/api/games", nil, &created)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/games/"+created.Code+"/join", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmptyDictionaryRejectsEverything(t *testing.T) {
	ts := newTestServer(t, dictionary.Empty())

	var health HealthResponse
	status, _ := call(t, ts, http.MethodGet, "/api/health", nil, &health)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "empty", health.Dictionary)
	assert.Equal(t, 0, health.Words)

	var created CreateGameResponse
	call(t, ts, http.MethodPost, "/api/games", nil, &created)
	base := "/api/games/" + created.Code

	var joined JoinResponse
	call(t, ts, http.MethodPost, base+"/join", JoinRequest{Name: "Alice"}, &joined)
	call(t, ts, http.MethodPost, base+"/start", nil, nil)

	var sub domain.Submission
	status, _ = call(t, ts, http.MethodPost, base+"/words", WordRequest{PlayerID: joined.PlayerID, Word: "MAST"}, &sub)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, sub.Accepted)
	assert.Equal(t, domain.ReasonNotInDictionary, sub.Reason)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t, dictionary.Empty())
	call(t, ts, http.MethodPost, "/api/games", nil, nil)
	call(t, ts, http.MethodPost, "/api/games", nil, nil)

	var stats app.Stats
	status, _ := call(t, ts, http.MethodGet, "/api/stats", nil, &stats)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, stats.ActiveGames)
}
