package serverapp

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/game"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
)

type testServer struct {
	handler http.Handler
	engine  *game.Engine
	sink    *notify.MemorySink
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Balance.Autosave = false
	sink := notify.NewMemorySink(128)
	clock := game.NewFakeClock(time.Unix(1_700_000_000, 0))
	mgr := save.NewManager(save.NewMemoryStore(), cfg.Balance, clock, nil)
	engine := game.New(game.Options{
		Balance:  cfg.Balance,
		Clock:    clock,
		Rand:     rand.New(rand.NewSource(1)),
		Notifier: sink,
		Saver:    mgr,
	})

	h, err := NewHandler(Options{
		Config: cfg,
		Engine: engine,
		Save:   mgr,
		Sink:   sink,
	})
	require.NoError(t, err)
	return &testServer{handler: h, engine: engine, sink: sink}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])

	rec = ts.do(t, http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		State struct {
			Money               float64 `json:"money"`
			ClicksToDevelopLead int     `json:"clicksToDevelopLead"`
		} `json:"state"`
		Rates struct {
			LeadChance float64 `json:"leadChance"`
		} `json:"rates"`
		Staff        []json.RawMessage `json:"staff"`
		Upgrades     []json.RawMessage `json:"upgrades"`
		Achievements []json.RawMessage `json:"achievements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 100, body.State.ClicksToDevelopLead)
	assert.InDelta(t, 0.02, body.Rates.LeadChance, 1e-9)
	assert.Len(t, body.Staff, 3)
	assert.Len(t, body.Upgrades, 3)
	assert.Len(t, body.Achievements, 12)

	// cpmOptimization stays hidden until Amir is hired.
	assert.NotContains(t, rec.Body.String(), "cpmOptimization")
}

func TestGenerateLeadAction(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/actions/generate-lead", "")
	require.Equal(t, http.StatusOK, rec.Code)

	st := ts.engine.Snapshot()
	assert.Equal(t, 1, st.Stats.TotalManualClicks)
}

func TestHireFlow(t *testing.T) {
	ts := newTestServer(t)

	// Broke: conflict.
	rec := ts.do(t, http.MethodPost, "/api/staff/hire", `{"department":"accounts","name":"Azret"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	seedMoney(ts.engine, 100)
	rec = ts.do(t, http.MethodPost, "/api/staff/hire", `{"department":"accounts","name":"Azret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Locked chain member.
	rec = ts.do(t, http.MethodPost, "/api/staff/hire", `{"department":"accounts","name":"Amir"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown department.
	rec = ts.do(t, http.MethodPost, "/api/staff/hire", `{"department":"legal","name":"Azret"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed body.
	rec = ts.do(t, http.MethodPost, "/api/staff/hire", `{nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuyUpgradeFlow(t *testing.T) {
	ts := newTestServer(t)
	seedMoney(ts.engine, 50)

	rec := ts.do(t, http.MethodPost, "/api/upgrades/buy", `{"category":"sales","key":"betterLeadForms"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/upgrades/buy", `{"category":"sales","key":"jetpack"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventEndpointsWithoutPending(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/events/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":false`)

	rec = ts.do(t, http.MethodPost, "/api/events/acknowledge", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/events/choose", `{"choice":0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationsCursor(t *testing.T) {
	ts := newTestServer(t)
	ts.sink.Publish(notify.KindSaved, "Saved!", "", nil)
	ts.sink.Publish(notify.KindSaved, "Saved again!", "", nil)

	rec := ts.do(t, http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []notify.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)

	rec = ts.do(t, http.MethodGet, "/api/notifications?after=1", "")
	var rest []notify.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rest))
	require.Len(t, rest, 1)
	assert.Equal(t, "Saved again!", rest[0].Title)

	rec = ts.do(t, http.MethodGet, "/api/notifications?after=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardDisabled(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enabled":false`)
	assert.Contains(t, rec.Body.String(), `"entries":[]`)
}

func TestSaveAndReset(t *testing.T) {
	ts := newTestServer(t)
	seedMoney(ts.engine, 500)

	rec := ts.do(t, http.MethodPost, "/api/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusBadRequest, rec.Code, "reset without confirmation must refuse")

	rec = ts.do(t, http.MethodPost, "/api/reset", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	st := ts.engine.Snapshot()
	assert.Zero(t, st.Money)
}

// seedMoney credits the balance through the public surface: a direct state
// poke would race the engine's mutex.
func seedMoney(e *game.Engine, amount float64) {
	st := e.Snapshot()
	st.Money = amount
	e.ReplaceState(st)
}
