package main

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
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/serverapp"
)

// testApp wires the full stack the way main does, against a temp data dir.
type testApp struct {
	handler http.Handler
	engine  *game.Engine
}

func newTestApp(t *testing.T, dataDir string) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.Balance.Autosave = false

	store, err := save.NewFileStore(cfg.DataDir)
	require.NoError(t, err)
	clock := game.NewFakeClock(time.Unix(1_700_000_000, 0))
	mgr := save.NewManager(store, cfg.Balance, clock, nil)

	sink := notify.NewMemorySink(256)
	res := mgr.Load()
	engine := game.New(game.Options{
		State:    res.State,
		Balance:  cfg.Balance,
		Clock:    clock,
		Rand:     rand.New(rand.NewSource(1)),
		Notifier: sink,
		Saver:    mgr,
	})

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Engine: engine,
		Save:   mgr,
		Sink:   sink,
	})
	require.NoError(t, err)
	return &testApp{handler: handler, engine: engine}
}

func (a *testApp) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_SaveSurvivesRestart(t *testing.T) {
	dataDir := t.TempDir()

	app := newTestApp(t, dataDir)
	app.engine.ReplaceState(seededState(t, 250))

	res := app.request(t, http.MethodPost, "/api/staff/hire", `{"department":"accounts","name":"Azret"}`)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	res = app.request(t, http.MethodPost, "/api/rename", `{"playerName":"Mukhtar","companyName":"Reports"}`)
	require.Equal(t, http.StatusOK, res.Code)
	res = app.request(t, http.MethodPost, "/api/save", "")
	require.Equal(t, http.StatusOK, res.Code)

	// Same data dir, fresh process.
	restarted := newTestApp(t, dataDir)
	st := restarted.engine.Snapshot()
	assert.Equal(t, "Mukhtar", st.PlayerName)
	assert.True(t, st.HiredStaff["Azret"])
	assert.InDelta(t, 245, st.Money, 1e-9)
}

func TestServer_RequestIDAndStateShape(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	res := app.request(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header().Get("X-Request-Id"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	for _, key := range []string{"state", "rates", "staff", "upgrades", "achievements"} {
		assert.Contains(t, body, key)
	}
}

func seededState(t *testing.T, money float64) *game.State {
	t.Helper()
	st := game.NewState(config.DefaultBalance())
	st.Money = money
	return st
}
