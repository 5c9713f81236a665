package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/achievement"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/game"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/httpmw"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/leaderboard"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

type Options struct {
	Config *config.Config
	Engine *game.Engine
	Save   *save.Manager
	Sink   *notify.MemorySink
	Board  *leaderboard.Client
	Logger *log.Logger
}

// NewHandler wires the JSON API the render collaborator polls and posts
// against. Every game mutation is one POST; /api/state is the single
// source of truth for drawing a frame.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &server{
		cfg:    opts.Config,
		engine: opts.Engine,
		save:   opts.Save,
		sink:   opts.Sink,
		board:  opts.Board,
		logger: opts.Logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "monetization-sim",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/actions/generate-lead", s.handleGenerateLead)
	mux.HandleFunc("/api/actions/develop-lead", s.handleDevelopLead)
	mux.HandleFunc("/api/staff/hire", s.handleHire)
	mux.HandleFunc("/api/upgrades/buy", s.handleBuyUpgrade)
	mux.HandleFunc("/api/settings/toggle", s.handleToggleSetting)
	mux.HandleFunc("/api/settings/speed", s.handleSpeed)
	mux.HandleFunc("/api/rename", s.handleRename)
	mux.HandleFunc("/api/events/pending", s.handlePendingEvent)
	mux.HandleFunc("/api/events/acknowledge", s.handleAcknowledgeEvent)
	mux.HandleFunc("/api/events/choose", s.handleChooseEvent)
	mux.HandleFunc("/api/notifications", s.handleNotifications)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/save", s.handleSave)
	mux.HandleFunc("/api/reset", s.handleReset)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, opts.Config)
	})

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

type server struct {
	cfg    *config.Config
	engine *game.Engine
	save   *save.Manager
	sink   *notify.MemorySink
	board  *leaderboard.Client
	logger *log.Logger
}

// stateResponse is one frame's worth of truth: raw state, derived rates,
// and the catalogs annotated with what the player can currently do.
type stateResponse struct {
	State        *game.State       `json:"state"`
	Rates        game.Rates        `json:"rates"`
	Staff        []staffView       `json:"staff"`
	Upgrades     []categoryView    `json:"upgrades"`
	Achievements []achievementView `json:"achievements"`
	PendingEvent *event.Def        `json:"pendingEvent,omitempty"`

	// Input capabilities the client unlocks by playing. The server keeps no
	// timer for hold-to-repeat; the client drives it once this flips.
	HoldRepeatUnlocked bool `json:"holdRepeatUnlocked"`
}

type staffView struct {
	Department staff.Department `json:"department"`
	Name       string           `json:"name"`
	Cost       float64          `json:"cost"`
	Affordable bool             `json:"affordable"`
	Members    []memberView     `json:"members"`
}

type memberView struct {
	Name     string `json:"name"`
	Hired    bool   `json:"hired"`
	Unlocked bool   `json:"unlocked"`
}

type categoryView struct {
	Key      string        `json:"key"`
	Name     string        `json:"name"`
	Upgrades []upgradeView `json:"upgrades"`
}

type upgradeView struct {
	upgrade.Def
	State       *upgrade.State `json:"state"`
	CurrentCost float64        `json:"currentCost"`
	Maxed       bool           `json:"maxed"`
	Affordable  bool           `json:"affordable"`
}

type achievementView struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	st := s.engine.Snapshot()
	resp := stateResponse{
		State:        st,
		Rates:        s.engine.CurrentRates(),
		Staff:        staffViews(st),
		Upgrades:     upgradeViews(st),
		Achievements: achievementViews(st),
	}
	if u, ok := st.Upgrades[upgrade.KeyCoffeeMachine]; ok && u.Purchased {
		resp.HoldRepeatUnlocked = true
	}
	if def, ok := s.engine.PendingEvent(); ok {
		resp.PendingEvent = &def
	}
	writeJSON(w, http.StatusOK, resp)
}

func staffViews(st *game.State) []staffView {
	views := []staffView{}
	for _, def := range staff.Departments() {
		cost := st.StaffCosts[def.Department]
		v := staffView{
			Department: def.Department,
			Name:       def.Name,
			Cost:       cost,
			Affordable: st.Money >= cost,
		}
		for _, m := range def.Members {
			v.Members = append(v.Members, memberView{
				Name:     m,
				Hired:    st.HiredStaff[m],
				Unlocked: staff.Unlocked(m, st.HiredStaff),
			})
		}
		views = append(views, v)
	}
	return views
}

func upgradeViews(st *game.State) []categoryView {
	views := []categoryView{}
	for _, cat := range upgrade.Catalog() {
		cv := categoryView{Key: cat.Key, Name: cat.Name}
		for _, def := range cat.Upgrades {
			if !upgrade.Visible(def, st.HiredStaff) {
				continue
			}
			ust := st.Upgrades[def.Key]
			if ust == nil {
				ust = upgrade.InitialState(def)
			}
			cost := upgrade.CurrentCost(def, ust)
			cv.Upgrades = append(cv.Upgrades, upgradeView{
				Def:         def,
				State:       ust,
				CurrentCost: cost,
				Maxed:       upgrade.Maxed(def, ust, st.ClicksToDevelopLead),
				Affordable:  st.Money >= cost,
			})
		}
		views = append(views, cv)
	}
	return views
}

func achievementViews(st *game.State) []achievementView {
	views := []achievementView{}
	for _, def := range achievement.Registry() {
		unlocked := false
		if a := st.Achievements[def.Key]; a != nil {
			unlocked = a.Unlocked
		}
		views = append(views, achievementView{
			Key:         def.Key,
			Name:        def.Name,
			Description: def.Description,
			Unlocked:    unlocked,
		})
	}
	return views
}

func (s *server) handleGenerateLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.engine.GenerateLead(true)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleDevelopLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.engine.DevelopLead(true)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleHire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Department staff.Department `json:"department"`
		Name       string           `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.engine.HireStaff(req.Department, req.Name); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Category string `json:"category"`
		Key      string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.engine.BuyUpgrade(req.Category, req.Key); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleToggleSetting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.engine.ToggleSetting(req.Name); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Multiplier float64 `json:"multiplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.engine.SetStaffSpeedMultiplier(req.Multiplier)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleRename(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		PlayerName  string `json:"playerName"`
		CompanyName string `json:"companyName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.engine.Rename(req.PlayerName, req.CompanyName)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handlePendingEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	def, ok := s.engine.PendingEvent()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"pending": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": true, "event": def})
}

func (s *server) handleAcknowledgeEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.engine.AcknowledgeEvent(); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleChooseEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.engine.ChooseEventOption(req.Choice); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.sink == nil {
		writeJSON(w, http.StatusOK, []notify.Notification{})
		return
	}
	after := 0
	if v := r.URL.Query().Get("after"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("after must be an integer"))
			return
		}
		after = n
	}
	writeJSON(w, http.StatusOK, s.sink.Since(after))
}

func (s *server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	feed := s.board.Feed()
	if feed == nil {
		feed = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": s.cfg.Leaderboard.Enabled,
		"entries": feed,
	})
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.engine.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.save == nil {
		writeError(w, http.StatusConflict, errors.New("no persistence configured"))
		return
	}
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Confirm {
		writeError(w, http.StatusBadRequest, errors.New("reset requires confirm:true"))
		return
	}
	fresh, err := s.save.Reset()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.engine.ReplaceState(fresh)
	if s.sink != nil {
		s.sink.Clear()
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeGameError maps the engine's sentinel errors onto HTTP statuses:
// unknown catalog entries are 404, rule violations are 409, malformed
// requests are 400.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownDepartment),
		errors.Is(err, game.ErrUnknownStaff),
		errors.Is(err, game.ErrUnknownUpgrade),
		errors.Is(err, game.ErrUnknownSetting),
		errors.Is(err, event.ErrNoPendingEvent):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrStaffLocked),
		errors.Is(err, game.ErrAlreadyHired),
		errors.Is(err, game.ErrUpgradeMaxed):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, event.ErrNotChoiceEvent),
		errors.Is(err, event.ErrChoiceRequired),
		errors.Is(err, event.ErrBadChoice):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
