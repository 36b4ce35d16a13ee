// Package dashboard serves the SportIQ web UI.
//
// It provides a sport selector backed by a single fetch-and-render session,
// JSON endpoints for the same data, and a WebSocket stream that pushes every
// completed outcome to connected browsers.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"sportiq/internal/predict"
	"sportiq/internal/sports"
	"sportiq/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RateLimitedText is shown when fetch triggers exceed the configured rate.
const RateLimitedText = "Too many fetch requests, please wait a moment and try again."

const defaultHistoryWindow = 24 * time.Hour

// Runner performs one fetch-and-render pass.
type Runner interface {
	Run(ctx context.Context, sport sports.Sport) predict.Outcome
}

// HistoryReader lists persisted predictions.
type HistoryReader interface {
	GetPredictions(sport string, start, end time.Time) ([]storage.PredictionRecord, error)
}

// MetricsInterface is the subset of metrics the dashboard reports.
type MetricsInterface interface {
	RateLimitedInc()
}

// Config holds the dashboard listener settings.
type Config struct {
	Port            int
	FetchRatePerMin int
}

// Dashboard serves the web UI and its JSON and WebSocket endpoints.
type Dashboard struct {
	runner  Runner
	history HistoryReader
	metrics MetricsInterface
	limiter *rate.Limiter
	page    *template.Template
	router  *mux.Router
	server  *http.Server

	upgrader         websocket.Upgrader
	clients          map[*websocket.Conn]bool
	clientsMu        sync.Mutex
	broadcastChannel chan predict.Outcome
	stopChannel      chan struct{}

	latest    *predict.Outcome
	latestMu  sync.RWMutex
	isRunning bool
	stopped   bool
	mu        sync.Mutex
}

// New creates a dashboard. history and m may be nil.
func New(runner Runner, history HistoryReader, m MetricsInterface, c Config) *Dashboard {
	perMin := c.FetchRatePerMin
	if perMin <= 0 {
		perMin = 30
	}

	d := &Dashboard{
		runner:           runner,
		history:          history,
		metrics:          m,
		limiter:          rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		page:             template.Must(template.New("page").Parse(pageTemplate)),
		upgrader:         websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:          make(map[*websocket.Conn]bool),
		broadcastChannel: make(chan predict.Outcome, 16),
		stopChannel:      make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/", d.handleIndex).Methods("GET")
	r.HandleFunc("/fetch", d.handleFetch).Methods("POST")
	r.HandleFunc("/api/predictions/{sport}", d.handlePredictionsAPI).Methods("GET")
	r.HandleFunc("/api/history/{sport}", d.handleHistoryAPI).Methods("GET")
	r.HandleFunc("/ws", d.handleWebSocket).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	d.router = r

	d.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", c.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return d
}

// Handler returns the dashboard's router.
func (d *Dashboard) Handler() http.Handler { return d.router }

// Start starts the broadcaster and begins serving. It returns once the
// server stops; http.ErrServerClosed is not reported as an error.
func (d *Dashboard) Start() error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return fmt.Errorf("dashboard is already running")
	}
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = true
	d.mu.Unlock()

	go d.clientBroadcaster()

	log.Info().Str("address", d.server.Addr).Msg("Starting dashboard server")

	if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}

// Stop closes WebSocket clients and shuts the server down. A Start that
// races with Stop returns immediately.
func (d *Dashboard) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	d.stopped = true
	close(d.stopChannel)

	d.clientsMu.Lock()
	for client := range d.clients {
		client.Close()
	}
	d.clients = make(map[*websocket.Conn]bool)
	d.clientsMu.Unlock()

	if err := d.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown dashboard server")
		return err
	}

	log.Info().Msg("Dashboard stopped")
	return nil
}

// Latest returns the most recent outcome, if any.
func (d *Dashboard) Latest() (predict.Outcome, bool) {
	d.latestMu.RLock()
	defer d.latestMu.RUnlock()
	if d.latest == nil {
		return predict.Outcome{}, false
	}
	return *d.latest, true
}

// allowFetch applies the fetch rate limit.
func (d *Dashboard) allowFetch() bool {
	if d.limiter.Allow() {
		return true
	}
	if d.metrics != nil {
		d.metrics.RateLimitedInc()
	}
	return false
}

func (d *Dashboard) run(ctx context.Context, sport sports.Sport) predict.Outcome {
	out := d.runner.Run(ctx, sport)

	d.latestMu.Lock()
	d.latest = &out
	d.latestMu.Unlock()

	select {
	case d.broadcastChannel <- out:
	default:
		// Channel full, skip this update
	}
	return out
}

func (d *Dashboard) clientBroadcaster() {
	for {
		select {
		case out := <-d.broadcastChannel:
			d.broadcastToClients(out)
		case <-d.stopChannel:
			return
		}
	}
}

func (d *Dashboard) broadcastToClients(out predict.Outcome) {
	data, err := json.Marshal(out)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal outcome for broadcast")
		return
	}

	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()

	for client := range d.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug().Err(err).Msg("Dropping WebSocket client")
			client.Close()
			delete(d.clients, client)
		}
	}
}

type pageData struct {
	Sports   []sports.Sport
	Selected sports.Sport
	Outcome  *predict.Outcome
	Notices  []predict.Notice
}

func (d *Dashboard) renderPage(w http.ResponseWriter, status int, data pageData) {
	if data.Sports == nil {
		data.Sports = sports.AllSports()
	}
	if data.Selected == "" {
		data.Selected = sports.Soccer
	}
	if data.Outcome != nil && data.Notices == nil {
		data.Notices = data.Outcome.Notices
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := d.page.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard page")
	}
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	if out, ok := d.Latest(); ok {
		data.Selected = out.Sport
		data.Outcome = &out
	}
	d.renderPage(w, http.StatusOK, data)
}

func (d *Dashboard) handleFetch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sport, err := sports.ParseSport(r.FormValue("sport"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !d.allowFetch() {
		d.renderPage(w, http.StatusTooManyRequests, pageData{
			Selected: sport,
			Notices:  []predict.Notice{{Level: predict.LevelError, Text: RateLimitedText}},
		})
		return
	}

	out := d.run(r.Context(), sport)
	d.renderPage(w, http.StatusOK, pageData{Selected: sport, Outcome: &out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (d *Dashboard) handlePredictionsAPI(w http.ResponseWriter, r *http.Request) {
	sport, err := sports.ParseSport(mux.Vars(r)["sport"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if !d.allowFetch() {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": RateLimitedText})
		return
	}

	out := d.run(r.Context(), sport)
	status := http.StatusOK
	if out.Err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, out)
}

type historyResponse struct {
	Sport   string                     `json:"sport"`
	Since   time.Time                  `json:"since"`
	Records []storage.PredictionRecord `json:"records"`
}

func (d *Dashboard) handleHistoryAPI(w http.ResponseWriter, r *http.Request) {
	if d.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history is disabled"})
		return
	}

	sport, err := sports.ParseSport(mux.Vars(r)["sport"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	window := defaultHistoryWindow
	if v := r.URL.Query().Get("since"); v != "" {
		window, err = time.ParseDuration(v)
		if err != nil || window <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be a positive duration"})
			return
		}
	}

	end := time.Now()
	start := end.Add(-window)
	records, err := d.history.GetPredictions(sport.String(), start, end)
	if err != nil {
		log.Error().Err(err).Str("sport", sport.String()).Msg("Failed to read prediction history")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	if records == nil {
		records = []storage.PredictionRecord{}
	}

	writeJSON(w, http.StatusOK, historyResponse{Sport: sport.String(), Since: start, Records: records})
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	d.clientsMu.Lock()
	d.clients[conn] = true
	if out, ok := d.Latest(); ok {
		if data, err := json.Marshal(out); err == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
	}
	d.clientsMu.Unlock()

	// Keep connection alive
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	d.clientsMu.Lock()
	delete(d.clients, conn)
	d.clientsMu.Unlock()
}
