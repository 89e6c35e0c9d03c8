package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/logger"
	"citybuilder/metrics"
)

// Options configures a Server
type Options struct {
	Addr    string        // listen address for Run
	Tick    time.Duration // real time per simulated day
	SaveDir string
	Name    string // city name used by the save endpoint
	Logger  *slog.Logger

	// AllowedOrigins are browser origins accepted on /ws besides the
	// server's own host, e.g. "http://localhost:3000"
	AllowedOrigins []string
}

// Server runs one city headless and exposes it over HTTP and websocket.
// A single mutex serialises simulated days and edits.
type Server struct {
	mu    sync.Mutex
	city  *city.City
	atlas components.TileAtlas

	opts     Options
	hub      *Hub
	upgrader websocket.Upgrader
	router   chi.Router
	log      *slog.Logger
	done     chan struct{}
	start    sync.Once
}

// BuildRequest is the body of POST /api/city/build
type BuildRequest struct {
	Tile  string           `json:"tile"`
	Start components.Point `json:"start"`
	End   components.Point `json:"end"`
}

// TaxRequest is the body of PUT /api/city/taxes; omitted rates are kept
type TaxRequest struct {
	Residential *float64 `json:"residential,omitempty"`
	Commercial  *float64 `json:"commercial,omitempty"`
	Industrial  *float64 `json:"industrial,omitempty"`
}

// TileView is one cell of GET /api/city/tiles
type TileView struct {
	Type        components.TileType `json:"type"`
	Variant     int                 `json:"variant"`
	Region      int                 `json:"region"`
	Population  float64             `json:"population"`
	StoredGoods float64             `json:"storedGoods"`
}

// MapView is the body of GET /api/city/tiles
type MapView struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []TileView `json:"tiles"`
}

// DayMessage is broadcast after each simulated day
type DayMessage struct {
	Report  city.DayReport `json:"report"`
	Summary city.Summary   `json:"summary"`
}

// New creates a server for c
func New(c *city.City, atlas components.TileAtlas, opts Options) *Server {
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Name == "" {
		opts.Name = "city"
	}
	if opts.SaveDir == "" {
		opts.SaveDir = "."
	}
	l := opts.Logger
	if l == nil {
		l = logger.L()
	}

	s := &Server{
		city:  c,
		atlas: atlas,
		opts:  opts,
		hub:   newHub(l),
		log:   l,
		done:  make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(logger.AccessMiddleware(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api/city", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, s.Summary())
		})
		r.Get("/tiles", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, s.Tiles())
		})
		r.Post("/build", s.handleBuild)
		r.Put("/taxes", s.handleTaxes)
		r.Post("/save", s.handleSave)
	})
	r.Get("/ws", s.handleWS)
	r.Handle("/metrics", metrics.Handler())
	return r
}

// Handler returns the HTTP handler. Start must have been called for
// websocket clients to be served.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start launches the websocket hub; it stops when ctx is cancelled
func (s *Server) Start(ctx context.Context) {
	s.start.Do(func() {
		go func() {
			s.hub.run(ctx)
			close(s.done)
		}()
	})
}

// Run serves HTTP on Options.Addr and simulates one day per tick until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.Start(ctx)

	srv := &http.Server{Addr: s.opts.Addr, Handler: s.router}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("server_listening", "addr", s.opts.Addr, "tick", s.opts.Tick)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			s.log.Info("server_stopped")
			return nil
		case err, ok := <-errc:
			if ok {
				return err
			}
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step simulates exactly one day and broadcasts it
func (s *Server) Step() city.DayReport {
	s.mu.Lock()
	start := time.Now()
	report, _ := s.city.Advance(s.city.TimePerDay)
	elapsed := time.Since(start)
	summary := s.city.Summary()
	s.mu.Unlock()

	metrics.ObserveDay(elapsed)
	metrics.Observe(summary)
	if report.Settled {
		s.log.Info("month_settled", "day", report.Day, "payout", report.Payout, "funds", summary.Funds)
	}
	s.log.Debug("day_advanced", "day", report.Day, "population", summary.Population, "income", report.Income)
	s.broadcast(EventDay, DayMessage{Report: report, Summary: summary})
	return report
}

// Summary returns the city snapshot under the lock
func (s *Server) Summary() city.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city.Summary()
}

// Tiles returns every cell of the map
func (s *Server) Tiles() MapView {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.city.Map
	view := MapView{Width: m.Width, Height: m.Height, Tiles: make([]TileView, len(m.Tiles))}
	for i, t := range m.Tiles {
		view.Tiles[i] = TileView{
			Type:        t.Type,
			Variant:     t.Variant,
			Region:      t.Regions[0],
			Population:  t.Population,
			StoredGoods: t.StoredGoods,
		}
	}
	return view
}

// Build places the requested tile over a rectangle
func (s *Server) Build(req BuildRequest) (city.PlaceResult, error) {
	s.mu.Lock()
	result, err := s.city.PlaceKey(s.atlas, req.Tile, req.Start, req.End)
	summary := s.city.Summary()
	s.mu.Unlock()
	if err != nil {
		return result, err
	}

	metrics.ObservePlacement(result)
	metrics.Observe(summary)
	s.log.Info("tiles_placed", "tile", req.Tile, "placed", result.Placed, "cost", result.Cost)
	s.broadcast(EventPlaced, result)
	return result, nil
}

// SetTaxes applies the rates present in req and returns the new summary
func (s *Server) SetTaxes(req TaxRequest) city.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Residential != nil {
		s.city.SetTax(city.TaxResidential, *req.Residential)
	}
	if req.Commercial != nil {
		s.city.SetTax(city.TaxCommercial, *req.Commercial)
	}
	if req.Industrial != nil {
		s.city.SetTax(city.TaxIndustrial, *req.Industrial)
	}
	return s.city.Summary()
}

// Save writes the city to the configured save directory
func (s *Server) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city.Save(s.opts.SaveDir, s.opts.Name)
}

func (s *Server) broadcast(eventType string, payload any) {
	msg, err := encode(eventType, payload)
	if err != nil {
		s.log.Error("ws_encode_failed", "type", eventType, "err", err)
		return
	}
	s.hub.publish(msg)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	result, err := s.Build(req)
	switch {
	case errors.Is(err, city.ErrUnknownTile):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, city.ErrInsufficientFunds):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleTaxes(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	writeJSON(w, http.StatusOK, s.SetTaxes(req))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.Save(); err != nil {
		s.log.Error("city_save_failed", "err", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": s.opts.Name})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
