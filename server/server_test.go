package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"citybuilder/city"
	"citybuilder/components"
)

func newTestServer(t *testing.T, funds float64, origins ...string) (*Server, *httptest.Server) {
	t.Helper()
	atlas := components.DefaultTileAtlas()
	m := components.NewMap(8, 8, components.DefaultTileSize, atlas[components.KeyGrass])
	c := city.New(m, rand.New(rand.NewSource(1)), city.WithFunds(funds))

	s := New(c, atlas, Options{
		SaveDir:        t.TempDir(),
		Name:           "test",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: origins,
	})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return s, ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, 0)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("health = %d %q", resp.StatusCode, body)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	_, ts := newTestServer(t, 5000)
	var s city.Summary
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/city", nil, &s); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if s.Funds != 5000 || s.Width != 8 || s.Height != 8 {
		t.Errorf("summary = %+v", s)
	}
}

func TestBuildEndpoint(t *testing.T) {
	srv, ts := newTestServer(t, 1000)

	var result city.PlaceResult
	req := BuildRequest{Tile: "road", Start: components.Point{X: 0, Y: 0}, End: components.Point{X: 3, Y: 0}}
	if code := doJSON(t, http.MethodPost, ts.URL+"/api/city/build", req, &result); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if result.Placed != 4 || result.Cost != 400 {
		t.Errorf("result = %+v", result)
	}
	if got := srv.Summary().Funds; got != 600 {
		t.Errorf("funds = %v, want 600", got)
	}

	var view MapView
	doJSON(t, http.MethodGet, ts.URL+"/api/city/tiles", nil, &view)
	if len(view.Tiles) != 64 || view.Tiles[3].Type != components.TileRoad || view.Tiles[3].Region != 1 {
		t.Errorf("tiles view = %+v", view.Tiles[:4])
	}
}

func TestBuildEndpointErrors(t *testing.T) {
	_, ts := newTestServer(t, 100)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown tile", BuildRequest{Tile: "castle"}, http.StatusBadRequest},
		{"too expensive", BuildRequest{Tile: "residential", End: components.Point{X: 2, Y: 2}}, http.StatusPaymentRequired},
		{"malformed", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]string
			if code := doJSON(t, http.MethodPost, ts.URL+"/api/city/build", tt.body, &out); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
			if out["error"] == "" {
				t.Errorf("no error message")
			}
		})
	}
}

func TestTaxesEndpoint(t *testing.T) {
	_, ts := newTestServer(t, 0)
	rate := 0.2
	high := 3.0
	var s city.Summary
	doJSON(t, http.MethodPut, ts.URL+"/api/city/taxes", TaxRequest{Residential: &rate, Industrial: &high}, &s)
	if s.ResidentialTax != 0.2 || s.IndustrialTax != 1 || s.CommercialTax != city.DefaultTax {
		t.Errorf("taxes = %v %v %v", s.ResidentialTax, s.CommercialTax, s.IndustrialTax)
	}
}

func TestSaveEndpoint(t *testing.T) {
	srv, ts := newTestServer(t, 0)
	var out map[string]string
	if code := doJSON(t, http.MethodPost, ts.URL+"/api/city/save", nil, &out); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !city.Exists(srv.opts.SaveDir, "test") {
		t.Errorf("save files not written")
	}
}

func TestStepAdvancesOneDay(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	for i := 1; i <= 3; i++ {
		if report := srv.Step(); report.Day != i {
			t.Fatalf("step %d reported day %d", i, report.Day)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, ts := newTestServer(t, 0)
	srv.Step()
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "citybuilder_days_total") {
		t.Errorf("metrics output missing citybuilder_days_total")
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebsocketStream(t *testing.T) {
	srv, ts := newTestServer(t, 1000)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	env := readEnvelope(t, conn)
	if env.Type != EventSummary {
		t.Fatalf("first message = %q, want summary", env.Type)
	}
	var s city.Summary
	if err := json.Unmarshal(env.Payload, &s); err != nil || s.Funds != 1000 {
		t.Errorf("summary payload = %s", env.Payload)
	}

	// The summary is written only after the hub registered the client.
	srv.Step()
	env = readEnvelope(t, conn)
	if env.Type != EventDay {
		t.Fatalf("message = %q, want day", env.Type)
	}

	build, _ := json.Marshal(BuildRequest{Tile: "road", End: components.Point{X: 1, Y: 0}})
	if err := conn.WriteJSON(Envelope{Type: ActionBuild, Payload: build}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for env.Type != EventPlaced {
		env = readEnvelope(t, conn)
	}
	var result city.PlaceResult
	if err := json.Unmarshal(env.Payload, &result); err != nil || result.Placed != 2 {
		t.Errorf("placed payload = %s", env.Payload)
	}
}

func TestWebsocketOrigin(t *testing.T) {
	_, ts := newTestServer(t, 1000, "http://localhost:3000")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"no origin", "", true},
		{"same host", ts.URL, true},
		{"configured origin", "http://localhost:3000", true},
		{"foreign page", "http://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if tt.ok {
				if err != nil {
					t.Fatalf("dial: %v", err)
				}
				conn.Close()
				return
			}
			if err == nil {
				conn.Close()
				t.Fatalf("dial from %s succeeded", tt.origin)
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Errorf("response = %v, want 403", resp)
			}
		})
	}
}
