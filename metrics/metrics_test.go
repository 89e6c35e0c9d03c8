package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"citybuilder/city"
	"citybuilder/components"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestObserveExportsSummary(t *testing.T) {
	Observe(city.Summary{Day: 42, Population: 1200, Homeless: 30, Funds: 5500, Regions: 3})
	ObserveDay(1500 * time.Microsecond)
	ObservePlacement(city.PlaceResult{Tile: components.TileRoad, Placed: 4})

	body := scrape(t)
	for _, want := range []string{
		"citybuilder_day 42",
		"citybuilder_population 1200",
		"citybuilder_homeless 30",
		"citybuilder_funds 5500",
		"citybuilder_regions 3",
		"citybuilder_day_duration_ms_count",
		`citybuilder_tiles_placed_total{tile="Road"} 4`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
