package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citybuilder/city"
)

var (
	Population = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_population",
		Help: "City population including the homeless",
	})
	Homeless = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_homeless",
		Help: "Residents waiting in the population pool",
	})
	Employable = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_employable",
		Help: "Residents able to work",
	})
	Unemployed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_unemployed",
		Help: "Workers waiting in the employment pool",
	})
	Funds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_funds",
		Help: "Money available for building",
	})
	Earnings = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_earnings",
		Help: "Tax income accrued since the last monthly payout",
	})
	Day = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_day",
		Help: "Current simulated day",
	})
	Regions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuilder_regions",
		Help: "Connected transport networks",
	})
	DaysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "citybuilder_days_total",
		Help: "Total simulated days run by this process",
	})
	DayDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "citybuilder_day_duration_ms",
		Help:    "Wall time spent simulating one day in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50, 100},
	})
	TilesPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "citybuilder_tiles_placed_total",
		Help: "Tiles built by type",
	}, []string{"tile"})
)

func init() {
	prometheus.MustRegister(Population)
	prometheus.MustRegister(Homeless)
	prometheus.MustRegister(Employable)
	prometheus.MustRegister(Unemployed)
	prometheus.MustRegister(Funds)
	prometheus.MustRegister(Earnings)
	prometheus.MustRegister(Day)
	prometheus.MustRegister(Regions)
	prometheus.MustRegister(DaysTotal)
	prometheus.MustRegister(DayDurationMs)
	prometheus.MustRegister(TilesPlacedTotal)
}

// Observe copies a city snapshot into the gauges
func Observe(s city.Summary) {
	Population.Set(s.Population)
	Homeless.Set(s.Homeless)
	Employable.Set(s.Employable)
	Unemployed.Set(s.Unemployed)
	Funds.Set(s.Funds)
	Earnings.Set(s.Earnings)
	Day.Set(float64(s.Day))
	Regions.Set(float64(s.Regions))
}

// ObserveDay records one simulated day and how long it took
func ObserveDay(d time.Duration) {
	DaysTotal.Inc()
	DayDurationMs.Observe(float64(d.Microseconds()) / 1000)
}

// ObservePlacement counts a completed build
func ObservePlacement(result city.PlaceResult) {
	if result.Placed > 0 {
		TilesPlacedTotal.WithLabelValues(result.Tile.String()).Add(float64(result.Placed))
	}
}

// Handler serves the registered metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
