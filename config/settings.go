package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is everything the game and the headless commands read at start-up
type Settings struct {
	City       CitySettings       `yaml:"city"`
	Simulation SimulationSettings `yaml:"simulation"`
	Economy    EconomySettings    `yaml:"economy"`
	Terrain    TerrainSettings    `yaml:"terrain"`
	Tiles      TileSettings       `yaml:"tiles"`
	UI         UISettings         `yaml:"ui"`
	Log        LogSettings        `yaml:"log"`
	Server     ServerSettings     `yaml:"server"`
}

// CitySettings names the city and sizes new maps
type CitySettings struct {
	Name    string `yaml:"name"`
	SaveDir string `yaml:"save_dir"`
	Seed    int64  `yaml:"seed"` // 0 picks a seed from the clock
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// SimulationSettings holds the demographic constants and the day length
type SimulationSettings struct {
	TimePerDay         float64 `yaml:"time_per_day"`
	BirthRate          float64 `yaml:"birth_rate"`
	DeathRate          float64 `yaml:"death_rate"`
	PropCanWork        float64 `yaml:"prop_can_work"`
	LegacyWorkerGrowth bool    `yaml:"legacy_worker_growth"`
}

// EconomySettings holds the starting ledger of a new city
type EconomySettings struct {
	StartingFunds  float64 `yaml:"starting_funds"`
	ResidentialTax float64 `yaml:"residential_tax"`
	CommercialTax  float64 `yaml:"commercial_tax"`
	IndustrialTax  float64 `yaml:"industrial_tax"`
}

// TerrainSettings tunes generated maps
type TerrainSettings struct {
	WaterLevel   float64 `yaml:"water_level"`
	ForestLevel  float64 `yaml:"forest_level"`
	SmoothPasses int     `yaml:"smooth_passes"`
}

// TileSettings points at optional tile template files
type TileSettings struct {
	TemplateDir string `yaml:"template_dir"`
}

// UISettings configures the window
type UISettings struct {
	FontPath string  `yaml:"font_path"` // TTF/OTF file; empty uses the bitmap font
	FontSize float64 `yaml:"font_size"`
}

// LogSettings configures the process logger
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerSettings configures the headless server
type ServerSettings struct {
	Addr       string `yaml:"addr"`
	TickMillis int    `yaml:"tick_millis"` // real time per simulated day
	// AllowedOrigins lists extra browser origins that may open the
	// websocket; same-host origins are always accepted
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the settings used when no file is given
func Default() Settings {
	return Settings{
		City: CitySettings{
			Name:    "city",
			SaveDir: ".",
			Width:   64,
			Height:  64,
		},
		Simulation: SimulationSettings{
			TimePerDay:  1.0,
			BirthRate:   0.00055,
			DeathRate:   0.00023,
			PropCanWork: 0.50,
		},
		Economy: EconomySettings{
			StartingFunds:  10000,
			ResidentialTax: 0.05,
			CommercialTax:  0.05,
			IndustrialTax:  0.05,
		},
		Terrain: TerrainSettings{
			WaterLevel:   0.15,
			ForestLevel:  0.75,
			SmoothPasses: 1,
		},
		UI: UISettings{
			FontSize: 14,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Server: ServerSettings{
			Addr:       ":8080",
			TickMillis: 1000,
		},
	}
}

// Load reads settings from a YAML file on top of the defaults. An empty
// path returns the defaults. Environment overrides are applied last.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading settings file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parsing settings YAML: %w", err)
		}
	}
	s.ApplyEnv()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are ignored and variables already set are kept.
func LoadEnvFiles(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides settings from CITY_* and LOG_* environment variables
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("CITY_NAME"); v != "" {
		s.City.Name = v
	}
	if v := os.Getenv("CITY_SAVE_DIR"); v != "" {
		s.City.SaveDir = v
	}
	if v := os.Getenv("CITY_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.City.Seed = n
		} else {
			slog.Warn("settings_bad_env", "key", "CITY_SEED", "value", v)
		}
	}
	if v := os.Getenv("CITY_SERVER_ADDR"); v != "" {
		s.Server.Addr = v
	}
	if v := os.Getenv("CITY_ALLOWED_ORIGINS"); v != "" {
		s.Server.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.Server.AllowedOrigins = append(s.Server.AllowedOrigins, origin)
			}
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		s.Log.Format = v
	}
}

// ErrInvalidSettings wraps every validation failure
var ErrInvalidSettings = errors.New("invalid settings")

// Validate rejects settings the simulation cannot run with
func (s Settings) Validate() error {
	if s.City.Name == "" {
		return fmt.Errorf("%w: city name is empty", ErrInvalidSettings)
	}
	if s.City.Width <= 0 || s.City.Height <= 0 {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidSettings, s.City.Width, s.City.Height)
	}
	if s.Simulation.TimePerDay <= 0 {
		return fmt.Errorf("%w: time_per_day must be positive", ErrInvalidSettings)
	}
	taxes := map[string]float64{
		"residential_tax": s.Economy.ResidentialTax,
		"commercial_tax":  s.Economy.CommercialTax,
		"industrial_tax":  s.Economy.IndustrialTax,
	}
	for name, rate := range taxes {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s %.2f outside [0, 1]", ErrInvalidSettings, name, rate)
		}
	}
	if s.Server.TickMillis <= 0 {
		return fmt.Errorf("%w: tick_millis must be positive", ErrInvalidSettings)
	}
	return nil
}
