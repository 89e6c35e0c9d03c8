package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/data"
	"citybuilder/generation"
	"citybuilder/logger"
	"citybuilder/server"
)

// rootOptions carries the global flags and the settings they resolve to
type rootOptions struct {
	configPath string
	seed       int64
	name       string

	settings  config.Settings
	templates *data.TileTemplateManager
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "citybuilder",
		Short:         "An isometric city builder with a daily economic simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings YAML file")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "random seed for new cities (0 uses the clock)")
	root.PersistentFlags().StringVar(&opts.name, "city", "", "city name used for saving and loading")

	root.AddCommand(
		newPlayCommand(opts),
		newSimulateCommand(opts),
		newServeCommand(opts),
		newInspectCommand(opts),
		newSpritesCommand(opts),
		newTerrainCommand(opts),
	)
	return root
}

// load reads .env, the settings file and the global flags, then sets up
// logging and the tile templates
func (o *rootOptions) load(cmd *cobra.Command) error {
	config.LoadEnvFiles(".env")
	settings, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		settings.City.Seed = o.seed
	}
	if o.name != "" {
		settings.City.Name = o.name
	}
	o.settings = settings
	logger.Setup(settings.Log.Level, settings.Log.Format)

	templates := data.NewTileTemplateManager()
	if err := templates.LoadDefaults(); err != nil {
		return err
	}
	if dir := settings.Tiles.TemplateDir; dir != "" {
		if err := templates.LoadTemplatesFromDirectory(dir); err != nil {
			return fmt.Errorf("loading tile templates: %w", err)
		}
	}
	o.templates = templates
	return nil
}

// resolveSeed returns the configured seed or one taken from the clock
func resolveSeed(s config.Settings) int64 {
	if s.City.Seed != 0 {
		return s.City.Seed
	}
	return time.Now().UnixNano()
}

// cityOptions turns the simulation and economy settings into city options
func cityOptions(s config.Settings) []city.Option {
	return []city.Option{
		city.WithFunds(s.Economy.StartingFunds),
		city.WithTimePerDay(s.Simulation.TimePerDay),
		city.WithRates(s.Simulation.BirthRate, s.Simulation.DeathRate, s.Simulation.PropCanWork),
		city.WithTaxes(s.Economy.ResidentialTax, s.Economy.CommercialTax, s.Economy.IndustrialTax),
		city.WithLegacyWorkerGrowth(s.Simulation.LegacyWorkerGrowth),
	}
}

func terrainGenerator(s config.Settings, seed int64) *generation.TerrainGenerator {
	gen := generation.NewTerrainGenerator(seed)
	gen.SetOptions(generation.TerrainOptions{
		WaterLevel:   s.Terrain.WaterLevel,
		ForestLevel:  s.Terrain.ForestLevel,
		SmoothPasses: s.Terrain.SmoothPasses,
	})
	return gen
}

// newCity generates fresh terrain and founds a city on it
func newCity(s config.Settings, atlas components.TileAtlas) *city.City {
	seed := resolveSeed(s)
	m := terrainGenerator(s, seed).Generate(s.City.Width, s.City.Height, components.DefaultTileSize, atlas)
	logger.L().Info("city_generated", "name", s.City.Name, "seed", seed, "width", m.Width, "height", m.Height)
	return city.New(m, rand.New(rand.NewSource(seed)), cityOptions(s)...)
}

// loadCity loads the named city; city.ErrNoSave is returned when absent
func loadCity(s config.Settings, atlas components.TileAtlas) (*city.City, error) {
	rng := rand.New(rand.NewSource(resolveSeed(s)))
	return city.LoadIfExists(s.City.SaveDir, s.City.Name, atlas, rng, cityOptions(s)...)
}

// loadOrCreate loads the named city when saved, otherwise founds a new one
func loadOrCreate(s config.Settings, atlas components.TileAtlas) (*city.City, error) {
	c, err := loadCity(s, atlas)
	if errors.Is(err, city.ErrNoSave) {
		return newCity(s, atlas), nil
	}
	return c, err
}

func newPlayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the game window (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts)
		},
	}
}

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	var (
		days   int
		save   bool
		load   bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation headless for a number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative, got %d", days)
			}
			s := opts.settings
			atlas := opts.templates.Atlas()

			var c *city.City
			if load {
				var err error
				if c, err = loadCity(s, atlas); err != nil {
					return err
				}
			} else {
				c = newCity(s, atlas)
			}

			for i := 0; i < days; i++ {
				report, _ := c.Advance(c.TimePerDay)
				if report.Settled {
					logger.L().Info("month_settled", "day", report.Day, "payout", report.Payout, "funds", c.Funds)
				}
			}

			if save {
				if err := c.Save(s.City.SaveDir, s.City.Name); err != nil {
					return err
				}
			}
			return printSummary(cmd, c.Summary(), asJSON)
		},
	}
	cmd.Flags().IntVar(&days, "days", city.DaysPerMonth, "number of days to simulate")
	cmd.Flags().BoolVar(&save, "save", false, "save the city afterwards")
	cmd.Flags().BoolVar(&load, "load", false, "continue the saved city instead of founding a new one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the city headless behind an HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := opts.settings
			atlas := opts.templates.Atlas()
			c, err := loadOrCreate(s, atlas)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(c, atlas, server.Options{
				Addr:           s.Server.Addr,
				Tick:           time.Duration(s.Server.TickMillis) * time.Millisecond,
				SaveDir:        s.City.SaveDir,
				Name:           s.City.Name,
				Logger:         logger.L(),
				AllowedOrigins: s.Server.AllowedOrigins,
			})
			return srv.Run(ctx)
		},
	}
}

func newInspectCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the summary of a saved city",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCity(opts.settings, opts.templates.Atlas())
			if err != nil {
				return err
			}
			return printSummary(cmd, c.Summary(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(cmd *cobra.Command, s city.Summary, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(out, "%dx%d city\n", s.Width, s.Height)
	for _, label := range s.InfoLabels() {
		fmt.Fprintln(out, label)
	}
	fmt.Fprintf(out, "taxes: residential %.2f, commercial %.2f, industrial %.2f\n",
		s.ResidentialTax, s.CommercialTax, s.IndustrialTax)
	fmt.Fprintf(out, "zones: %d residential, %d commercial, %d industrial, %d road in %d regions\n",
		s.Zones[components.KeyResidential], s.Zones[components.KeyCommercial],
		s.Zones[components.KeyIndustrial], s.Zones[components.KeyRoad], s.Regions)
	return nil
}
