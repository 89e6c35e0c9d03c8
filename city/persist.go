package city

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"citybuilder/components"
)

// ConfigPath returns the path of a city's ledger file
func ConfigPath(dir, name string) string {
	return filepath.Join(dir, name+"_cfg.dat")
}

// MapPath returns the path of a city's tile file
func MapPath(dir, name string) string {
	return filepath.Join(dir, name+"_map.dat")
}

// Exists reports whether a saved city with this name is present in dir
func Exists(dir, name string) bool {
	_, err := os.Stat(ConfigPath(dir, name))
	return err == nil
}

// Save writes the city's ledger and tile files into dir
func (c *City) Save(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir %s: %w", dir, err)
	}

	cfgPath := ConfigPath(dir, name)
	if err := writeFile(cfgPath, c.writeConfig); err != nil {
		return err
	}

	mapPath := MapPath(dir, name)
	if err := writeFile(mapPath, func(f *os.File) error { return c.Map.WriteTiles(f) }); err != nil {
		return err
	}

	slog.Info("city_saved", "name", name, "dir", dir, "day", c.Day)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (c *City) writeConfig(f *os.File) error {
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "width=%d\n", c.Map.Width)
	fmt.Fprintf(w, "height=%d\n", c.Map.Height)
	fmt.Fprintf(w, "day=%d\n", c.Day)
	for _, field := range c.ledgerFields() {
		fmt.Fprintf(w, "%s=%s\n", field.key, strconv.FormatFloat(*field.value, 'g', -1, 64))
	}
	return w.Flush()
}

type ledgerField struct {
	key   string
	value *float64
}

// ledgerFields lists the float entries of the ledger file in save order
func (c *City) ledgerFields() []ledgerField {
	return []ledgerField{
		{"populationPool", &c.PopulationPool},
		{"employmentPool", &c.EmploymentPool},
		{"population", &c.Population},
		{"employable", &c.Employable},
		{"birthRate", &c.BirthRate},
		{"deathRate", &c.DeathRate},
		{"residentialTax", &c.ResidentialTax},
		{"commercialTax", &c.CommercialTax},
		{"industrialTax", &c.IndustrialTax},
		{"funds", &c.Funds},
		{"earnings", &c.Earnings},
	}
}

// Load reads a saved city from dir. Malformed ledger lines are logged
// and skipped, keeping the default for that field. Tiles of unknown type
// load as grass. Regions are recomputed and the tile order reshuffled.
func Load(dir, name string, atlas components.TileAtlas, rng components.RNG, opts ...Option) (*City, error) {
	cfgPath := ConfigPath(dir, name)
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfgPath, err)
	}
	defer f.Close()

	c := &City{
		Map:            components.NewMap(0, 0, components.DefaultTileSize, atlas.ForType(components.TileGrass)),
		BirthRate:      DefaultBirthRate,
		DeathRate:      DefaultDeathRate,
		PropCanWork:    DefaultPropCanWork,
		ResidentialTax: DefaultTax,
		CommercialTax:  DefaultTax,
		IndustrialTax:  DefaultTax,
		TimePerDay:     DefaultTimePerDay,
		rng:            rng,
	}
	for _, opt := range opts {
		opt(c)
	}

	width, height, err := c.readConfig(f, cfgPath)
	if err != nil {
		return nil, err
	}
	wantSize, ok := components.MapFileSize(width, height)
	if !ok {
		return nil, fmt.Errorf("%s: size %dx%d: %w", cfgPath, width, height, ErrCorruptSave)
	}

	mapPath := MapPath(dir, name)
	mf, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", mapPath, err)
	}
	defer mf.Close()

	info, err := mf.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", mapPath, err)
	}
	if info.Size() != wantSize {
		return nil, fmt.Errorf("%s: %d bytes, want %d for %dx%d: %w",
			mapPath, info.Size(), wantSize, width, height, ErrCorruptSave)
	}

	m, err := components.ReadMap(mf, width, height, components.DefaultTileSize, atlas)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", mapPath, err)
	}
	c.Map = m

	c.TileChanged()
	c.ShuffleTiles()

	slog.Info("city_loaded", "name", name, "dir", dir, "width", width, "height", height, "day", c.Day)
	return c, nil
}

// readConfig applies every recognised key=value line to c and returns
// the map size it names.
func (c *City) readConfig(f *os.File, path string) (width, height int, err error) {
	floats := make(map[string]*float64)
	for _, field := range c.ledgerFields() {
		floats[field.key] = field.value
	}
	ints := map[string]*int{
		"width":  &width,
		"height": &height,
		"day":    &c.Day,
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || value == "" {
			slog.Error("city_config_missing_value", "path", path, "line", lineNo, "key", key)
			continue
		}

		if target, ok := ints[key]; ok {
			n, perr := strconv.Atoi(value)
			if perr != nil {
				slog.Error("city_config_bad_value", "path", path, "line", lineNo, "key", key, "error", perr)
				continue
			}
			*target = n
		} else if target, ok := floats[key]; ok {
			v, perr := strconv.ParseFloat(value, 64)
			if perr != nil {
				slog.Error("city_config_bad_value", "path", path, "line", lineNo, "key", key, "error", perr)
				continue
			}
			*target = v
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return width, height, nil
}

// ErrCorruptSave reports a ledger and tile file that do not agree
var ErrCorruptSave = errors.New("corrupt save")

// ErrNoSave reports that no saved city exists under the requested name
var ErrNoSave = errors.New("no saved city")

// LoadIfExists loads the named city, returning ErrNoSave when its ledger
// file is missing.
func LoadIfExists(dir, name string, atlas components.TileAtlas, rng components.RNG, opts ...Option) (*City, error) {
	if !Exists(dir, name) {
		return nil, fmt.Errorf("%s in %s: %w", name, dir, ErrNoSave)
	}
	return Load(dir, name, atlas, rng, opts...)
}
