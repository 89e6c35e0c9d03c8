package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"citybuilder/components"
)

//go:embed tiles.json
var defaultTiles []byte

// TileTemplate describes one placeable tile in a template file
type TileTemplate struct {
	ID   string `json:"id"`   // Atlas key, e.g. "residential"
	Name string `json:"name"` // Menu label
	Type string `json:"type"` // One of the built-in tile type keys

	Cost           int `json:"cost"`
	MaxPopPerLevel int `json:"maxPopPerLevel"`
	MaxLevels      int `json:"maxLevels"`

	// Visual appearance
	TopColor  string `json:"topColor"`  // Ground colour in hex format (e.g. "#60A040")
	SideColor string `json:"sideColor"` // Wall colour in hex format
	Height    int    `json:"height"`    // Sprite height in tiles
}

// TileTemplateManager manages all tile templates
type TileTemplateManager struct {
	Templates map[string]*TileTemplate
}

// NewTileTemplateManager creates a new template manager
func NewTileTemplateManager() *TileTemplateManager {
	return &TileTemplateManager{
		Templates: make(map[string]*TileTemplate),
	}
}

// LoadDefaults loads the built-in tile templates
func (m *TileTemplateManager) LoadDefaults() error {
	if err := m.loadTemplates(defaultTiles); err != nil {
		return fmt.Errorf("failed to load built-in templates: %w", err)
	}
	return nil
}

// LoadTemplatesFromDirectory loads all JSON template files from a directory
func (m *TileTemplateManager) LoadTemplatesFromDirectory(dirPath string) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		fullPath := filepath.Join(dirPath, file.Name())
		if err := m.LoadTemplateFromFile(fullPath); err != nil {
			return fmt.Errorf("failed to load template from %s: %w", file.Name(), err)
		}
	}

	return nil
}

// LoadTemplateFromFile loads the templates listed in a single JSON file.
// Later files override templates with the same ID.
func (m *TileTemplateManager) LoadTemplateFromFile(filePath string) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}
	return m.loadTemplates(raw)
}

func (m *TileTemplateManager) loadTemplates(raw []byte) error {
	var templates []*TileTemplate
	if err := json.Unmarshal(raw, &templates); err != nil {
		return fmt.Errorf("failed to parse template JSON: %w", err)
	}

	for _, template := range templates {
		if err := ValidateTileTemplate(template); err != nil {
			return err
		}
		m.Templates[template.ID] = template
	}
	return nil
}

// GetTemplate returns a template by ID
func (m *TileTemplateManager) GetTemplate(id string) (*TileTemplate, bool) {
	template, ok := m.Templates[id]
	return template, ok
}

// IDs returns the template IDs in sorted order
func (m *TileTemplateManager) IDs() []string {
	ids := make([]string, 0, len(m.Templates))
	for id := range m.Templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Atlas builds a tile atlas from the loaded templates on top of the
// built-in one, so a file only needs to list what it changes.
func (m *TileTemplateManager) Atlas() components.TileAtlas {
	atlas := components.DefaultTileAtlas()
	for id, template := range m.Templates {
		tileType, _ := components.TypeForKey(template.Type)
		atlas[id] = components.NewTile(tileType, template.Cost, template.MaxPopPerLevel, template.MaxLevels)
	}
	return atlas
}

// Mapping builds the visual definitions of the tile types. Only the
// template whose ID equals its type key restyles that type.
func (m *TileTemplateManager) Mapping() *components.TileMapping {
	mapping := components.NewTileMapping()
	for _, id := range m.IDs() {
		template := m.Templates[id]
		tileType, ok := components.TypeForKey(template.Type)
		if !ok || id != template.Type {
			continue
		}
		def := mapping.GetTileDefinition(tileType)
		if template.TopColor != "" {
			def.Top = ParseHexColor(template.TopColor)
		}
		if template.SideColor != "" {
			def.Side = ParseHexColor(template.SideColor)
		}
		if template.Height > 0 {
			def.Height = template.Height
		}
		mapping.Definitions[tileType] = def
	}
	return mapping
}

// ValidateTileTemplate ensures that the tile template has all required fields
func ValidateTileTemplate(template *TileTemplate) error {
	if template == nil {
		return fmt.Errorf("tile template is null")
	}
	if template.ID == "" {
		return fmt.Errorf("tile template is missing an ID")
	}
	if _, ok := components.TypeForKey(template.Type); !ok {
		return fmt.Errorf("tile template %s has unknown type %q: %w", template.ID, template.Type, components.ErrUnknownTileType)
	}
	if template.Cost < 0 {
		return fmt.Errorf("tile template %s has negative cost", template.ID)
	}
	if template.MaxLevels < 1 {
		return fmt.Errorf("tile template %s must have at least one level", template.ID)
	}
	if template.MaxPopPerLevel < 0 {
		return fmt.Errorf("tile template %s has negative capacity", template.ID)
	}
	return nil
}

// ParseHexColor converts a hex color string to color.RGBA
func ParseHexColor(hex string) (c color.RGBA) {
	c.A = 0xff

	if len(hex) < 7 {
		return
	}

	format := "#%02x%02x%02x"
	_, err := fmt.Sscanf(hex, format, &c.R, &c.G, &c.B)
	if err != nil {
		return color.RGBA{255, 255, 255, 255} // Default white on error
	}

	return
}
