package components

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// tileRecord is the on-disk layout of one cell, little-endian
type tileRecord struct {
	Type        int32
	Variant     int32
	Regions     [RegionSlots]int32
	Population  float64
	StoredGoods float32
}

// TileRecordSize is the encoded length of one tile record in bytes
var TileRecordSize = binary.Size(tileRecord{})

// MapFileSize returns the length of a tile file holding width*height
// records. It reports false for negative sizes and for sizes whose byte
// length does not fit in an int64.
func MapFileSize(width, height int) (int64, bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	if width == 0 || height == 0 {
		return 0, true
	}
	w, h, rec := int64(width), int64(height), int64(TileRecordSize)
	if w > math.MaxInt64/h/rec || w*h > math.MaxInt {
		return 0, false
	}
	return w * h * rec, true
}

// WriteTiles writes one fixed-size record per cell in row-major order
func (m *Map) WriteTiles(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := range m.Tiles {
		tile := &m.Tiles[i]
		rec := tileRecord{
			Type:        int32(tile.Type),
			Variant:     int32(tile.Variant),
			Population:  tile.Population,
			StoredGoods: float32(tile.StoredGoods),
		}
		for slot, label := range tile.Regions {
			rec.Regions[slot] = int32(label)
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("write tile %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadMap reads width*height tile records written by WriteTiles. Each
// cell starts from the atlas template of its type; VOID and unknown
// types become grass.
func ReadMap(r io.Reader, width, height, tileSize int, atlas TileAtlas) (*Map, error) {
	if _, ok := MapFileSize(width, height); !ok {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	m := NewMap(width, height, tileSize, atlas.ForType(TileGrass))
	br := bufio.NewReader(r)
	for i := range m.Tiles {
		var rec tileRecord
		if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("read tile %d of %d: %w", i, len(m.Tiles), err)
		}
		tile := atlas.ForType(TileType(rec.Type))
		tile.Variant = int(rec.Variant)
		for slot, label := range rec.Regions {
			tile.Regions[slot] = int(label)
		}
		tile.Population = rec.Population
		tile.StoredGoods = float64(rec.StoredGoods)
		m.Tiles[i] = tile
	}
	return m, nil
}
