package components

import "math"

// IsoPosition returns the world pixel position of the top-left corner
// of the ground diamond of cell (x, y). Diamonds are 2*TileSize wide and
// TileSize high; the map is shifted right so no cell lands left of zero.
func (m *Map) IsoPosition(x, y int) (float64, float64) {
	ts := float64(m.TileSize)
	px := float64(x-y)*ts + float64(m.Width)*ts
	py := float64(x+y) * ts * 0.5
	return px, py
}

// GridAt returns the cell whose ground diamond contains world pixel
// (px, py). ok is false when the point is outside the map.
func (m *Map) GridAt(px, py float64) (p Point, ok bool) {
	if m.TileSize <= 0 {
		return Point{}, false
	}
	ts := float64(m.TileSize)
	w := float64(m.Width)
	fx := py/ts + px/(2*ts) - w*0.5 - 0.5
	fy := py/ts - px/(2*ts) + w*0.5 + 0.5
	p = Point{X: int(math.Floor(fx)), Y: int(math.Floor(fy))}
	return p, m.InBounds(p.X, p.Y)
}

// IsoBounds returns the world pixel size of the whole map
func (m *Map) IsoBounds() (width, height float64) {
	ts := float64(m.TileSize)
	return float64(m.Width+m.Height) * ts, float64(m.Width+m.Height) * ts * 0.5
}

// ScreenToWorld converts a screen pixel to world pixels for a viewport
// of vw x vh screen pixels
func (c *CameraComponent) ScreenToWorld(sx, sy, vw, vh float64) (float64, float64) {
	return c.X + (sx-vw*0.5)*c.Zoom, c.Y + (sy-vh*0.5)*c.Zoom
}

// WorldToScreen is the inverse of ScreenToWorld
func (c *CameraComponent) WorldToScreen(wx, wy, vw, vh float64) (float64, float64) {
	return (wx-c.X)/c.Zoom + vw*0.5, (wy-c.Y)/c.Zoom + vh*0.5
}

// SetZoom clamps zoom into [lo, hi]
func (c *CameraComponent) SetZoom(zoom, lo, hi float64) {
	c.Zoom = math.Max(lo, math.Min(hi, zoom))
}
